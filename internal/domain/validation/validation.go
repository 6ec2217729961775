// Package validation checks request shapes with go-playground/validator and
// turns the first failure into a single human-readable message.
package validation

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	domainerrors "blog/internal/domain/errors"
	"blog/internal/errors"

	"github.com/go-playground/validator/v10"
)

// labelTag names the struct tag used as the field name in messages.
const labelTag = "label"

// maxBytesTag bounds the encoded length of a string. bcrypt reads at most
// 72 bytes, and `max` counts runes.
const maxBytesTag = "maxbytes"

// Validator wraps a configured validator.Validate.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator whose messages use the `label` tag as field name.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if label := field.Tag.Get(labelTag); label != "" {
			return label
		}

		return field.Name
	})
	if err := v.RegisterValidation(maxBytesTag, maxBytes); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", maxBytesTag, err))
	}

	return &Validator{validate: v}
}

func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}

	return len(fl.Field().String()) <= limit
}

// Struct validates s. On failure it returns ErrInvalidInput carrying the
// message of the first violated rule.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.Wrap(err, "validate struct")
	}

	return domainerrors.ErrInvalidInput.WithMessage(Message(fieldErrs[0]))
}

// Message renders a single field error.
func Message(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case maxBytesTag:
		return fmt.Sprintf("%s must be at most %s bytes", field, fe.Param())
	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a valid id", field)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", strings.TrimSpace(field))
	}
}
