// Package validator adapts the domain validator to echo.Validator.
package validator

import (
	"blog/internal/domain/validation"
)

// EchoValidator lets handlers call c.Validate on bound requests.
type EchoValidator struct {
	validator *validation.Validator
}

// New wraps v for use as echo.Echo.Validator.
func New(v *validation.Validator) *EchoValidator {
	return &EchoValidator{validator: v}
}

// Validate implements echo.Validator.
func (v *EchoValidator) Validate(i any) error {
	return v.validator.Struct(i)
}
