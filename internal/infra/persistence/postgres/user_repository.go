package postgres

import (
	"context"

	"blog/internal/domain/entity"
	"blog/internal/domain/repository"
	"blog/internal/errors"
	"blog/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.first(ctx, "find user by id", "id = ?", id)
}

// FindByUsername retrieves a local account by username.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return repo.first(ctx, "find user by username", "username = ?", username)
}

// FindByOAuthID retrieves a federated account by Google id.
func (repo *userRepository) FindByOAuthID(ctx context.Context, oauthID string) (*entity.User, error) {
	return repo.first(ctx, "find user by oauth id", "google_id = ?", oauthID)
}

func (repo *userRepository) first(ctx context.Context, op string, query string, args ...any) (*entity.User, error) {
	var userM model.UserModel

	// Reads hit the primary: a row inserted a moment ago may not be on a replica yet.
	err := repo.db.WithContext(ctx).Clauses(dbresolver.Write).Where(query, args...).Take(&userM).Error
	if err != nil {
		// Not-found and store faults stay distinct for callers.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, op)
	}

	return toUserDomain(&userM), nil
}

// Create inserts a user and writes the store-assigned id and timestamps back.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return errors.Wrap(repository.ErrUserAlreadyExists, err.Error())
		}
		if isCheckConstraintViolation(err) {
			return errors.Wrap(err, "user violates identity constraints")
		}

		return errors.Wrap(err, "create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:           data.ID,
		Name:         data.Name,
		Username:     derefString(data.Username),
		PasswordHash: derefString(data.PasswordHash),
		OAuthID:      derefString(data.GoogleID),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:           data.ID,
		Name:         data.Name,
		Username:     nullableString(data.Username),
		PasswordHash: nullableString(data.PasswordHash),
		GoogleID:     nullableString(data.OAuthID),
	}
}

// nullableString maps "" to NULL so unique indexes ignore absent values.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
