package postgres

import (
	"context"
	"strings"

	"blog/internal/domain/entity"
	"blog/internal/domain/repository"
	"blog/internal/errors"
	"blog/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// postRepository implements the repository.PostRepository interface using GORM.
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository is the constructor for postRepository.
func NewPostRepository(db *gorm.DB) repository.PostRepository {
	return &postRepository{db: db}
}

// List returns the owner's posts, newest first, with an optional title search.
func (repo *postRepository) List(ctx context.Context, filter repository.PostFilter) ([]*entity.Post, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.PostModel{}).Where("user_id = ?", filter.UserID)
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("title ILIKE ?", "%"+escapeLike(search)+"%")
	}
	// Shared by the count and the page query.
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count posts")
	}

	var postsM []model.PostModel
	if err := query.
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&postsM).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list posts")
	}

	posts := make([]*entity.Post, 0, len(postsM))
	for i := range postsM {
		posts = append(posts, toPostDomain(&postsM[i]))
	}

	return posts, total, nil
}

// FindByID retrieves a post owned by userID.
func (repo *postRepository) FindByID(ctx context.Context, userID, postID uuid.UUID) (*entity.Post, error) {
	var postM model.PostModel

	err := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", postID, userID).
		Take(&postM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPostNotFound
		}

		return nil, errors.Wrap(err, "find post by id")
	}

	return toPostDomain(&postM), nil
}

// Create inserts a post and writes the store-assigned id and timestamps back.
func (repo *postRepository) Create(ctx context.Context, post *entity.Post) error {
	postM := fromPostDomain(post)

	if err := repo.db.WithContext(ctx).Create(postM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return errors.Wrap(err, "post owner does not exist")
		}

		return errors.Wrap(err, "create post")
	}

	post.ID = postM.ID
	post.CreatedAt = postM.CreatedAt
	post.UpdatedAt = postM.UpdatedAt

	return nil
}

// Update overwrites title and content of a post owned by post.UserID.
func (repo *postRepository) Update(ctx context.Context, post *entity.Post) error {
	var postM model.PostModel

	result := repo.db.WithContext(ctx).
		Model(&postM).
		Where("id = ? AND user_id = ?", post.ID, post.UserID).
		Updates(map[string]any{
			"title":   post.Title,
			"content": post.Content,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "update post")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPostNotFound
	}

	return repo.reload(ctx, post)
}

func (repo *postRepository) reload(ctx context.Context, post *entity.Post) error {
	stored, err := repo.FindByID(ctx, post.UserID, post.ID)
	if err != nil {
		return err
	}

	*post = *stored

	return nil
}

// Delete removes a post owned by userID.
func (repo *postRepository) Delete(ctx context.Context, userID, postID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", postID, userID).
		Delete(&model.PostModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "delete post")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPostNotFound
	}

	return nil
}

// escapeLike escapes LIKE wildcards so the search is a plain substring match.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// --- Mapper Functions ---

func toPostDomain(data *model.PostModel) *entity.Post {
	if data == nil {
		return nil
	}

	return &entity.Post{
		ID:        data.ID,
		UserID:    data.UserID,
		Title:     data.Title,
		Content:   data.Content,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromPostDomain(data *entity.Post) *model.PostModel {
	if data == nil {
		return nil
	}

	return &model.PostModel{
		ID:      data.ID,
		UserID:  data.UserID,
		Title:   data.Title,
		Content: data.Content,
	}
}
