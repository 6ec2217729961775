package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"blog/internal/domain/entity"
	"blog/internal/domain/repository"
	"blog/internal/errors"

	"github.com/google/uuid"
)

type postTable struct {
	byID map[uuid.UUID]*entity.Post
	last time.Time
}

func newPostTable() *postTable {
	return &postTable{byID: make(map[uuid.UUID]*entity.Post)}
}

type postRepository struct {
	store *Store
}

// NewPostRepository returns a PostRepository over store.
func NewPostRepository(store *Store) repository.PostRepository {
	return &postRepository{store: store}
}

func (r *postRepository) List(ctx context.Context, filter repository.PostFilter) ([]*entity.Post, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, errors.WithStack(err)
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	matched := make([]*entity.Post, 0)
	for _, post := range r.store.posts.byID {
		if post.UserID != filter.UserID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(post.Title), search) {
			continue
		}
		matched = append(matched, post)
	}

	slices.SortFunc(matched, func(a, b *entity.Post) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	total := int64(len(matched))
	start := min(max(filter.Offset, 0), len(matched))
	end := len(matched)
	if filter.Limit > 0 {
		end = min(start+filter.Limit, len(matched))
	}

	page := make([]*entity.Post, 0, end-start)
	for _, post := range matched[start:end] {
		cp := *post
		page = append(page, &cp)
	}

	return page, total, nil
}

func (r *postRepository) FindByID(ctx context.Context, userID, postID uuid.UUID) (*entity.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	post, ok := r.store.posts.byID[postID]
	if !ok || post.UserID != userID {
		return nil, repository.ErrPostNotFound
	}

	cp := *post

	return &cp, nil
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users.byID[post.UserID]; !ok {
		return errors.New("post owner does not exist")
	}

	now := r.store.tick(r.store.posts.last)
	r.store.posts.last = now

	stored := *post
	stored.ID = uuid.New()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.store.posts.byID[stored.ID] = &stored

	*post = stored

	return nil
}

func (r *postRepository) Update(ctx context.Context, post *entity.Post) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.posts.byID[post.ID]
	if !ok || stored.UserID != post.UserID {
		return repository.ErrPostNotFound
	}

	now := r.store.tick(r.store.posts.last)
	r.store.posts.last = now

	stored.Title = post.Title
	stored.Content = post.Content
	stored.UpdatedAt = now

	*post = *stored

	return nil
}

func (r *postRepository) Delete(ctx context.Context, userID, postID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.posts.byID[postID]
	if !ok || stored.UserID != userID {
		return repository.ErrPostNotFound
	}

	delete(r.store.posts.byID, postID)

	return nil
}
