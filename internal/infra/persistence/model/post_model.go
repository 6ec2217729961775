package model

import (
	"time"

	"github.com/google/uuid"
)

// PostModel mirrors the 'posts' table. UserID references users.id (UUID).
type PostModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_posts_user_created,priority:1"`
	Title     string    `gorm:"type:text;not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index:idx_posts_user_created,priority:2,sort:desc"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PostModel) TableName() string {
	return "posts"
}
