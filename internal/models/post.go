// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a post in the feed. The three engagement counters are
// denormalized: they are adjusted in the same transaction as their
// authoritative rows (likes, comments, shares) and can be recomputed from
// those tables at any time. likes_count equals the number of rows in likes
// for the post, always.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Content  string `gorm:"type:text;not null" json:"content"`
	ImageURL string `json:"image_url,omitempty"`

	LikesCount    int `gorm:"not null;default:0" json:"likes_count"`
	CommentsCount int `gorm:"not null;default:0" json:"comments_count"`
	SharesCount   int `gorm:"not null;default:0" json:"shares_count"`

	// Liked indicates whether the requesting viewer liked this post.
	// Computed per query, never persisted.
	Liked bool `gorm:"->;-:migration" json:"liked"`

	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM.
func (Post) TableName() string {
	return "posts"
}

// Like is one element of a post's liked-by set. The composite unique index
// gives the set semantics: each user appears at most once per post.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_post_user" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_post_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Like) TableName() string {
	return "likes"
}

// Share records a single share of a post. Shares are events, not a set: the
// same user may share a post more than once and each occurrence counts.
type Share struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Share) TableName() string {
	return "shares"
}

// CreatePostRequest defines the validated payload for creating a post.
type CreatePostRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=1000"`
	ImageURL string `json:"image_url,omitempty" validate:"omitempty,url"`
}
