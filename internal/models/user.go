// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// AccountVisibility controls whether follow edges toward an account are
// created accepted or pending.
type AccountVisibility string

const (
	// VisibilityPublic indicates anyone may follow the account directly.
	VisibilityPublic AccountVisibility = "PUBLIC"
	// VisibilityPrivate indicates follow requests require approval.
	VisibilityPrivate AccountVisibility = "PRIVATE"
)

// Valid reports whether v is one of the known visibility modes.
func (v AccountVisibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// User represents an account in the social graph. Identity (uniqueness of
// handle and email, credentials) is owned by the external identity store;
// the graph engine only reads visibility and maintains the denormalized
// follower counters.
type User struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Handle      string            `gorm:"size:30;uniqueIndex;not null" json:"handle"`
	Email       string            `gorm:"uniqueIndex;not null" json:"email"`
	DisplayName string            `gorm:"size:100" json:"display_name"`
	FirstName   string            `gorm:"size:50" json:"first_name"`
	LastName    string            `gorm:"size:50" json:"last_name"`
	Bio         string            `gorm:"type:text" json:"bio"`
	AvatarURL   string            `json:"avatar_url"`
	Visibility  AccountVisibility `gorm:"type:varchar(10);not null;default:'PUBLIC'" json:"visibility"`

	// Denormalized counters, maintained by the engagement ledger and
	// recomputable from follow_edges at any time.
	FollowersCount int `gorm:"not null;default:0" json:"followers_count"`
	FollowingCount int `gorm:"not null;default:0" json:"following_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Posts []Post `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// UpdateProfileRequest is the explicit allow-list of profile fields a user
// may change. Pointer fields distinguish "not provided" from "set to zero".
type UpdateProfileRequest struct {
	DisplayName *string            `json:"display_name,omitempty" validate:"omitempty,max=100"`
	FirstName   *string            `json:"first_name,omitempty" validate:"omitempty,max=50"`
	LastName    *string            `json:"last_name,omitempty" validate:"omitempty,max=50"`
	Handle      *string            `json:"handle,omitempty" validate:"omitempty,min=2,max=30,handle"`
	Bio         *string            `json:"bio,omitempty" validate:"omitempty,max=500"`
	AvatarURL   *string            `json:"avatar_url,omitempty" validate:"omitempty,url"`
	Visibility  *AccountVisibility `json:"visibility,omitempty" validate:"omitempty,oneof=PUBLIC PRIVATE"`
}
