// Package models contains data structures for the application's domain models.
package models

import "time"

// NotificationKind is the closed set of notification types.
type NotificationKind string

const (
	// NotificationKindLike is emitted when a user likes a post.
	NotificationKindLike NotificationKind = "LIKE"
	// NotificationKindComment is emitted when a user comments on a post.
	NotificationKindComment NotificationKind = "COMMENT"
	// NotificationKindFollow is emitted when a follow edge becomes accepted.
	NotificationKindFollow NotificationKind = "FOLLOW"
	// NotificationKindMention is emitted when a user is @-mentioned.
	NotificationKindMention NotificationKind = "MENTION"
)

// Valid reports whether k is one of the known notification kinds.
func (k NotificationKind) Valid() bool {
	switch k {
	case NotificationKindLike, NotificationKindComment, NotificationKindFollow, NotificationKindMention:
		return true
	}
	return false
}

// Subject types a notification can reference.
const (
	SubjectTypePost = "post"
	SubjectTypeUser = "user"
)

// Subject is the record a notification points at: a post for likes,
// comments, and mentions, a user for follows.
type Subject struct {
	Type string `json:"type"`
	ID   uint   `json:"id"`
}

// Notification is a derived record produced by fan-out from a graph or
// ledger mutation. Only the recipient mutates it, and only its read state.
type Notification struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Kind        NotificationKind `gorm:"type:varchar(10);not null;index" json:"kind"`
	ActorID     uint             `gorm:"not null;index" json:"actor_id"`
	Actor       User             `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
	RecipientID uint             `gorm:"not null;index" json:"recipient_id"`
	SubjectType string           `gorm:"size:10;not null" json:"subject_type"`
	SubjectID   uint             `gorm:"not null" json:"subject_id"`
	IsRead      bool             `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt   time.Time        `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Notification) TableName() string {
	return "notifications"
}
