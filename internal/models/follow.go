// Package models contains data structures for the application's domain models.
package models

import "time"

// FollowStatus represents the lifecycle state of a follow edge.
type FollowStatus string

const (
	// FollowStatusPending indicates a request awaiting approval by the
	// followed account.
	FollowStatusPending FollowStatus = "PENDING"
	// FollowStatusAccepted indicates an established follow relationship.
	FollowStatusAccepted FollowStatus = "ACCEPTED"
)

// FollowEdge is a directed follow relationship between two users. At most
// one edge exists per ordered (follower, followed) pair, enforced by the
// composite unique index. Valid transitions: none -> PENDING -> ACCEPTED,
// none -> ACCEPTED, and deletion from either state. There is no
// ACCEPTED -> PENDING transition.
type FollowEdge struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	FollowerID uint         `gorm:"not null;uniqueIndex:idx_follow_edge_pair" json:"follower_id"`
	FollowedID uint         `gorm:"not null;uniqueIndex:idx_follow_edge_pair" json:"followed_id"`
	Status     FollowStatus `gorm:"type:varchar(10);not null;index:idx_follow_edges_status" json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`

	Follower User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followed User `gorm:"foreignKey:FollowedID" json:"followed,omitempty"`
}

// TableName specifies the table name for GORM.
func (FollowEdge) TableName() string {
	return "follow_edges"
}

// InitialFollowStatus is the decision function coupling account visibility to
// the initial status of a new edge. It is evaluated once, at edge creation;
// later visibility changes never retroactively affect existing edges.
func InitialFollowStatus(v AccountVisibility) FollowStatus {
	if v == VisibilityPrivate {
		return FollowStatusPending
	}
	return FollowStatusAccepted
}
