package repository

import (
	"context"
	"errors"

	"ripple/internal/cache"
	"ripple/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow edge data operations
type FollowRepository interface {
	Create(ctx context.Context, edge *models.FollowEdge) error
	GetEdge(ctx context.Context, followerID, followedID uint) (*models.FollowEdge, error)
	Accept(ctx context.Context, followerID, followedID uint) (*models.FollowEdge, error)
	Delete(ctx context.Context, followerID, followedID uint) (bool, error)
	DeletePending(ctx context.Context, followerID, followedID uint) error
	Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error)
	Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, error)
	PendingRequests(ctx context.Context, userID uint) ([]models.FollowEdge, error)
}

// followRepository implements FollowRepository
type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create inserts the edge and, when it lands as ACCEPTED, bumps both
// denormalized counters in the same transaction.
func (r *followRepository) Create(ctx context.Context, edge *models.FollowEdge) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(edge).Error; err != nil {
			if isUniqueViolation(err) {
				return models.NewAlreadyExistsError("follow edge already exists")
			}
			return models.NewStorageError(err)
		}
		if edge.Status == models.FollowStatusAccepted {
			if err := bumpFollowCounters(tx, edge.FollowerID, edge.FollowedID, 1); err != nil {
				return models.NewStorageError(err)
			}
		}
		return nil
	})
	if err == nil {
		cache.InvalidateUser(ctx, edge.FollowerID)
		cache.InvalidateUser(ctx, edge.FollowedID)
	}
	return err
}

// GetEdge returns the edge between the pair, or nil when none exists.
func (r *followRepository) GetEdge(ctx context.Context, followerID, followedID uint) (*models.FollowEdge, error) {
	var edge models.FollowEdge
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		First(&edge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewStorageError(err)
	}
	return &edge, nil
}

// Accept transitions a PENDING edge to ACCEPTED and bumps both counters.
// The guarded update makes concurrent approvals settle on exactly one
// counter increment.
func (r *followRepository) Accept(ctx context.Context, followerID, followedID uint) (*models.FollowEdge, error) {
	var edge models.FollowEdge
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
			First(&edge).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("FollowEdge", followerID)
			}
			return models.NewStorageError(err)
		}
		if edge.Status != models.FollowStatusPending {
			return models.NewInvalidOperationError("follow request is not pending")
		}

		result := tx.Model(&models.FollowEdge{}).
			Where("id = ? AND status = ?", edge.ID, models.FollowStatusPending).
			Update("status", models.FollowStatusAccepted)
		if result.Error != nil {
			return models.NewStorageError(result.Error)
		}
		if result.RowsAffected == 0 {
			return models.NewConflictRetryableError(errors.New("follow edge changed concurrently"))
		}
		edge.Status = models.FollowStatusAccepted

		if err := bumpFollowCounters(tx, followerID, followedID, 1); err != nil {
			return models.NewStorageError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	cache.InvalidateUser(ctx, followerID)
	cache.InvalidateUser(ctx, followedID)
	return &edge, nil
}

// Delete removes the edge regardless of state and reports whether the
// removed edge was ACCEPTED. Counters only move for accepted edges.
func (r *followRepository) Delete(ctx context.Context, followerID, followedID uint) (bool, error) {
	wasAccepted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var edge models.FollowEdge
		if err := tx.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
			First(&edge).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("FollowEdge", followerID)
			}
			return models.NewStorageError(err)
		}

		result := tx.Where("id = ?", edge.ID).Delete(&models.FollowEdge{})
		if result.Error != nil {
			return models.NewStorageError(result.Error)
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("FollowEdge", followerID)
		}

		if edge.Status == models.FollowStatusAccepted {
			wasAccepted = true
			if err := bumpFollowCounters(tx, followerID, followedID, -1); err != nil {
				return models.NewStorageError(err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	cache.InvalidateUser(ctx, followerID)
	cache.InvalidateUser(ctx, followedID)
	return wasAccepted, nil
}

// DeletePending removes a PENDING edge without touching counters. Used
// for rejecting a follow request.
func (r *followRepository) DeletePending(ctx context.Context, followerID, followedID uint) error {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ? AND status = ?",
			followerID, followedID, models.FollowStatusPending).
		Delete(&models.FollowEdge{})
	if result.Error != nil {
		return models.NewStorageError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("FollowEdge", followerID)
	}
	return nil
}

func (r *followRepository) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follow_edges fe ON fe.follower_id = users.id").
		Where("fe.followed_id = ? AND fe.status = ?", userID, models.FollowStatusAccepted).
		Order("fe.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return users, nil
}

func (r *followRepository) Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follow_edges fe ON fe.followed_id = users.id").
		Where("fe.follower_id = ? AND fe.status = ?", userID, models.FollowStatusAccepted).
		Order("fe.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return users, nil
}

func (r *followRepository) PendingRequests(ctx context.Context, userID uint) ([]models.FollowEdge, error) {
	var edges []models.FollowEdge
	err := r.db.WithContext(ctx).
		Where("followed_id = ? AND status = ?", userID, models.FollowStatusPending).
		Preload("Follower").
		Order("created_at ASC").
		Find(&edges).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return edges, nil
}

// bumpFollowCounters moves following_count on the follower and
// followers_count on the followed by delta, flooring at zero.
func bumpFollowCounters(tx *gorm.DB, followerID, followedID uint, delta int) error {
	if delta > 0 {
		if err := tx.Model(&models.User{}).Where("id = ?", followerID).
			UpdateColumn("following_count", gorm.Expr("following_count + ?", delta)).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", followedID).
			UpdateColumn("followers_count", gorm.Expr("followers_count + ?", delta)).Error
	}
	if err := tx.Model(&models.User{}).Where("id = ?", followerID).
		UpdateColumn("following_count", gorm.Expr(
			"CASE WHEN following_count > 0 THEN following_count - 1 ELSE 0 END")).Error; err != nil {
		return err
	}
	return tx.Model(&models.User{}).Where("id = ?", followedID).
		UpdateColumn("followers_count", gorm.Expr(
			"CASE WHEN followers_count > 0 THEN followers_count - 1 ELSE 0 END")).Error
}
