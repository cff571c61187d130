package repository

import (
	"context"
	"errors"

	"ripple/internal/cache"
	"ripple/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByHandle(ctx context.Context, handle string) (*models.User, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	ReconcileCounters(ctx context.Context, userID uint) (*models.User, bool, error)
	ListIDs(ctx context.Context) ([]uint, error)
}

// userRepository implements UserRepository
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewAlreadyExistsError("handle or email already taken")
		}
		return models.NewStorageError(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewStorageError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByHandle(ctx context.Context, handle string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("handle = ?", handle).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", handle)
		}
		return nil, models.NewStorageError(err)
	}
	return &user, nil
}

func (r *userRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return models.NewAlreadyExistsError("handle or email already taken")
		}
		return models.NewStorageError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("User", id)
	}
	cache.InvalidateUser(ctx, id)
	return nil
}

// ReconcileCounters recomputes followers_count and following_count from
// the accepted edges and persists the corrected values. The bool
// reports whether the stored counters had drifted.
func (r *userRepository) ReconcileCounters(ctx context.Context, userID uint) (*models.User, bool, error) {
	var user models.User
	var drifted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", userID)
			}
			return models.NewStorageError(err)
		}

		var followers, following int64
		if err := tx.Model(&models.FollowEdge{}).
			Where("followed_id = ? AND status = ?", userID, models.FollowStatusAccepted).
			Count(&followers).Error; err != nil {
			return models.NewStorageError(err)
		}
		if err := tx.Model(&models.FollowEdge{}).
			Where("follower_id = ? AND status = ?", userID, models.FollowStatusAccepted).
			Count(&following).Error; err != nil {
			return models.NewStorageError(err)
		}

		drifted = user.FollowersCount != int(followers) ||
			user.FollowingCount != int(following)

		user.FollowersCount = int(followers)
		user.FollowingCount = int(following)
		if !drifted {
			return nil
		}
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
			"followers_count": followers,
			"following_count": following,
		}).Error; err != nil {
			return models.NewStorageError(err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if drifted {
		cache.InvalidateUser(ctx, userID)
	}
	return &user, drifted, nil
}

// ListIDs returns every live user id, oldest first. Used by the
// reconciliation sweep.
func (r *userRepository) ListIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, models.NewStorageError(err)
	}
	return ids, nil
}
