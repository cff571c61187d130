package repository

import (
	"context"
	"errors"

	"ripple/internal/cache"
	"ripple/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error)
	GetByAuthorID(ctx context.Context, authorID uint, limit, offset int, viewerID uint) ([]*models.Post, error)
	ListFeed(ctx context.Context, limit, offset int, viewerID uint) ([]*models.Post, error)
	ListFollowingFeed(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Post, error)
	ToggleLike(ctx context.Context, userID, postID uint) (liked bool, likesCount int, err error)
	LikedBy(ctx context.Context, postID uint) ([]uint, error)
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	CreateComment(ctx context.Context, comment *models.Comment) error
	RecordShare(ctx context.Context, userID, postID uint) (sharesCount int, err error)
	Delete(ctx context.Context, id uint) error
	ReconcilePost(ctx context.Context, postID uint) (*models.Post, bool, error)
	ListIDs(ctx context.Context) ([]uint, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewStorageError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	var post models.Post
	err := r.applyViewerLiked(r.db.WithContext(ctx), viewerID).
		Preload("Author").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewStorageError(err)
	}
	return &post, nil
}

func (r *postRepository) GetByAuthorID(ctx context.Context, authorID uint, limit, offset int, viewerID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyViewerLiked(r.db.WithContext(ctx), viewerID).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return posts, nil
}

func (r *postRepository) ListFeed(ctx context.Context, limit, offset int, viewerID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyViewerLiked(r.db.WithContext(ctx), viewerID).
		Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return posts, nil
}

// ListFollowingFeed is the graph-aware feed: posts whose author is the
// viewer, has an ACCEPTED edge from the viewer, or is a PUBLIC account.
// Private accounts the viewer does not follow are filtered out.
func (r *postRepository) ListFollowingFeed(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyViewerLiked(r.db.WithContext(ctx), viewerID).
		Preload("Author").
		Where("author_id = ? OR author_id IN (?) OR author_id IN (?)",
			viewerID,
			r.db.Model(&models.FollowEdge{}).
				Select("followed_id").
				Where("follower_id = ? AND status = ?", viewerID, models.FollowStatusAccepted),
			r.db.Model(&models.User{}).
				Select("id").
				Where("visibility = ?", models.VisibilityPublic),
		).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return posts, nil
}

// applyViewerLiked adds the liked flag for the viewer in a single query.
func (r *postRepository) applyViewerLiked(db *gorm.DB, viewerID uint) *gorm.DB {
	if viewerID != 0 {
		return db.Select("posts.*, EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) as liked", viewerID)
	}
	return db.Select("posts.*, false as liked")
}

// ToggleLike flips the like edge for (userID, postID) and keeps
// likes_count equal to the number of like rows. Insert and counter move
// in one transaction; the unique index makes concurrent toggles of the
// same pair settle on one insert.
func (r *postRepository) ToggleLike(ctx context.Context, userID, postID uint) (bool, int, error) {
	var liked bool
	var count int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", postID)
			}
			return models.NewStorageError(err)
		}

		like := models.Like{PostID: postID, UserID: userID}
		insert := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
		if insert.Error != nil {
			return models.NewStorageError(insert.Error)
		}

		if insert.RowsAffected == 1 {
			liked = true
			if err := tx.Model(&models.Post{}).Where("id = ?", postID).
				UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error; err != nil {
				return models.NewStorageError(err)
			}
		} else {
			del := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
			if del.Error != nil {
				return models.NewStorageError(del.Error)
			}
			if del.RowsAffected == 1 {
				liked = false
				if err := tx.Model(&models.Post{}).Where("id = ?", postID).
					UpdateColumn("likes_count", gorm.Expr(
						"CASE WHEN likes_count > 0 THEN likes_count - 1 ELSE 0 END")).Error; err != nil {
					return models.NewStorageError(err)
				}
			}
		}

		var refreshed models.Post
		if err := tx.Select("likes_count").First(&refreshed, postID).Error; err != nil {
			return models.NewStorageError(err)
		}
		count = refreshed.LikesCount
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	cache.Invalidate(ctx, cache.PostKey(postID))
	delta := int64(-1)
	if liked {
		delta = 1
	}
	cache.BumpLikeCount(ctx, postID, delta)
	return liked, count, nil
}

func (r *postRepository) LikedBy(ctx context.Context, postID uint) ([]uint, error) {
	var userIDs []uint
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	return userIDs, nil
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, models.NewStorageError(err)
	}
	return count > 0, nil
}

// CreateComment stores the comment and bumps comments_count in the same
// transaction.
func (r *postRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, comment.PostID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", comment.PostID)
			}
			return models.NewStorageError(err)
		}
		if err := tx.Create(comment).Error; err != nil {
			return models.NewStorageError(err)
		}
		if err := tx.Model(&models.Post{}).Where("id = ?", comment.PostID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error; err != nil {
			return models.NewStorageError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	cache.InvalidatePost(ctx, comment.PostID)
	return nil
}

// RecordShare appends a share event and bumps shares_count. Shares are
// not a set; the same user may share a post repeatedly.
func (r *postRepository) RecordShare(ctx context.Context, userID, postID uint) (int, error) {
	var count int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", postID)
			}
			return models.NewStorageError(err)
		}
		share := models.Share{PostID: postID, UserID: userID}
		if err := tx.Create(&share).Error; err != nil {
			return models.NewStorageError(err)
		}
		if err := tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("shares_count", gorm.Expr("shares_count + 1")).Error; err != nil {
			return models.NewStorageError(err)
		}
		count = post.SharesCount + 1
		return nil
	})
	if err != nil {
		return 0, err
	}
	cache.InvalidatePost(ctx, postID)
	return count, nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if result.Error != nil {
		return models.NewStorageError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

// ReconcilePost recomputes the denormalized counters from the
// authoritative rows and persists the corrected values. The bool
// reports whether the stored counters had drifted.
func (r *postRepository) ReconcilePost(ctx context.Context, postID uint) (*models.Post, bool, error) {
	var post models.Post
	var drifted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", postID)
			}
			return models.NewStorageError(err)
		}

		var likes, comments, shares int64
		if err := tx.Model(&models.Like{}).Where("post_id = ?", postID).Count(&likes).Error; err != nil {
			return models.NewStorageError(err)
		}
		if err := tx.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&comments).Error; err != nil {
			return models.NewStorageError(err)
		}
		if err := tx.Model(&models.Share{}).Where("post_id = ?", postID).Count(&shares).Error; err != nil {
			return models.NewStorageError(err)
		}

		drifted = post.LikesCount != int(likes) ||
			post.CommentsCount != int(comments) ||
			post.SharesCount != int(shares)

		post.LikesCount = int(likes)
		post.CommentsCount = int(comments)
		post.SharesCount = int(shares)
		if !drifted {
			return nil
		}
		if err := tx.Model(&models.Post{}).Where("id = ?", postID).Updates(map[string]interface{}{
			"likes_count":    likes,
			"comments_count": comments,
			"shares_count":   shares,
		}).Error; err != nil {
			return models.NewStorageError(err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if drifted {
		cache.InvalidatePost(ctx, postID)
	}
	return &post, drifted, nil
}

// ListIDs returns every live post id, oldest first. Used by the
// reconciliation sweep.
func (r *postRepository) ListIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, models.NewStorageError(err)
	}
	return ids, nil
}
