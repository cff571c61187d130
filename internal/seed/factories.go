// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"ripple/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// SeedOptions control how much data the seeder produces.
type SeedOptions struct {
	NumUsers    int
	NumPosts    int
	PrivateRate float64
	MaxDays     int
	ShouldClean bool
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seed preset and tests.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	rnd  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Factory{db: db, opts: opts, rnd: rnd}
}

// CreateUser constructs and persists a sample `models.User`. Optional
// override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	handle := sanitizeHandle(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(100, 999))
	visibility := models.VisibilityPublic
	if f.rnd.Float64() < f.privateRate() {
		visibility = models.VisibilityPrivate
	}

	user := &models.User{
		Handle:      handle,
		Email:       gofakeit.Email(),
		DisplayName: gofakeit.Name(),
		FirstName:   gofakeit.FirstName(),
		LastName:    gofakeit.LastName(),
		Bio:         gofakeit.Sentence(10),
		AvatarURL:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Visibility:  visibility,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost constructs and persists a sample `models.Post` for the
// given user, with created_at spread over the recent past.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		Content:  gofakeit.Paragraph(1, 3, 5, "\n"),
		AuthorID: user.ID,
	}
	if f.rnd.Float64() < 0.4 {
		post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
	}

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rnd.Intn(maxDays)
	hoursBack := f.rnd.Intn(24)
	minsBack := f.rnd.Intn(60)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment constructs and persists a sample `models.Comment` on
// the provided post, bumping the post's counter to stay consistent.
func (f *Factory) CreateComment(user *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content:  gofakeit.Sentence(8),
		AuthorID: user.ID,
		PostID:   post.ID,
	}

	for _, override := range overrides {
		override(comment)
	}

	return comment, f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", post.ID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error
	})
}

// CreateLike persists a like from `user` on `post` and keeps
// likes_count equal to the like rows.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	like := &models.Like{UserID: user.ID, PostID: post.ID}
	return f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(like).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", post.ID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error
	})
}

// CreateShare persists a share event from `user` on `post`.
func (f *Factory) CreateShare(user *models.User, post *models.Post) error {
	share := &models.Share{UserID: user.ID, PostID: post.ID}
	return f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(share).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", post.ID).
			UpdateColumn("shares_count", gorm.Expr("shares_count + 1")).Error
	})
}

// CreateFollow persists a follow edge between two users. Accepted edges
// move both denormalized counters; pending edges move none.
func (f *Factory) CreateFollow(follower, followed *models.User, status models.FollowStatus) error {
	edge := &models.FollowEdge{
		FollowerID: follower.ID,
		FollowedID: followed.ID,
		Status:     status,
	}
	return f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(edge).Error; err != nil {
			return err
		}
		if status != models.FollowStatusAccepted {
			return nil
		}
		if err := tx.Model(&models.User{}).Where("id = ?", follower.ID).
			UpdateColumn("following_count", gorm.Expr("following_count + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", followed.ID).
			UpdateColumn("followers_count", gorm.Expr("followers_count + 1")).Error
	})
}

func (f *Factory) privateRate() float64 {
	if f.opts.PrivateRate <= 0 {
		return 0.25
	}
	return f.opts.PrivateRate
}

// sanitizeHandle lowercases and strips characters outside the handle
// alphabet.
func sanitizeHandle(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return "user"
	}
	return sb.String()
}
