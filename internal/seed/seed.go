package seed

import (
	"fmt"
	"log"
	"strings"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// Seed populates the database with a small social mesh: users with a
// mix of visibilities, follow edges in both states, and posts with
// likes, comments, and shares. Every denormalized counter it writes
// matches the authoritative rows.
func Seed(db *gorm.DB, opts SeedOptions) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 25
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 100
	}

	log.Printf("seeding %d users and %d posts", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Printf("warning: could not clear existing data: %v", err)
		}
	}

	factory := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("created %d users", len(users))

	if err := seedFollowMesh(factory, users); err != nil {
		return fmt.Errorf("seed follow mesh: %w", err)
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[factory.rnd.Intn(len(users))]
		post, err := factory.CreatePost(author)
		if err != nil {
			return fmt.Errorf("create post: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("created %d posts", len(posts))

	if err := seedEngagement(factory, users, posts); err != nil {
		return fmt.Errorf("seed engagement: %w", err)
	}

	log.Println("seeding completed")
	return nil
}

// seedFollowMesh wires each user to a handful of others. Edges toward
// private accounts start PENDING with roughly half later accepted.
func seedFollowMesh(factory *Factory, users []*models.User) error {
	for _, follower := range users {
		targets := factory.rnd.Intn(5) + 1
		for j := 0; j < targets; j++ {
			followed := users[factory.rnd.Intn(len(users))]
			if followed.ID == follower.ID {
				continue
			}

			status := models.InitialFollowStatus(followed.Visibility)
			if status == models.FollowStatusPending && factory.rnd.Float64() < 0.5 {
				status = models.FollowStatusAccepted
			}

			err := factory.CreateFollow(follower, followed, status)
			if err != nil && !isDuplicate(err) {
				return err
			}
		}
	}
	return nil
}

func seedEngagement(factory *Factory, users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		likers := factory.rnd.Intn(6)
		for _, user := range pickUsers(factory, users, likers) {
			if err := factory.CreateLike(user, post); err != nil && !isDuplicate(err) {
				return err
			}
		}

		commenters := factory.rnd.Intn(4)
		for _, user := range pickUsers(factory, users, commenters) {
			if _, err := factory.CreateComment(user, post); err != nil {
				return err
			}
		}

		if factory.rnd.Float64() < 0.2 {
			sharer := users[factory.rnd.Intn(len(users))]
			if err := factory.CreateShare(sharer, post); err != nil {
				return err
			}
		}
	}
	return nil
}

// pickUsers returns up to n distinct users.
func pickUsers(factory *Factory, users []*models.User, n int) []*models.User {
	if n >= len(users) {
		n = len(users)
	}
	picked := make([]*models.User, 0, n)
	seen := map[uint]struct{}{}
	for len(picked) < n {
		u := users[factory.rnd.Intn(len(users))]
		if _, dup := seen[u.ID]; dup {
			continue
		}
		seen[u.ID] = struct{}{}
		picked = append(picked, u)
	}
	return picked
}

func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

func clearData(db *gorm.DB) error {
	log.Println("clearing existing data")
	sql := `TRUNCATE TABLE notifications, comments, shares, likes, posts, follow_edges, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}
