package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// FeedService assembles reverse-chronological feeds.
type FeedService struct {
	postRepo repository.PostRepository
	maxLimit int
}

// NewFeedService returns a new FeedService. maxLimit caps the page size
// a caller can request.
func NewFeedService(postRepo repository.PostRepository, maxLimit int) *FeedService {
	if maxLimit <= 0 {
		maxLimit = 100
	}
	return &FeedService{
		postRepo: postRepo,
		maxLimit: maxLimit,
	}
}

// GetFeed returns the global feed, newest first. viewerID resolves each
// post's liked flag and may be zero for anonymous reads.
func (s *FeedService) GetFeed(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Post, error) {
	limit = s.clamp(limit)
	if offset < 0 {
		offset = 0
	}
	return s.postRepo.ListFeed(ctx, limit, offset, viewerID)
}

// GetFollowingFeed is the graph-aware feed variant. It returns posts
// from the viewer, accounts the viewer has an accepted edge toward, and
// public accounts, newest first. Unlike GetFeed it hides posts from
// private accounts the viewer does not follow.
func (s *FeedService) GetFollowingFeed(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Post, error) {
	if viewerID == 0 {
		return nil, models.NewInvalidOperationError("following feed requires a viewer")
	}
	limit = s.clamp(limit)
	if offset < 0 {
		offset = 0
	}
	return s.postRepo.ListFollowingFeed(ctx, viewerID, limit, offset)
}

func (s *FeedService) clamp(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}
