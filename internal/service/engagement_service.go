package service

import (
	"context"

	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// LikeResult is the outcome of a like toggle.
type LikeResult struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likes_count"`
}

// ReconcileReport summarizes a counter reconciliation sweep.
type ReconcileReport struct {
	PostsChecked   int `json:"posts_checked"`
	PostsCorrected int `json:"posts_corrected"`
	UsersChecked   int `json:"users_checked"`
	UsersCorrected int `json:"users_corrected"`
}

// EngagementService owns the like, comment, and share ledgers and keeps
// the denormalized counters honest.
type EngagementService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	emitter     Emitter
}

// NewEngagementService returns a new EngagementService.
func NewEngagementService(postRepo repository.PostRepository, commentRepo repository.CommentRepository, userRepo repository.UserRepository, emitter Emitter) *EngagementService {
	return &EngagementService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		emitter:     emitter,
	}
}

// ToggleLike flips the actor's like on a post. Liking an already-liked
// post removes the like; there is no separate unlike operation.
func (s *EngagementService) ToggleLike(ctx context.Context, actorID, postID uint) (*LikeResult, error) {
	span, ctx := observability.NewSpan(ctx, "engagement.toggle_like")
	defer span.End()
	span.AddAttributes(
		attribute.Int("post.id", int(postID)),
		attribute.Int("actor.id", int(actorID)),
	)

	post, err := s.postRepo.GetByID(ctx, postID, 0)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	liked, count, err := s.postRepo.ToggleLike(ctx, actorID, postID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	if liked {
		s.fanout(ctx, models.NotificationKindLike, actorID, post.AuthorID, postID)
	}

	return &LikeResult{Liked: liked, LikesCount: count}, nil
}

// LikeCount returns the post's like counter, preferring the cache and
// falling back to the database with a backfill.
func (s *EngagementService) LikeCount(ctx context.Context, postID uint) (int64, error) {
	if count, ok := cache.GetLikeCount(ctx, postID); ok {
		return count, nil
	}
	post, err := s.postRepo.GetByID(ctx, postID, 0)
	if err != nil {
		return 0, err
	}
	count := int64(post.LikesCount)
	cache.SetLikeCount(ctx, postID, count)
	return count, nil
}

// LikedBy returns the ids of users who like the post.
func (s *EngagementService) LikedBy(ctx context.Context, postID uint) ([]uint, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	return s.postRepo.LikedBy(ctx, postID)
}

// RecordComment validates and stores a comment, then notifies the post
// author and any mentioned users.
func (s *EngagementService) RecordComment(ctx context.Context, actorID, postID uint, req models.CreateCommentRequest) (*models.Comment, error) {
	if err := models.Validate.Struct(req); err != nil {
		return nil, models.NewValidationError("comment content must be between 1 and 500 characters")
	}

	post, err := s.postRepo.GetByID(ctx, postID, 0)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: actorID,
		Content:  req.Content,
	}
	if err := s.postRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	s.fanout(ctx, models.NotificationKindComment, actorID, post.AuthorID, postID)
	s.fanoutMentions(ctx, actorID, postID, req.Content)

	return comment, nil
}

// Comments lists a post's comments, newest first.
func (s *EngagementService) Comments(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.commentRepo.ListByPost(ctx, postID, limit, offset)
}

// RecordShare appends a share event for the post.
func (s *EngagementService) RecordShare(ctx context.Context, actorID, postID uint) (int, error) {
	return s.postRepo.RecordShare(ctx, actorID, postID)
}

// ReconcilePost recomputes a single post's counters from the likes,
// comments, and shares tables. It reports whether any counter drifted.
func (s *EngagementService) ReconcilePost(ctx context.Context, postID uint) (*models.Post, bool, error) {
	post, drifted, err := s.postRepo.ReconcilePost(ctx, postID)
	if err != nil {
		return nil, false, err
	}
	if drifted {
		observability.CounterDrift.WithLabelValues("post").Inc()
	}
	return post, drifted, nil
}

// ReconcileCounters recomputes every denormalized counter from its
// authoritative table and reports what it fixed.
func (s *EngagementService) ReconcileCounters(ctx context.Context) (*ReconcileReport, error) {
	span, ctx := observability.NewSpan(ctx, "engagement.reconcile_counters")
	defer span.End()

	report := &ReconcileReport{}

	postIDs, err := s.postRepo.ListIDs(ctx)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	for _, id := range postIDs {
		_, drifted, err := s.postRepo.ReconcilePost(ctx, id)
		if err != nil {
			return nil, err
		}
		report.PostsChecked++
		if drifted {
			report.PostsCorrected++
			observability.CounterDrift.WithLabelValues("post").Inc()
		}
	}

	userIDs, err := s.userRepo.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range userIDs {
		_, drifted, err := s.userRepo.ReconcileCounters(ctx, id)
		if err != nil {
			return nil, err
		}
		report.UsersChecked++
		if drifted {
			report.UsersCorrected++
			observability.CounterDrift.WithLabelValues("user").Inc()
		}
	}

	return report, nil
}

func (s *EngagementService) fanout(ctx context.Context, kind models.NotificationKind, actorID, recipientID, postID uint) {
	if s.emitter == nil {
		return
	}
	subject := models.Subject{Type: models.SubjectTypePost, ID: postID}
	if err := s.emitter.Emit(ctx, kind, actorID, recipientID, subject); err != nil {
		observability.Logger.WarnContext(ctx, "engagement fan-out failed",
			"kind", kind, "actor_id", actorID, "recipient_id", recipientID, "error", err)
	}
}

// fanoutMentions notifies each user @-mentioned in content. Unknown
// handles are skipped silently.
func (s *EngagementService) fanoutMentions(ctx context.Context, actorID, postID uint, content string) {
	if s.emitter == nil {
		return
	}
	for _, handle := range extractMentions(content) {
		mentioned, err := s.userRepo.GetByHandle(ctx, handle)
		if err != nil {
			continue
		}
		s.fanout(ctx, models.NotificationKindMention, actorID, mentioned.ID, postID)
	}
}
