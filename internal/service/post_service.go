package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
)

// PostService provides post creation and retrieval business logic.
type PostService struct {
	postRepo   repository.PostRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	emitter    Emitter
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, followRepo repository.FollowRepository, emitter Emitter) *PostService {
	return &PostService{
		postRepo:   postRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
		emitter:    emitter,
	}
}

// CreatePost validates and stores a post, then notifies any mentioned
// users.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, req models.CreatePostRequest) (*models.Post, error) {
	if err := models.Validate.Struct(req); err != nil {
		return nil, models.NewValidationError("post content must be between 1 and 1000 characters")
	}
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID: authorID,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.fanoutMentions(ctx, authorID, post.ID, req.Content)
	return post, nil
}

// GetPost returns a single post with the viewer's liked flag resolved.
// Posts by private authors are visible only to the author and accepted
// followers.
func (s *PostService) GetPost(ctx context.Context, postID, viewerID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}
	if err := s.checkAuthorVisibility(ctx, &post.Author, viewerID); err != nil {
		return nil, err
	}
	return post, nil
}

// GetUserPosts lists a user's posts, respecting account visibility.
func (s *PostService) GetUserPosts(ctx context.Context, authorID, viewerID uint, limit, offset int) ([]*models.Post, error) {
	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if err := s.checkAuthorVisibility(ctx, author, viewerID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	return s.postRepo.GetByAuthorID(ctx, authorID, limit, offset, viewerID)
}

// DeletePost removes a post. Only the author may delete it.
func (s *PostService) DeletePost(ctx context.Context, postID, actorID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, 0)
	if err != nil {
		return err
	}
	if post.AuthorID != actorID {
		return models.NewInvalidOperationError("only the author can delete a post")
	}
	return s.postRepo.Delete(ctx, postID)
}

// checkAuthorVisibility gates reads of a private author's posts to the
// author and their accepted followers.
func (s *PostService) checkAuthorVisibility(ctx context.Context, author *models.User, viewerID uint) error {
	if author.Visibility != models.VisibilityPrivate || author.ID == viewerID {
		return nil
	}
	if viewerID == 0 {
		return models.NewInvalidOperationError("account is private")
	}
	edge, err := s.followRepo.GetEdge(ctx, viewerID, author.ID)
	if err != nil {
		return err
	}
	if edge == nil || edge.Status != models.FollowStatusAccepted {
		return models.NewInvalidOperationError("account is private")
	}
	return nil
}

func (s *PostService) fanoutMentions(ctx context.Context, actorID, postID uint, content string) {
	if s.emitter == nil {
		return
	}
	subject := models.Subject{Type: models.SubjectTypePost, ID: postID}
	for _, handle := range extractMentions(content) {
		mentioned, err := s.userRepo.GetByHandle(ctx, handle)
		if err != nil {
			continue
		}
		if err := s.emitter.Emit(ctx, models.NotificationKindMention, actorID, mentioned.ID, subject); err != nil {
			observability.Logger.WarnContext(ctx, "mention fan-out failed",
				"actor_id", actorID, "mentioned_id", mentioned.ID, "error", err)
		}
	}
}
