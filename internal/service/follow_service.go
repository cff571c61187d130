package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
)

// Emitter is the fan-out surface other services depend on.
type Emitter interface {
	Emit(ctx context.Context, kind models.NotificationKind, actorID, recipientID uint, subject models.Subject) error
}

// EdgeState describes the relationship from one user toward another.
type EdgeState string

const (
	EdgeStateNone     EdgeState = "none"
	EdgeStatePending  EdgeState = "pending"
	EdgeStateAccepted EdgeState = "accepted"
)

// FollowService provides follow-graph business logic.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	emitter    Emitter
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository, emitter Emitter) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		emitter:    emitter,
	}
}

// RequestFollow creates an edge from follower toward target. Public
// targets yield an ACCEPTED edge immediately; private targets yield a
// PENDING request awaiting the owner's approval.
func (s *FollowService) RequestFollow(ctx context.Context, followerID, targetID uint) (*models.FollowEdge, error) {
	if followerID == targetID {
		return nil, models.NewInvalidOperationError("cannot follow yourself")
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, followerID); err != nil {
		return nil, err
	}

	edge := &models.FollowEdge{
		FollowerID: followerID,
		FollowedID: targetID,
		Status:     models.InitialFollowStatus(target.Visibility),
	}
	if err := s.followRepo.Create(ctx, edge); err != nil {
		return nil, err
	}

	// Pending requests stay silent until the owner approves them.
	if edge.Status == models.FollowStatusAccepted {
		s.fanoutFollow(ctx, followerID, targetID)
	}
	return edge, nil
}

// ApproveFollow transitions a pending request toward ownerID into an
// accepted edge. Only the request's target may approve it.
func (s *FollowService) ApproveFollow(ctx context.Context, ownerID, requesterID uint) (*models.FollowEdge, error) {
	edge, err := s.followRepo.GetEdge(ctx, requesterID, ownerID)
	if err != nil {
		return nil, err
	}
	if edge == nil {
		return nil, models.NewNotFoundError("FollowEdge", requesterID)
	}
	if edge.Status != models.FollowStatusPending {
		return nil, models.NewInvalidOperationError("follow request is not pending")
	}

	accepted, err := s.followRepo.Accept(ctx, requesterID, ownerID)
	if err != nil {
		return nil, err
	}
	s.fanoutFollow(ctx, requesterID, ownerID)
	return accepted, nil
}

// RejectFollow removes a pending request toward ownerID without
// creating a relationship.
func (s *FollowService) RejectFollow(ctx context.Context, ownerID, requesterID uint) error {
	return s.followRepo.DeletePending(ctx, requesterID, ownerID)
}

// Unfollow removes the edge from follower toward target, whatever its
// state. Withdrawing a pending request goes through here too. Unfollow
// is idempotent; a missing edge is not an error.
func (s *FollowService) Unfollow(ctx context.Context, followerID, targetID uint) error {
	_, err := s.followRepo.Delete(ctx, followerID, targetID)
	if err != nil && models.IsNotFound(err) {
		return nil
	}
	return err
}

// EdgeStatus reports the relationship from userID toward targetID.
func (s *FollowService) EdgeStatus(ctx context.Context, userID, targetID uint) (EdgeState, error) {
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return EdgeStateNone, err
	}
	edge, err := s.followRepo.GetEdge(ctx, userID, targetID)
	if err != nil {
		return EdgeStateNone, err
	}
	if edge == nil {
		return EdgeStateNone, nil
	}
	if edge.Status == models.FollowStatusPending {
		return EdgeStatePending, nil
	}
	return EdgeStateAccepted, nil
}

// Followers lists accepted followers of userID.
func (s *FollowService) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.followRepo.Followers(ctx, userID, limit, offset)
}

// Following lists accounts userID has accepted edges toward.
func (s *FollowService) Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.followRepo.Following(ctx, userID, limit, offset)
}

// PendingRequests lists open requests awaiting userID's decision.
func (s *FollowService) PendingRequests(ctx context.Context, userID uint) ([]models.FollowEdge, error) {
	return s.followRepo.PendingRequests(ctx, userID)
}

// fanoutFollow notifies the target that someone followed or requested
// to follow them. Failures never surface to the caller.
func (s *FollowService) fanoutFollow(ctx context.Context, actorID, targetID uint) {
	if s.emitter == nil {
		return
	}
	subject := models.Subject{Type: models.SubjectTypeUser, ID: targetID}
	if err := s.emitter.Emit(ctx, models.NotificationKindFollow, actorID, targetID, subject); err != nil {
		observability.Logger.WarnContext(ctx, "follow fan-out failed",
			"actor_id", actorID, "target_id", targetID, "error", err)
	}
}
