package service

import (
	"context"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowServiceRequestFollowSelf(t *testing.T) {
	svc := NewFollowService(noopFollowRepo(), noopUserRepo(), nil)

	_, err := svc.RequestFollow(context.Background(), 1, 1)
	assert.True(t, models.IsInvalidOperation(err))
}

func TestFollowServiceRequestFollowPublicTarget(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Visibility: models.VisibilityPublic}, nil
	}
	emitter := &emitterRecorder{}
	svc := NewFollowService(noopFollowRepo(), users, emitter)

	edge, err := svc.RequestFollow(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, models.FollowStatusAccepted, edge.Status)

	// followed user gets a FOLLOW notification
	require.Len(t, emitter.calls, 1)
	assert.Equal(t, models.NotificationKindFollow, emitter.calls[0].kind)
	assert.Equal(t, uint(1), emitter.calls[0].actorID)
	assert.Equal(t, uint(2), emitter.calls[0].recipientID)
	assert.Equal(t, models.SubjectTypeUser, emitter.calls[0].subject.Type)
}

func TestFollowServiceRequestFollowPrivateTarget(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		if id == 2 {
			return &models.User{ID: id, Visibility: models.VisibilityPrivate}, nil
		}
		return &models.User{ID: id, Visibility: models.VisibilityPublic}, nil
	}
	emitter := &emitterRecorder{}
	svc := NewFollowService(noopFollowRepo(), users, emitter)

	edge, err := svc.RequestFollow(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, models.FollowStatusPending, edge.Status)

	// pending requests stay silent until approved
	assert.Empty(t, emitter.calls)
}

func TestFollowServiceRequestFollowMissingTarget(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}
	svc := NewFollowService(noopFollowRepo(), users, nil)

	_, err := svc.RequestFollow(context.Background(), 1, 2)
	assert.True(t, models.IsNotFound(err))
}

func TestFollowServiceRequestFollowDuplicate(t *testing.T) {
	follows := noopFollowRepo()
	follows.createFn = func(context.Context, *models.FollowEdge) error {
		return models.NewAlreadyExistsError("follow edge already exists")
	}
	emitter := &emitterRecorder{}
	svc := NewFollowService(follows, noopUserRepo(), emitter)

	_, err := svc.RequestFollow(context.Background(), 1, 2)
	assert.True(t, models.IsAlreadyExists(err))
	// no fan-out on failure
	assert.Empty(t, emitter.calls)
}

func TestFollowServiceApproveFollow(t *testing.T) {
	follows := noopFollowRepo()
	follows.getEdgeFn = func(context.Context, uint, uint) (*models.FollowEdge, error) {
		return &models.FollowEdge{FollowerID: 1, FollowedID: 2, Status: models.FollowStatusPending}, nil
	}
	follows.acceptFn = func(context.Context, uint, uint) (*models.FollowEdge, error) {
		return &models.FollowEdge{FollowerID: 1, FollowedID: 2, Status: models.FollowStatusAccepted}, nil
	}
	emitter := &emitterRecorder{}
	svc := NewFollowService(follows, noopUserRepo(), emitter)

	edge, err := svc.ApproveFollow(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.Equal(t, models.FollowStatusAccepted, edge.Status)

	// approval emits exactly one FOLLOW event, actor is the requester
	require.Len(t, emitter.calls, 1)
	assert.Equal(t, models.NotificationKindFollow, emitter.calls[0].kind)
	assert.Equal(t, uint(1), emitter.calls[0].actorID)
	assert.Equal(t, uint(2), emitter.calls[0].recipientID)
}

func TestFollowServiceApproveFollowNotPending(t *testing.T) {
	follows := noopFollowRepo()
	follows.getEdgeFn = func(context.Context, uint, uint) (*models.FollowEdge, error) {
		return &models.FollowEdge{Status: models.FollowStatusAccepted}, nil
	}
	svc := NewFollowService(follows, noopUserRepo(), nil)

	_, err := svc.ApproveFollow(context.Background(), 2, 1)
	assert.True(t, models.IsInvalidOperation(err))
}

func TestFollowServiceApproveFollowMissing(t *testing.T) {
	svc := NewFollowService(noopFollowRepo(), noopUserRepo(), nil)

	_, err := svc.ApproveFollow(context.Background(), 2, 1)
	assert.True(t, models.IsNotFound(err))
}

func TestFollowServiceEdgeStatus(t *testing.T) {
	tests := []struct {
		name     string
		edge     *models.FollowEdge
		expected EdgeState
	}{
		{"no edge", nil, EdgeStateNone},
		{"pending", &models.FollowEdge{Status: models.FollowStatusPending}, EdgeStatePending},
		{"accepted", &models.FollowEdge{Status: models.FollowStatusAccepted}, EdgeStateAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			follows := noopFollowRepo()
			follows.getEdgeFn = func(context.Context, uint, uint) (*models.FollowEdge, error) {
				return tt.edge, nil
			}
			svc := NewFollowService(follows, noopUserRepo(), nil)

			state, err := svc.EdgeStatus(context.Background(), 1, 2)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, state)
		})
	}
}

func TestFollowServiceUnfollow(t *testing.T) {
	var deletedFollower, deletedFollowed uint
	follows := noopFollowRepo()
	follows.deleteFn = func(_ context.Context, followerID, followedID uint) (bool, error) {
		deletedFollower, deletedFollowed = followerID, followedID
		return true, nil
	}
	svc := NewFollowService(follows, noopUserRepo(), nil)

	require.NoError(t, svc.Unfollow(context.Background(), 1, 2))
	assert.Equal(t, uint(1), deletedFollower)
	assert.Equal(t, uint(2), deletedFollowed)
}

func TestFollowServiceUnfollowIdempotent(t *testing.T) {
	follows := noopFollowRepo()
	follows.deleteFn = func(_ context.Context, followerID, _ uint) (bool, error) {
		return false, models.NewNotFoundError("FollowEdge", followerID)
	}
	svc := NewFollowService(follows, noopUserRepo(), nil)

	assert.NoError(t, svc.Unfollow(context.Background(), 1, 2))
}

func TestFollowServiceRejectFollow(t *testing.T) {
	var rejFollower, rejFollowed uint
	follows := noopFollowRepo()
	follows.deletePendingFn = func(_ context.Context, followerID, followedID uint) error {
		rejFollower, rejFollowed = followerID, followedID
		return nil
	}
	svc := NewFollowService(follows, noopUserRepo(), nil)

	// owner 2 rejects requester 1: the edge runs from 1 toward 2
	require.NoError(t, svc.RejectFollow(context.Background(), 2, 1))
	assert.Equal(t, uint(1), rejFollower)
	assert.Equal(t, uint(2), rejFollowed)
}

func TestFollowServiceListingsDefaultLimit(t *testing.T) {
	var gotLimit int
	follows := noopFollowRepo()
	follows.followersFn = func(_ context.Context, _ uint, limit, _ int) ([]models.User, error) {
		gotLimit = limit
		return nil, nil
	}
	svc := NewFollowService(follows, noopUserRepo(), nil)

	_, err := svc.Followers(context.Background(), 1, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 20, gotLimit)
}
