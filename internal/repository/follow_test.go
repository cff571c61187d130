package repository

import (
	"context"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository_CreateAccepted(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	follower := createTestUser(t, db, "alice", models.VisibilityPublic)
	followed := createTestUser(t, db, "bob", models.VisibilityPublic)

	edge := &models.FollowEdge{
		FollowerID: follower.ID,
		FollowedID: followed.ID,
		Status:     models.InitialFollowStatus(followed.Visibility),
	}
	require.NoError(t, repo.Create(ctx, edge))
	assert.Equal(t, models.FollowStatusAccepted, edge.Status)

	// counters move only for accepted edges
	var f, g models.User
	db.First(&f, follower.ID)
	db.First(&g, followed.ID)
	assert.Equal(t, 1, f.FollowingCount)
	assert.Equal(t, 1, g.FollowersCount)
}

func TestFollowRepository_CreatePending(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	follower := createTestUser(t, db, "alice", models.VisibilityPublic)
	followed := createTestUser(t, db, "bob", models.VisibilityPrivate)

	edge := &models.FollowEdge{
		FollowerID: follower.ID,
		FollowedID: followed.ID,
		Status:     models.InitialFollowStatus(followed.Visibility),
	}
	require.NoError(t, repo.Create(ctx, edge))
	assert.Equal(t, models.FollowStatusPending, edge.Status)

	var f, g models.User
	db.First(&f, follower.ID)
	db.First(&g, followed.ID)
	assert.Zero(t, f.FollowingCount)
	assert.Zero(t, g.FollowersCount)
}

func TestFollowRepository_CreateDuplicate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	follower := createTestUser(t, db, "alice", models.VisibilityPublic)
	followed := createTestUser(t, db, "bob", models.VisibilityPublic)

	edge := &models.FollowEdge{FollowerID: follower.ID, FollowedID: followed.ID, Status: models.FollowStatusAccepted}
	require.NoError(t, repo.Create(ctx, edge))

	dup := &models.FollowEdge{FollowerID: follower.ID, FollowedID: followed.ID, Status: models.FollowStatusAccepted}
	err := repo.Create(ctx, dup)
	assert.True(t, models.IsAlreadyExists(err))

	// the failed insert must not move counters
	var g models.User
	db.First(&g, followed.ID)
	assert.Equal(t, 1, g.FollowersCount)
}

func TestFollowRepository_Accept(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	follower := createTestUser(t, db, "alice", models.VisibilityPublic)
	followed := createTestUser(t, db, "bob", models.VisibilityPrivate)

	edge := &models.FollowEdge{FollowerID: follower.ID, FollowedID: followed.ID, Status: models.FollowStatusPending}
	require.NoError(t, repo.Create(ctx, edge))

	accepted, err := repo.Accept(ctx, follower.ID, followed.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FollowStatusAccepted, accepted.Status)

	var f, g models.User
	db.First(&f, follower.ID)
	db.First(&g, followed.ID)
	assert.Equal(t, 1, f.FollowingCount)
	assert.Equal(t, 1, g.FollowersCount)

	// a second approval is invalid, not a second increment
	_, err = repo.Accept(ctx, follower.ID, followed.ID)
	assert.True(t, models.IsInvalidOperation(err))

	db.First(&g, followed.ID)
	assert.Equal(t, 1, g.FollowersCount)
}

func TestFollowRepository_AcceptMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)

	_, err := repo.Accept(context.Background(), 1, 2)
	assert.True(t, models.IsNotFound(err))
}

func TestFollowRepository_DeleteAccepted(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	follower := createTestUser(t, db, "alice", models.VisibilityPublic)
	followed := createTestUser(t, db, "bob", models.VisibilityPublic)

	edge := &models.FollowEdge{FollowerID: follower.ID, FollowedID: followed.ID, Status: models.FollowStatusAccepted}
	require.NoError(t, repo.Create(ctx, edge))

	wasAccepted, err := repo.Delete(ctx, follower.ID, followed.ID)
	require.NoError(t, err)
	assert.True(t, wasAccepted)

	var f, g models.User
	db.First(&f, follower.ID)
	db.First(&g, followed.ID)
	assert.Zero(t, f.FollowingCount)
	assert.Zero(t, g.FollowersCount)

	_, err = repo.Delete(ctx, follower.ID, followed.ID)
	assert.True(t, models.IsNotFound(err))
}

func TestFollowRepository_DeletePendingEdge(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	follower := createTestUser(t, db, "alice", models.VisibilityPublic)
	followed := createTestUser(t, db, "bob", models.VisibilityPrivate)

	edge := &models.FollowEdge{FollowerID: follower.ID, FollowedID: followed.ID, Status: models.FollowStatusPending}
	require.NoError(t, repo.Create(ctx, edge))

	// withdrawing a pending request must not move counters
	wasAccepted, err := repo.Delete(ctx, follower.ID, followed.ID)
	require.NoError(t, err)
	assert.False(t, wasAccepted)

	var g models.User
	db.First(&g, followed.ID)
	assert.Zero(t, g.FollowersCount)
}

func TestFollowRepository_DeletePending(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	follower := createTestUser(t, db, "alice", models.VisibilityPublic)
	followed := createTestUser(t, db, "bob", models.VisibilityPrivate)

	edge := &models.FollowEdge{FollowerID: follower.ID, FollowedID: followed.ID, Status: models.FollowStatusPending}
	require.NoError(t, repo.Create(ctx, edge))

	require.NoError(t, repo.DeletePending(ctx, follower.ID, followed.ID))

	got, err := repo.GetEdge(ctx, follower.ID, followed.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// rejecting an accepted edge is not possible through DeletePending
	accepted := &models.FollowEdge{FollowerID: followed.ID, FollowedID: follower.ID, Status: models.FollowStatusAccepted}
	require.NoError(t, repo.Create(ctx, accepted))
	err = repo.DeletePending(ctx, followed.ID, follower.ID)
	assert.True(t, models.IsNotFound(err))
}

func TestFollowRepository_Listings(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice", models.VisibilityPublic)
	bob := createTestUser(t, db, "bob", models.VisibilityPublic)
	carol := createTestUser(t, db, "carol", models.VisibilityPrivate)

	require.NoError(t, repo.Create(ctx, &models.FollowEdge{
		FollowerID: alice.ID, FollowedID: bob.ID, Status: models.FollowStatusAccepted,
	}))
	require.NoError(t, repo.Create(ctx, &models.FollowEdge{
		FollowerID: alice.ID, FollowedID: carol.ID, Status: models.FollowStatusPending,
	}))
	require.NoError(t, repo.Create(ctx, &models.FollowEdge{
		FollowerID: bob.ID, FollowedID: carol.ID, Status: models.FollowStatusPending,
	}))

	// pending edges stay out of follower/following listings
	following, err := repo.Following(ctx, alice.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "bob", following[0].Handle)

	followers, err := repo.Followers(ctx, bob.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, "alice", followers[0].Handle)

	pending, err := repo.PendingRequests(ctx, carol.ID)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	requesters := []uint{pending[0].FollowerID, pending[1].FollowerID}
	assert.ElementsMatch(t, []uint{alice.ID, bob.ID}, requesters)
}

func TestUserRepository_ReconcileCounters(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	follows := NewFollowRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice", models.VisibilityPublic)
	bob := createTestUser(t, db, "bob", models.VisibilityPublic)

	require.NoError(t, follows.Create(ctx, &models.FollowEdge{
		FollowerID: alice.ID, FollowedID: bob.ID, Status: models.FollowStatusAccepted,
	}))

	// drift the stored counter
	db.Model(&models.User{}).Where("id = ?", bob.ID).Update("followers_count", 99)

	fixed, drifted, err := users.ReconcileCounters(ctx, bob.ID)
	require.NoError(t, err)
	assert.True(t, drifted)
	assert.Equal(t, 1, fixed.FollowersCount)

	var stored models.User
	db.First(&stored, bob.ID)
	assert.Equal(t, 1, stored.FollowersCount)
}
