package service

import (
	"context"

	"ripple/internal/models"
)

type followRepoStub struct {
	createFn          func(context.Context, *models.FollowEdge) error
	getEdgeFn         func(context.Context, uint, uint) (*models.FollowEdge, error)
	acceptFn          func(context.Context, uint, uint) (*models.FollowEdge, error)
	deleteFn          func(context.Context, uint, uint) (bool, error)
	deletePendingFn   func(context.Context, uint, uint) error
	followersFn       func(context.Context, uint, int, int) ([]models.User, error)
	followingFn       func(context.Context, uint, int, int) ([]models.User, error)
	pendingRequestsFn func(context.Context, uint) ([]models.FollowEdge, error)
}

func (s *followRepoStub) Create(ctx context.Context, edge *models.FollowEdge) error {
	return s.createFn(ctx, edge)
}
func (s *followRepoStub) GetEdge(ctx context.Context, followerID, followedID uint) (*models.FollowEdge, error) {
	return s.getEdgeFn(ctx, followerID, followedID)
}
func (s *followRepoStub) Accept(ctx context.Context, followerID, followedID uint) (*models.FollowEdge, error) {
	return s.acceptFn(ctx, followerID, followedID)
}
func (s *followRepoStub) Delete(ctx context.Context, followerID, followedID uint) (bool, error) {
	return s.deleteFn(ctx, followerID, followedID)
}
func (s *followRepoStub) DeletePending(ctx context.Context, followerID, followedID uint) error {
	return s.deletePendingFn(ctx, followerID, followedID)
}
func (s *followRepoStub) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.followersFn(ctx, userID, limit, offset)
}
func (s *followRepoStub) Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.followingFn(ctx, userID, limit, offset)
}
func (s *followRepoStub) PendingRequests(ctx context.Context, userID uint) ([]models.FollowEdge, error) {
	return s.pendingRequestsFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:          func(context.Context, *models.FollowEdge) error { return nil },
		getEdgeFn:         func(context.Context, uint, uint) (*models.FollowEdge, error) { return nil, nil },
		acceptFn:          func(context.Context, uint, uint) (*models.FollowEdge, error) { return &models.FollowEdge{}, nil },
		deleteFn:          func(context.Context, uint, uint) (bool, error) { return true, nil },
		deletePendingFn:   func(context.Context, uint, uint) error { return nil },
		followersFn:       func(context.Context, uint, int, int) ([]models.User, error) { return nil, nil },
		followingFn:       func(context.Context, uint, int, int) ([]models.User, error) { return nil, nil },
		pendingRequestsFn: func(context.Context, uint) ([]models.FollowEdge, error) { return nil, nil },
	}
}

type userRepoStub struct {
	createFn            func(context.Context, *models.User) error
	getByIDFn           func(context.Context, uint) (*models.User, error)
	getByHandleFn       func(context.Context, string) (*models.User, error)
	updateFieldsFn      func(context.Context, uint, map[string]interface{}) error
	reconcileCountersFn func(context.Context, uint) (*models.User, bool, error)
	listIDsFn           func(context.Context) ([]uint, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByHandle(ctx context.Context, handle string) (*models.User, error) {
	return s.getByHandleFn(ctx, handle)
}
func (s *userRepoStub) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return s.updateFieldsFn(ctx, id, fields)
}
func (s *userRepoStub) ReconcileCounters(ctx context.Context, userID uint) (*models.User, bool, error) {
	return s.reconcileCountersFn(ctx, userID)
}
func (s *userRepoStub) ListIDs(ctx context.Context) ([]uint, error) {
	return s.listIDsFn(ctx)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:      func(context.Context, *models.User) error { return nil },
		getByIDFn:     func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByHandleFn: func(context.Context, string) (*models.User, error) { return &models.User{}, nil },
		updateFieldsFn: func(context.Context, uint, map[string]interface{}) error {
			return nil
		},
		reconcileCountersFn: func(_ context.Context, id uint) (*models.User, bool, error) {
			return &models.User{ID: id}, false, nil
		},
		listIDsFn: func(context.Context) ([]uint, error) { return nil, nil },
	}
}

type postRepoStub struct {
	createFn            func(context.Context, *models.Post) error
	getByIDFn           func(context.Context, uint, uint) (*models.Post, error)
	getByAuthorIDFn     func(context.Context, uint, int, int, uint) ([]*models.Post, error)
	listFeedFn          func(context.Context, int, int, uint) ([]*models.Post, error)
	listFollowingFeedFn func(context.Context, uint, int, int) ([]*models.Post, error)
	toggleLikeFn        func(context.Context, uint, uint) (bool, int, error)
	likedByFn           func(context.Context, uint) ([]uint, error)
	isLikedFn           func(context.Context, uint, uint) (bool, error)
	createCommentFn     func(context.Context, *models.Comment) error
	recordShareFn       func(context.Context, uint, uint) (int, error)
	deleteFn            func(context.Context, uint) error
	reconcilePostFn     func(context.Context, uint) (*models.Post, bool, error)
	listIDsFn           func(context.Context) ([]uint, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, viewerID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *postRepoStub) GetByAuthorID(ctx context.Context, authorID uint, limit, offset int, viewerID uint) ([]*models.Post, error) {
	return s.getByAuthorIDFn(ctx, authorID, limit, offset, viewerID)
}
func (s *postRepoStub) ListFeed(ctx context.Context, limit, offset int, viewerID uint) ([]*models.Post, error) {
	return s.listFeedFn(ctx, limit, offset, viewerID)
}
func (s *postRepoStub) ListFollowingFeed(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Post, error) {
	return s.listFollowingFeedFn(ctx, viewerID, limit, offset)
}
func (s *postRepoStub) ToggleLike(ctx context.Context, userID, postID uint) (bool, int, error) {
	return s.toggleLikeFn(ctx, userID, postID)
}
func (s *postRepoStub) LikedBy(ctx context.Context, postID uint) ([]uint, error) {
	return s.likedByFn(ctx, postID)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) CreateComment(ctx context.Context, comment *models.Comment) error {
	return s.createCommentFn(ctx, comment)
}
func (s *postRepoStub) RecordShare(ctx context.Context, userID, postID uint) (int, error) {
	return s.recordShareFn(ctx, userID, postID)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) ReconcilePost(ctx context.Context, postID uint) (*models.Post, bool, error) {
	return s.reconcilePostFn(ctx, postID)
}
func (s *postRepoStub) ListIDs(ctx context.Context) ([]uint, error) {
	return s.listIDsFn(ctx)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(context.Context, *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
		getByAuthorIDFn: func(context.Context, uint, int, int, uint) ([]*models.Post, error) { return nil, nil },
		listFeedFn:      func(context.Context, int, int, uint) ([]*models.Post, error) { return nil, nil },
		listFollowingFeedFn: func(context.Context, uint, int, int) ([]*models.Post, error) {
			return nil, nil
		},
		toggleLikeFn:    func(context.Context, uint, uint) (bool, int, error) { return true, 1, nil },
		likedByFn:       func(context.Context, uint) ([]uint, error) { return nil, nil },
		isLikedFn:       func(context.Context, uint, uint) (bool, error) { return false, nil },
		createCommentFn: func(context.Context, *models.Comment) error { return nil },
		recordShareFn:   func(context.Context, uint, uint) (int, error) { return 1, nil },
		deleteFn:        func(context.Context, uint) error { return nil },
		reconcilePostFn: func(_ context.Context, id uint) (*models.Post, bool, error) {
			return &models.Post{ID: id}, false, nil
		},
		listIDsFn: func(context.Context) ([]uint, error) { return nil, nil },
	}
}

type commentRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint, int, int) ([]*models.Comment, error)
}

func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID, limit, offset)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		getByIDFn:    func(context.Context, uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listByPostFn: func(context.Context, uint, int, int) ([]*models.Comment, error) { return nil, nil },
	}
}

type notificationRepoStub struct {
	createFn          func(context.Context, *models.Notification) error
	listByRecipientFn func(context.Context, uint, int, int) ([]*models.Notification, error)
	unreadCountFn     func(context.Context, uint) (int64, error)
	markReadFn        func(context.Context, uint, uint) error
	markAllReadFn     func(context.Context, uint) (int64, error)
}

func (s *notificationRepoStub) Create(ctx context.Context, notification *models.Notification) error {
	return s.createFn(ctx, notification)
}
func (s *notificationRepoStub) ListByRecipient(ctx context.Context, recipientID uint, limit, offset int) ([]*models.Notification, error) {
	return s.listByRecipientFn(ctx, recipientID, limit, offset)
}
func (s *notificationRepoStub) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	return s.unreadCountFn(ctx, recipientID)
}
func (s *notificationRepoStub) MarkRead(ctx context.Context, recipientID, notificationID uint) error {
	return s.markReadFn(ctx, recipientID, notificationID)
}
func (s *notificationRepoStub) MarkAllRead(ctx context.Context, recipientID uint) (int64, error) {
	return s.markAllReadFn(ctx, recipientID)
}

func noopNotificationRepo() *notificationRepoStub {
	return &notificationRepoStub{
		createFn: func(context.Context, *models.Notification) error { return nil },
		listByRecipientFn: func(context.Context, uint, int, int) ([]*models.Notification, error) {
			return nil, nil
		},
		unreadCountFn: func(context.Context, uint) (int64, error) { return 0, nil },
		markReadFn:    func(context.Context, uint, uint) error { return nil },
		markAllReadFn: func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

// emitterRecorder captures fan-out calls for assertions.
type emitterRecorder struct {
	calls []emittedCall
}

type emittedCall struct {
	kind        models.NotificationKind
	actorID     uint
	recipientID uint
	subject     models.Subject
}

func (r *emitterRecorder) Emit(_ context.Context, kind models.NotificationKind, actorID, recipientID uint, subject models.Subject) error {
	r.calls = append(r.calls, emittedCall{kind: kind, actorID: actorID, recipientID: recipientID, subject: subject})
	return nil
}
