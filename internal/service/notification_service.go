// Package service implements the business rules on top of the repositories.
package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/notifications"
	"ripple/internal/observability"
	"ripple/internal/repository"
)

// Publisher pushes a stored notification to real-time consumers.
type Publisher interface {
	PublishUser(ctx context.Context, userID uint, payload string) error
}

// Streamer appends fan-out events to a durable stream.
type Streamer interface {
	Publish(ctx context.Context, event notifications.FanoutEvent) error
}

// NotificationService owns notification fan-out and the recipient's
// read-state operations.
type NotificationService struct {
	repo      repository.NotificationRepository
	publisher Publisher
	stream    Streamer
}

// NewNotificationService returns a new NotificationService. publisher
// and stream may be nil; fan-out then stops at the database.
func NewNotificationService(repo repository.NotificationRepository, publisher Publisher, stream Streamer) *NotificationService {
	return &NotificationService{
		repo:      repo,
		publisher: publisher,
		stream:    stream,
	}
}

// Emit stores a notification and pushes it to downstream transports.
// Self-actions are suppressed: nobody is notified about their own
// activity. Transport failures are logged and counted, never returned;
// the row in the notifications table is the source of truth.
func (s *NotificationService) Emit(ctx context.Context, kind models.NotificationKind, actorID, recipientID uint, subject models.Subject) error {
	if !kind.Valid() {
		return models.NewValidationError("unknown notification kind")
	}
	if actorID == recipientID {
		observability.FanoutSuppressed.WithLabelValues(string(kind)).Inc()
		return nil
	}

	notification := &models.Notification{
		Kind:        kind,
		ActorID:     actorID,
		RecipientID: recipientID,
		SubjectType: subject.Type,
		SubjectID:   subject.ID,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return err
	}
	observability.FanoutEmitted.WithLabelValues(string(kind)).Inc()

	event := notifications.NewFanoutEvent(string(kind), actorID, recipientID, subject.Type, subject.ID)

	if s.publisher != nil {
		payload, err := event.Encode()
		if err == nil {
			err = s.publisher.PublishUser(ctx, recipientID, payload)
		}
		if err != nil {
			observability.FanoutPublishFailures.WithLabelValues("redis").Inc()
			observability.Logger.WarnContext(ctx, "notification publish failed",
				"recipient_id", recipientID, "kind", kind, "error", err)
		}
	}

	if s.stream != nil {
		if err := s.stream.Publish(ctx, event); err != nil {
			observability.FanoutPublishFailures.WithLabelValues("kafka").Inc()
			observability.Logger.WarnContext(ctx, "notification stream append failed",
				"recipient_id", recipientID, "kind", kind, "error", err)
		}
	}

	return nil
}

// List returns the recipient's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, recipientID uint, limit, offset int) ([]*models.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListByRecipient(ctx, recipientID, limit, offset)
}

// UnreadCount returns how many notifications the recipient has not read.
func (s *NotificationService) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	return s.repo.UnreadCount(ctx, recipientID)
}

// MarkRead marks a single notification as read for its recipient.
func (s *NotificationService) MarkRead(ctx context.Context, recipientID, notificationID uint) error {
	return s.repo.MarkRead(ctx, recipientID, notificationID)
}

// MarkAllRead marks every unread notification for the recipient and
// returns how many were updated.
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uint) (int64, error) {
	return s.repo.MarkAllRead(ctx, recipientID)
}
