// Package bootstrap wires the application's infrastructure and service
// layer together from configuration.
package bootstrap

import (
	"context"
	"fmt"

	"ripple/internal/cache"
	"ripple/internal/config"
	"ripple/internal/database"
	"ripple/internal/notifications"
	"ripple/internal/observability"
	"ripple/internal/repository"
	"ripple/internal/service"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Runtime holds the initialized infrastructure handles and the fully
// wired service layer.
type Runtime struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Stream *notifications.EventStream

	shutdownTracing func(context.Context) error

	Users         *service.UserService
	Follows       *service.FollowService
	Posts         *service.PostService
	Feed          *service.FeedService
	Engagement    *service.EngagementService
	Notifications *service.NotificationService
}

// InitRuntime connects to the database and Redis, builds the fan-out
// transports, and wires the service layer. Redis and Kafka are
// optional; a missing broker list or unreachable Redis disables the
// corresponding transport without failing startup.
func InitRuntime(cfg *config.Config) (*Runtime, error) {
	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:  "ripple",
		Environment:  cfg.Env,
		Enabled:      cfg.TracingEnabled,
		Exporter:     cfg.TracingExporter,
		OTLPEndpoint: cfg.TracingOTLPEndpoint,
		SamplerRatio: cfg.TracingSamplerRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("tracing init failed: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// May leave a nil client when Redis is unreachable.
	cache.InitRedis(cfg.RedisURL)
	rdb := cache.GetClient()

	stream := notifications.NewEventStream(cfg.Brokers(), cfg.KafkaTopic)
	notifier := notifications.NewNotifier(rdb)

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	notificationService := service.NewNotificationService(notificationRepo, notifier, stream)

	return &Runtime{
		DB:     db,
		Redis:  rdb,
		Stream: stream,

		shutdownTracing: shutdownTracing,

		Users:         service.NewUserService(userRepo),
		Follows:       service.NewFollowService(followRepo, userRepo, notificationService),
		Posts:         service.NewPostService(postRepo, userRepo, followRepo, notificationService),
		Feed:          service.NewFeedService(postRepo, cfg.FeedMaxLimit),
		Engagement:    service.NewEngagementService(postRepo, commentRepo, userRepo, notificationService),
		Notifications: notificationService,
	}, nil
}

// Close releases the runtime's long-lived connections.
func (r *Runtime) Close() error {
	var firstErr error
	if r.Stream != nil {
		if err := r.Stream.Close(); err != nil {
			firstErr = err
		}
	}
	if r.Redis != nil {
		if err := r.Redis.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if r.DB != nil {
		if sqlDB, err := r.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	if r.shutdownTracing != nil {
		if err := r.shutdownTracing(context.Background()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
