package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// FanoutEmitted counts persisted notifications by kind.
	FanoutEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_fanout_emitted_total",
		Help: "Total number of notifications created by fan-out, by kind",
	}, []string{"kind"})

	// FanoutSuppressed counts fan-out events dropped because the actor and
	// recipient were the same user.
	FanoutSuppressed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_fanout_suppressed_total",
		Help: "Total number of self-action fan-out events suppressed, by kind",
	}, []string{"kind"})

	// FanoutPublishFailures counts failed event publishes by transport.
	// Publish failures never roll back the triggering mutation.
	FanoutPublishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_fanout_publish_failures_total",
		Help: "Total number of failed fan-out event publishes, by transport",
	}, []string{"transport"})

	// CounterDrift counts posts or users whose denormalized counters
	// disagreed with their authoritative tables at reconcile time.
	CounterDrift = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_counter_drift_total",
		Help: "Total number of rows with drifted counters found by reconciliation",
	}, []string{"entity"})
)
