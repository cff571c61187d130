// Command reconcile recomputes denormalized engagement and follow
// counters from their authoritative rows and repairs any drift.
package main

import (
	"context"
	"log"

	"ripple/internal/bootstrap"
	"ripple/internal/config"
	"ripple/internal/observability"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	rt, err := bootstrap.InitRuntime(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}
	defer func() {
		if err := rt.Close(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	ctx := observability.WithCorrelationID(context.Background(), observability.GenerateCorrelationID())
	report, err := rt.Engagement.ReconcileCounters(ctx)
	if err != nil {
		log.Fatalf("Reconciliation failed: %v", err)
	}

	log.Printf("posts checked=%d corrected=%d", report.PostsChecked, report.PostsCorrected)
	log.Printf("users checked=%d corrected=%d", report.UsersChecked, report.UsersCorrected)
}
