// Package jobs runs the background maintenance schedule: chat log retention
// and stale order sweeping.
package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"shoplite/internal/services"
)

const stalePendingAge = 24 * time.Hour

// Scheduler owns the background job schedule.
type Scheduler struct {
	scheduler gocron.Scheduler
	analytics *services.AnalyticsService
	orders    *services.OrderService
	retention time.Duration
}

// NewScheduler creates the job scheduler. retentionDays bounds how long chat
// logs are kept.
func NewScheduler(analytics *services.AnalyticsService, orders *services.OrderService, retentionDays int) (*Scheduler, error) {
	if retentionDays < 1 {
		retentionDays = 30
	}

	inner, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		scheduler: inner,
		analytics: analytics,
		orders:    orders,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
	}, nil
}

// Start registers and launches all jobs.
func (s *Scheduler) Start() error {
	// Chat log retention: daily at 03:00
	_, err := s.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0))),
		gocron.NewTask(s.cleanupChatLogs),
		gocron.WithName("chat-log-retention"),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule chat log retention: %w", err)
	}

	// Stale pending orders: hourly
	_, err = s.scheduler.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(s.sweepStaleOrders),
		gocron.WithName("stale-order-sweep"),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule stale order sweep: %w", err)
	}

	s.scheduler.Start()
	log.Printf("🚀 [JOBS] Scheduler started (%d jobs)", len(s.scheduler.Jobs()))
	return nil
}

// Stop shuts the scheduler down, waiting for running jobs.
func (s *Scheduler) Stop() {
	if err := s.scheduler.Shutdown(); err != nil {
		log.Printf("⚠️ [JOBS] Scheduler shutdown: %v", err)
		return
	}
	log.Println("✅ [JOBS] Scheduler stopped")
}

func (s *Scheduler) cleanupChatLogs() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cutoff := time.Now().UTC().Add(-s.retention)
	deleted, err := s.analytics.DeleteChatLogsBefore(ctx, cutoff)
	if err != nil {
		log.Printf("❌ [JOBS] Chat log cleanup failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("🧹 [JOBS] Deleted %d chat logs older than %s", deleted, cutoff.Format("2006-01-02"))
	}
}

func (s *Scheduler) sweepStaleOrders() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	moved, err := s.orders.SweepStalePending(ctx, stalePendingAge)
	if err != nil {
		log.Printf("❌ [JOBS] Stale order sweep failed: %v", err)
		return
	}
	if moved > 0 {
		log.Printf("🔄 [JOBS] Advanced %d stale pending orders to processing", moved)
	}
}
