// Package scheduler runs the catalog-wide refresh on a daily cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/Omersenem/dovizkuru/internal/service"
)

// Scheduler manages the periodic refresh task.
type Scheduler struct {
	cron    *cron.Cron
	refresh *service.RefreshService
	ctx     context.Context
}

// NewScheduler creates a new Scheduler around the refresh service.
func NewScheduler(ctx context.Context, refresh *service.RefreshService) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		refresh: refresh,
		ctx:     ctx,
	}
}

// Register schedules the daily refresh with the given cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("Scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("Scheduler stopped")
}

// RunNow executes the refresh task immediately, used for refresh-on-start.
func (s *Scheduler) RunNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	log.Println("Running scheduled refresh")
	resp := s.refresh.RefreshAll(s.ctx)
	if !resp.Success {
		log.Printf("Scheduled refresh failed for every asset (%d errors)", len(resp.Errors))
		return
	}
	log.Printf("Scheduled refresh done: %d assets, %d new prices, %d errors",
		len(resp.Refreshed), resp.TotalAdded, len(resp.Errors))
}
