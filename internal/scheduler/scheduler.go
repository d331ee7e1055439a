// Package scheduler runs background maintenance jobs. The only job
// today is the orphan sweep: inventory rows consumed down to quantity
// zero are kept alive while a timed effect still references them, and
// become dead data once that effect expires.
package scheduler

import (
	"database/sql"
	"time"

	"github.com/go-co-op/gocron"

	"cardquest/internal/database"
	"cardquest/internal/logger"
)

type Scheduler struct {
	scheduler *gocron.Scheduler
	db        *sql.DB
}

func New(db *sql.DB) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		db:        db,
	}
}

// Start schedules the orphan sweep at the given interval and runs the
// scheduler in the background.
func (s *Scheduler) Start(sweepInterval time.Duration) {
	if _, err := s.scheduler.Every(sweepInterval).Do(s.sweepOrphans); err != nil {
		logger.Error("Failed to schedule orphan sweep", "error", err)
		return
	}
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled jobs.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) sweepOrphans() {
	removed, err := database.SweepOrphanedPowerUps(s.db)
	if err != nil {
		logger.Error("Orphan sweep failed", "error", err)
		return
	}
	if removed > 0 {
		logger.Info("Swept orphaned powerup rows", "removed", removed)
	}
}
