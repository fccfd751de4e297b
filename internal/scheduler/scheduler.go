// Package scheduler provides cron-based reminder scheduling for the daemon.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/lynneapp/lynne/internal/config"
	"github.com/lynneapp/lynne/internal/logging"
)

// Scheduler manages scheduled tasks using cron.
type Scheduler struct {
	cron            *cron.Cron
	debug           bool
	lastCheck       time.Time
	mu              sync.Mutex
	reminderChecker *ReminderChecker
	planSyncer      *PlanSyncer
}

// NewScheduler creates a new scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds()),
	}
}

// SetDebug enables debug output.
func (s *Scheduler) SetDebug(debug bool) {
	s.debug = debug
	if s.reminderChecker != nil {
		s.reminderChecker.SetDebug(debug)
	}
}

// SetReminderChecker sets the reminder checker.
func (s *Scheduler) SetReminderChecker(checker *ReminderChecker) {
	s.reminderChecker = checker
	if s.debug {
		checker.SetDebug(s.debug)
	}
}

// SetPlanSyncer sets the plan syncer used for the daily rebuild.
func (s *Scheduler) SetPlanSyncer(syncer *PlanSyncer) {
	s.planSyncer = syncer
}

// Start starts the scheduler with all configured jobs.
func (s *Scheduler) Start() error {
	s.lastCheck = time.Now()

	// Check due reminders every minute.
	_, err := s.cron.AddFunc("0 * * * * *", func() {
		s.runMinuteChecks()
	})
	if err != nil {
		return fmt.Errorf("failed to add minute checks: %w", err)
	}

	// Rebuild the plan just after midnight so each day gets a fresh
	// schedule from the stored target time.
	_, err = s.cron.AddFunc("1 0 0 * * *", func() {
		s.runDailyResync()
	})
	if err != nil {
		return fmt.Errorf("failed to add daily resync: %w", err)
	}

	s.cron.Start()

	logging.DebugLog("scheduler started")
	return nil
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	logging.DebugLog("scheduler stopped")
}

// runMinuteChecks runs checks that need to happen every minute.
func (s *Scheduler) runMinuteChecks() {
	s.mu.Lock()
	elapsed := time.Since(s.lastCheck)
	s.lastCheck = time.Now()
	s.mu.Unlock()

	// Skip if system was sleeping; the resync rebuilds the plan with
	// stale entries spent, so nothing floods the moment the lid opens.
	if elapsed > config.Global.SleepThreshold {
		logging.DebugLog("skipping stale checks after sleep",
			"elapsed", elapsed.Round(time.Second).String())
		s.runDailyResync()
		return
	}

	if s.reminderChecker != nil {
		s.reminderChecker.Check()
	}
}

// runDailyResync rebuilds today's reminder plan.
func (s *Scheduler) runDailyResync() {
	if s.planSyncer == nil {
		return
	}
	if err := s.planSyncer.Sync(time.Now()); err != nil {
		logging.Warn("daily plan resync failed", logging.KeyError, err.Error())
	}
}

// AddJob adds a custom job to the scheduler.
func (s *Scheduler) AddJob(spec string, job func()) (cron.EntryID, error) {
	return s.cron.AddFunc(spec, job)
}

// RemoveJob removes a job from the scheduler.
func (s *Scheduler) RemoveJob(id cron.EntryID) {
	s.cron.Remove(id)
}

// Entries returns all scheduled entries.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// NextRun returns the next scheduled run time for any job.
func (s *Scheduler) NextRun() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}

	next := entries[0].Next
	for _, e := range entries[1:] {
		if e.Next.Before(next) {
			next = e.Next
		}
	}
	return next
}
