package scheduler

import (
	"context"
	"time"

	"github.com/lynneapp/lynne/internal/logging"
	"github.com/lynneapp/lynne/internal/model"
	"github.com/lynneapp/lynne/internal/notify"
	"github.com/lynneapp/lynne/internal/reminder"
	"github.com/lynneapp/lynne/internal/storage"
)

// ReminderChecker delivers due entries from today's reminder plan.
type ReminderChecker struct {
	planRepo     *storage.PlanRepo
	checkinRepo  *storage.CheckInRepo
	settingsRepo *storage.SettingsRepo
	dispatcher   *notify.Dispatcher
	debug        bool

	// now is swappable for tests.
	now func() time.Time
}

// NewReminderChecker creates a new reminder checker.
func NewReminderChecker(planRepo *storage.PlanRepo, checkinRepo *storage.CheckInRepo, settingsRepo *storage.SettingsRepo, webhookRepo *storage.WebhookRepo) *ReminderChecker {
	return &ReminderChecker{
		planRepo:     planRepo,
		checkinRepo:  checkinRepo,
		settingsRepo: settingsRepo,
		dispatcher:   notify.NewDispatcher(webhookRepo),
		now:          time.Now,
	}
}

// SetDebug enables debug output.
func (c *ReminderChecker) SetDebug(debug bool) {
	c.debug = debug
}

// SetDispatcher overrides the notification dispatcher.
func (c *ReminderChecker) SetDispatcher(d *notify.Dispatcher) {
	c.dispatcher = d
}

// Check delivers every due, undelivered entry of today's plan. Entries
// suppressed by a check-in are marked delivered without being sent.
func (c *ReminderChecker) Check() {
	now := c.now()

	plan, err := c.planRepo.Get()
	if err != nil {
		logging.Warn("failed to load reminder plan", logging.KeyError, err.Error())
		return
	}
	if plan == nil {
		return
	}

	// A plan from a previous day never fires; the daily resync replaces it.
	if model.DateKey(plan.Target) != model.DateKey(now) {
		logging.DebugLog("skipping stale reminder plan",
			logging.KeyDate, model.DateKey(plan.Target))
		return
	}

	due := plan.Pending(now)
	if len(due) == 0 {
		return
	}

	suppress := c.suppressAfterCheckIn(now)

	changed := false
	for i := range plan.Entries {
		e := &plan.Entries[i]
		if e.Delivered || e.At.After(now) {
			continue
		}

		if suppress {
			logging.DebugLog("suppressing reminder after check-in",
				logging.KeyReminderID, e.ID)
			e.Delivered = true
			changed = true
			continue
		}

		c.deliver(*e)
		e.Delivered = true
		changed = true
	}

	if changed {
		if err := c.planRepo.Update(plan); err != nil {
			logging.Warn("failed to persist delivered reminders",
				logging.KeyError, err.Error())
		}
	}
}

// suppressAfterCheckIn reports whether today's check-in should silence
// the remaining reminders.
func (c *ReminderChecker) suppressAfterCheckIn(now time.Time) bool {
	settings, _, err := c.settingsRepo.Get()
	if err != nil || !settings.StopAfterCheckIn {
		return false
	}

	_, found, err := c.checkinRepo.Get(model.DateKey(now))
	if err != nil {
		return false
	}
	return found
}

// deliver sends one planned reminder to every enabled webhook.
func (c *ReminderChecker) deliver(e model.PlannedReminder) {
	n := model.FromPlanned(e)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	results := c.dispatcher.SendNotification(ctx, n)
	for _, r := range results {
		if r.Error != nil {
			logging.Warn("reminder delivery failed",
				logging.KeyReminderID, e.ID,
				logging.KeyWebhook, r.WebhookName,
				logging.KeyError, r.Error.Error())
		} else {
			logging.DebugLog("reminder delivered",
				logging.KeyReminderID, e.ID,
				logging.KeyWebhook, r.WebhookName,
				logging.KeyDuration, r.Duration.Milliseconds())
		}
	}
}

// PlanSyncer rebuilds the reminder plan from the stored target time and
// settings.
type PlanSyncer struct {
	checkinRepo  *storage.CheckInRepo
	settingsRepo *storage.SettingsRepo
	planRepo     *storage.PlanRepo
}

// NewPlanSyncer creates a new plan syncer.
func NewPlanSyncer(checkinRepo *storage.CheckInRepo, settingsRepo *storage.SettingsRepo, planRepo *storage.PlanRepo) *PlanSyncer {
	return &PlanSyncer{
		checkinRepo:  checkinRepo,
		settingsRepo: settingsRepo,
		planRepo:     planRepo,
	}
}

// Sync replaces the stored plan with a fresh one for now's day. With no
// target time set there is nothing to schedule and any old plan is
// cancelled.
func (s *PlanSyncer) Sync(now time.Time) (err error) {
	target, ok, err := s.checkinRepo.TargetTime()
	if err != nil {
		return err
	}
	if !ok {
		return s.planRepo.Cancel()
	}

	settings, _, err := s.settingsRepo.Get()
	if err != nil {
		return err
	}

	plan := reminder.BuildPlan(target, settings, now)
	if err := s.planRepo.Replace(plan); err != nil {
		return err
	}

	logging.Info("reminder plan synced",
		logging.KeyDate, model.DateKey(now),
		logging.KeyCount, len(plan.Entries))
	return nil
}
