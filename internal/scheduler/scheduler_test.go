package scheduler

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lynneapp/lynne/internal/model"
	"github.com/lynneapp/lynne/internal/reminder"
	"github.com/lynneapp/lynne/internal/storage"
)

type testEnv struct {
	db       *storage.DB
	checkins *storage.CheckInRepo
	settings *storage.SettingsRepo
	plans    *storage.PlanRepo
	webhooks *storage.WebhookRepo
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &testEnv{
		db:       db,
		checkins: storage.NewCheckInRepo(db),
		settings: storage.NewSettingsRepo(db),
		plans:    storage.NewPlanRepo(db),
		webhooks: storage.NewWebhookRepo(db),
	}
}

func (e *testEnv) checker() *ReminderChecker {
	return NewReminderChecker(e.plans, e.checkins, e.settings, e.webhooks)
}

func countingServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	return server
}

// =============================================================================
// Scheduler Tests
// =============================================================================

func TestSchedulerStartStop(t *testing.T) {
	env := setupEnv(t)

	s := NewScheduler()
	s.SetReminderChecker(env.checker())
	s.SetPlanSyncer(NewPlanSyncer(env.checkins, env.settings, env.plans))

	require.NoError(t, s.Start())
	assert.Len(t, s.Entries(), 2)
	assert.False(t, s.NextRun().IsZero())

	s.Stop()
}

func TestSchedulerAddRemoveJob(t *testing.T) {
	s := NewScheduler()

	id, err := s.AddJob("0 * * * * *", func() {})
	require.NoError(t, err)
	assert.Len(t, s.Entries(), 1)

	s.RemoveJob(id)
	assert.Empty(t, s.Entries())
}

func TestSchedulerNextRunEmpty(t *testing.T) {
	s := NewScheduler()
	assert.True(t, s.NextRun().IsZero())
}

// =============================================================================
// ReminderChecker Tests
// =============================================================================

func TestCheckerNoPlan(t *testing.T) {
	env := setupEnv(t)
	c := env.checker()

	// Nothing stored; must not panic or send.
	c.Check()
}

func TestCheckerDeliversDueEntries(t *testing.T) {
	env := setupEnv(t)

	var hits atomic.Int32
	server := countingServer(t, &hits)
	require.NoError(t, env.webhooks.Create(model.NewWebhook("phone", model.WebhookTypeGeneric, server.URL)))

	now := time.Now()
	plan := &model.ReminderPlan{
		Target:    now,
		CreatedAt: now,
		Entries: []model.PlannedReminder{
			{ID: "past", Kind: model.ReminderMain, At: now.Add(-time.Minute), Title: "Lynne", Body: "now"},
			{ID: "future", Kind: model.ReminderFollowUp, At: now.Add(time.Hour), Title: "Lynne", Body: "later"},
		},
	}
	require.NoError(t, env.plans.Replace(plan))

	c := env.checker()
	c.now = func() time.Time { return now }
	c.Check()

	assert.Equal(t, int32(1), hits.Load())

	stored, err := env.plans.Get()
	require.NoError(t, err)
	assert.True(t, stored.Entries[0].Delivered)
	assert.False(t, stored.Entries[1].Delivered)
}

func TestCheckerSkipsDeliveredEntries(t *testing.T) {
	env := setupEnv(t)

	var hits atomic.Int32
	server := countingServer(t, &hits)
	require.NoError(t, env.webhooks.Create(model.NewWebhook("phone", model.WebhookTypeGeneric, server.URL)))

	now := time.Now()
	plan := &model.ReminderPlan{
		Target: now,
		Entries: []model.PlannedReminder{
			{ID: "done", Kind: model.ReminderMain, At: now.Add(-time.Minute), Delivered: true},
		},
	}
	require.NoError(t, env.plans.Replace(plan))

	c := env.checker()
	c.now = func() time.Time { return now }
	c.Check()

	assert.Equal(t, int32(0), hits.Load())
}

func TestCheckerSkipsStalePlan(t *testing.T) {
	env := setupEnv(t)

	var hits atomic.Int32
	server := countingServer(t, &hits)
	require.NoError(t, env.webhooks.Create(model.NewWebhook("phone", model.WebhookTypeGeneric, server.URL)))

	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	plan := &model.ReminderPlan{
		Target: yesterday,
		Entries: []model.PlannedReminder{
			{ID: "old", Kind: model.ReminderMain, At: yesterday},
		},
	}
	require.NoError(t, env.plans.Replace(plan))

	c := env.checker()
	c.now = func() time.Time { return now }
	c.Check()

	assert.Equal(t, int32(0), hits.Load())
}

func TestCheckerSuppressesAfterCheckIn(t *testing.T) {
	env := setupEnv(t)

	var hits atomic.Int32
	server := countingServer(t, &hits)
	require.NoError(t, env.webhooks.Create(model.NewWebhook("phone", model.WebhookTypeGeneric, server.URL)))

	now := time.Now()
	require.NoError(t, env.checkins.SaveCheckIn(model.DateKey(now), model.CheckInRecord{
		Status:     model.StatusOnTime,
		Timestamp:  now,
		TargetTime: now,
	}))

	plan := &model.ReminderPlan{
		Target: now,
		Entries: []model.PlannedReminder{
			{ID: "f1", Kind: model.ReminderFollowUp, At: now.Add(-time.Minute)},
		},
	}
	require.NoError(t, env.plans.Replace(plan))

	c := env.checker()
	c.now = func() time.Time { return now }
	c.Check()

	// Default settings stop reminders after check-in.
	assert.Equal(t, int32(0), hits.Load())

	stored, err := env.plans.Get()
	require.NoError(t, err)
	assert.True(t, stored.Entries[0].Delivered)
}

func TestCheckerKeepsRemindingWhenStopDisabled(t *testing.T) {
	env := setupEnv(t)

	var hits atomic.Int32
	server := countingServer(t, &hits)
	require.NoError(t, env.webhooks.Create(model.NewWebhook("phone", model.WebhookTypeGeneric, server.URL)))

	settings := model.DefaultNotificationSettings()
	settings.StopAfterCheckIn = false
	require.NoError(t, env.settings.Save(settings))

	now := time.Now()
	require.NoError(t, env.checkins.SaveCheckIn(model.DateKey(now), model.CheckInRecord{
		Status:    model.StatusOnTime,
		Timestamp: now,
	}))

	plan := &model.ReminderPlan{
		Target: now,
		Entries: []model.PlannedReminder{
			{ID: "f1", Kind: model.ReminderFollowUp, At: now.Add(-time.Minute), Title: "Lynne", Body: "hey"},
		},
	}
	require.NoError(t, env.plans.Replace(plan))

	c := env.checker()
	c.now = func() time.Time { return now }
	c.Check()

	assert.Equal(t, int32(1), hits.Load())
}

// =============================================================================
// PlanSyncer Tests
// =============================================================================

func TestSyncBuildsPlan(t *testing.T) {
	env := setupEnv(t)

	now := time.Now()
	target := time.Date(now.Year(), now.Month(), now.Day(), 21, 0, 0, 0, time.Local)
	require.NoError(t, env.checkins.SetTargetTime(target))

	syncer := NewPlanSyncer(env.checkins, env.settings, env.plans)
	morning := time.Date(now.Year(), now.Month(), now.Day(), 8, 0, 0, 0, time.Local)
	require.NoError(t, syncer.Sync(morning))

	plan, err := env.plans.Get()
	require.NoError(t, err)
	require.NotNil(t, plan)
	// Defaults: pre + main + 6 follow-ups.
	assert.Len(t, plan.Entries, 2+reminder.MaxFollowUps)
}

func TestSyncAfterGapDoesNotStorm(t *testing.T) {
	env := setupEnv(t)

	var hits atomic.Int32
	server := countingServer(t, &hits)
	require.NoError(t, env.webhooks.Create(model.NewWebhook("phone", model.WebhookTypeGeneric, server.URL)))

	now := time.Now()
	target := time.Date(now.Year(), now.Month(), now.Day(), 21, 30, 0, 0, time.Local)
	require.NoError(t, env.checkins.SetTargetTime(target))

	// The machine wakes at 23:00 and the sleep gap triggers a resync.
	late := time.Date(now.Year(), now.Month(), now.Day(), 23, 0, 0, 0, time.Local)
	syncer := NewPlanSyncer(env.checkins, env.settings, env.plans)
	require.NoError(t, syncer.Sync(late))

	c := env.checker()
	c.now = func() time.Time { return late }
	c.Check()

	// The evening's missed schedule must not arrive as one burst.
	assert.Equal(t, int32(0), hits.Load())

	plan, err := env.plans.Get()
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Empty(t, plan.Pending(late))
}

func TestSyncWithoutTargetCancelsPlan(t *testing.T) {
	env := setupEnv(t)

	require.NoError(t, env.plans.Replace(&model.ReminderPlan{Target: time.Now()}))

	syncer := NewPlanSyncer(env.checkins, env.settings, env.plans)
	require.NoError(t, syncer.Sync(time.Now()))

	plan, err := env.plans.Get()
	require.NoError(t, err)
	assert.Nil(t, plan)
}
