package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lynneapp/lynne/internal/model"
)

// Helper to create an in-memory database for testing
func setupTestDB(t *testing.T) *DB {
	db, err := Open(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// =============================================================================
// DB Tests
// =============================================================================

func TestOpenClose(t *testing.T) {
	t.Run("in_memory", func(t *testing.T) {
		db, err := Open(Options{InMemory: true})
		require.NoError(t, err)
		assert.NotNil(t, db)
		assert.NoError(t, db.Close())
	})

	t.Run("empty_path_uses_in_memory", func(t *testing.T) {
		db, err := Open(Options{Path: ""})
		require.NoError(t, err)
		assert.Equal(t, "", db.Path())
		db.Close()
	})

	t.Run("on_disk", func(t *testing.T) {
		dir := t.TempDir()
		db, err := Open(Options{Path: dir})
		require.NoError(t, err)
		assert.Equal(t, dir, db.Path())
		db.Close()
	})
}

func TestOpenWithIntegrityCheck(t *testing.T) {
	db, err := OpenWithIntegrityCheck(Options{InMemory: true})
	require.NoError(t, err)
	defer db.Close()
	assert.NoError(t, db.CheckIntegrity())
}

func TestDefaultPath(t *testing.T) {
	path := DefaultPath()
	assert.Contains(t, path, "lynne")
	assert.Contains(t, path, "db")
}

func TestBytesRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetBytes("nope")
	assert.True(t, IsErrKeyNotFound(err))

	require.NoError(t, db.SetBytes("k", []byte(`{"a":1}`)))
	data, err := db.GetBytes("k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), data)

	ok, err := db.Exists("k")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, db.Delete("k"))
	ok, err = db.Exists("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

// =============================================================================
// CheckInRepo Tests
// =============================================================================

func TestHistoryEmptyWhenNeverWritten(t *testing.T) {
	repo := NewCheckInRepo(setupTestDB(t))

	history, err := repo.History()
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestHistoryCorruptBlobIsAnError(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.SetBytes(model.KeyCheckInHistory, []byte("not json")))

	repo := NewCheckInRepo(db)
	_, err := repo.History()
	assert.Error(t, err)
}

func TestSaveCheckInRoundTrip(t *testing.T) {
	repo := NewCheckInRepo(setupTestDB(t))

	ts := time.Date(2026, time.April, 2, 21, 4, 0, 0, time.Local)
	target := time.Date(2026, time.April, 2, 21, 0, 0, 0, time.Local)
	rec := model.CheckInRecord{Status: model.StatusOnTime, Timestamp: ts, TargetTime: target}

	require.NoError(t, repo.SaveCheckIn("2026-04-02", rec))

	history, err := repo.History()
	require.NoError(t, err)
	require.Len(t, history, 1)
	got := history["2026-04-02"]
	assert.Equal(t, model.StatusOnTime, got.Status)
	assert.True(t, got.Timestamp.Equal(ts))
	assert.True(t, got.TargetTime.Equal(target))
}

func TestSaveCheckInPreservesOtherDays(t *testing.T) {
	repo := NewCheckInRepo(setupTestDB(t))

	require.NoError(t, repo.SaveCheckIn("2026-04-01", model.CheckInRecord{Status: model.StatusMissed}))
	require.NoError(t, repo.SaveCheckIn("2026-04-02", model.CheckInRecord{Status: model.StatusOnTime}))
	// Overwrite the second day.
	require.NoError(t, repo.SaveCheckIn("2026-04-02", model.CheckInRecord{Status: model.StatusVeryLate}))

	history, err := repo.History()
	require.NoError(t, err)
	assert.Len(t, history, 2)
	assert.Equal(t, model.StatusMissed, history["2026-04-01"].Status)
	assert.Equal(t, model.StatusVeryLate, history["2026-04-02"].Status)
}

func TestHistoryReadIsIdempotent(t *testing.T) {
	repo := NewCheckInRepo(setupTestDB(t))
	require.NoError(t, repo.SaveCheckIn("2026-04-02", model.CheckInRecord{Status: model.StatusOnTime}))

	first, err := repo.History()
	require.NoError(t, err)
	second, err := repo.History()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestClearDay(t *testing.T) {
	repo := NewCheckInRepo(setupTestDB(t))
	require.NoError(t, repo.SaveCheckIn("2026-04-02", model.CheckInRecord{Status: model.StatusOnTime}))

	require.NoError(t, repo.ClearDay("2026-04-02"))
	_, ok, err := repo.Get("2026-04-02")
	require.NoError(t, err)
	assert.False(t, ok)

	// Clearing an absent day is fine.
	require.NoError(t, repo.ClearDay("2026-04-03"))
}

func TestTargetTime(t *testing.T) {
	repo := NewCheckInRepo(setupTestDB(t))

	_, found, err := repo.TargetTime()
	require.NoError(t, err)
	assert.False(t, found)

	target := time.Date(2026, time.April, 2, 8, 30, 0, 0, time.Local)
	require.NoError(t, repo.SetTargetTime(target))

	got, found, err := repo.TargetTime()
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, got.Equal(target))
}

func TestSetTargetTimeDoesNotTouchHistory(t *testing.T) {
	repo := NewCheckInRepo(setupTestDB(t))
	oldTarget := time.Date(2026, time.April, 1, 8, 0, 0, 0, time.Local)
	require.NoError(t, repo.SaveCheckIn("2026-04-01", model.CheckInRecord{
		Status: model.StatusOnTime, TargetTime: oldTarget,
	}))

	require.NoError(t, repo.SetTargetTime(time.Date(2026, time.April, 2, 21, 0, 0, 0, time.Local)))

	history, err := repo.History()
	require.NoError(t, err)
	assert.True(t, history["2026-04-01"].TargetTime.Equal(oldTarget))
}

// =============================================================================
// SettingsRepo Tests
// =============================================================================

func TestSettingsDefaultsWhenMissing(t *testing.T) {
	repo := NewSettingsRepo(setupTestDB(t))

	s, defaulted, err := repo.Get()
	require.NoError(t, err)
	assert.True(t, defaulted)
	assert.Equal(t, 10, s.PreNotificationTime)
	assert.Equal(t, 10, s.ReminderInterval)
	assert.True(t, s.StopAfterCheckIn)
}

func TestSettingsSaveGet(t *testing.T) {
	repo := NewSettingsRepo(setupTestDB(t))

	require.NoError(t, repo.Save(&model.NotificationSettings{
		PreNotificationTime: 20,
		ReminderInterval:    0,
		StopAfterCheckIn:    false,
	}))

	s, defaulted, err := repo.Get()
	require.NoError(t, err)
	assert.False(t, defaulted)
	assert.Equal(t, 20, s.PreNotificationTime)
	assert.Equal(t, 0, s.ReminderInterval)
	assert.False(t, s.StopAfterCheckIn)
}

func TestSettingsCorruptFallsBackToDefaults(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.SetBytes(model.KeySettings, []byte("{{{")))

	repo := NewSettingsRepo(db)
	s, defaulted, err := repo.Get()
	assert.Error(t, err)
	assert.True(t, defaulted)
	require.NotNil(t, s)
	assert.Equal(t, 10, s.PreNotificationTime)
}

// =============================================================================
// CalendarRepo Tests
// =============================================================================

func TestCalendarSnapshotLifecycle(t *testing.T) {
	repo := NewCalendarRepo(setupTestDB(t))

	snap, err := repo.Snapshot()
	require.NoError(t, err)
	assert.False(t, snap.IsConnected)
	assert.Empty(t, snap.Events)

	events := []model.CalendarEvent{
		{Summary: "Gym", Start: time.Now(), End: time.Now().Add(time.Hour)},
	}
	require.NoError(t, repo.Connect(events))

	snap, err = repo.Snapshot()
	require.NoError(t, err)
	assert.True(t, snap.IsConnected)
	require.Len(t, snap.Events, 1)
	assert.Equal(t, "Gym", snap.Events[0].Summary)

	require.NoError(t, repo.Disconnect())
	snap, err = repo.Snapshot()
	require.NoError(t, err)
	assert.False(t, snap.IsConnected)
}

// =============================================================================
// PlanRepo Tests
// =============================================================================

func TestPlanReplaceAndCancel(t *testing.T) {
	repo := NewPlanRepo(setupTestDB(t))

	plan, err := repo.Get()
	require.NoError(t, err)
	assert.Nil(t, plan)

	require.NoError(t, repo.Replace(&model.ReminderPlan{
		Target:  time.Now(),
		Entries: []model.PlannedReminder{{ID: "a"}, {ID: "b"}},
	}))

	plan, err = repo.Get()
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Len(t, plan.Entries, 2)

	plan.MarkDelivered("a")
	require.NoError(t, repo.Update(plan))

	plan, err = repo.Get()
	require.NoError(t, err)
	assert.True(t, plan.Entries[0].Delivered)

	require.NoError(t, repo.Cancel())
	plan, err = repo.Get()
	require.NoError(t, err)
	assert.Nil(t, plan)

	// Cancelling again is a no-op.
	assert.NoError(t, repo.Cancel())
}

// =============================================================================
// WebhookRepo Tests
// =============================================================================

func TestWebhookCRUD(t *testing.T) {
	repo := NewWebhookRepo(setupTestDB(t))

	require.NoError(t, repo.Create(model.NewWebhook("phone", model.WebhookTypeGeneric, "https://example.com/hook")))

	wh, err := repo.Get("phone")
	require.NoError(t, err)
	assert.Equal(t, "phone", wh.Name)
	assert.True(t, wh.Enabled)

	require.NoError(t, repo.SetEnabled("phone", false))
	enabled, err := repo.ListEnabled()
	require.NoError(t, err)
	assert.Empty(t, enabled)

	all, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.Delete("phone"))
	ok, err := repo.Exists("phone")
	require.NoError(t, err)
	assert.False(t, ok)
}
