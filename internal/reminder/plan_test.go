package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lynneapp/lynne/internal/model"
)

func settings(pre, interval int) *model.NotificationSettings {
	return &model.NotificationSettings{
		PreNotificationTime: pre,
		ReminderInterval:    interval,
		StopAfterCheckIn:    true,
	}
}

func TestBuildPlanFullSchedule(t *testing.T) {
	now := time.Date(2026, time.May, 4, 12, 0, 0, 0, time.Local)
	// Target stored on some historical date; only the time-of-day counts.
	target := time.Date(2025, time.January, 1, 21, 30, 0, 0, time.Local)

	plan := BuildPlan(target, settings(10, 10), now)

	// pre + main + 6 follow-ups
	require.Len(t, plan.Entries, 8)
	assert.Equal(t, time.Date(2026, time.May, 4, 21, 30, 0, 0, time.Local), plan.Target)

	pre := plan.Entries[0]
	assert.Equal(t, model.ReminderPre, pre.Kind)
	assert.Equal(t, plan.Target.Add(-10*time.Minute), pre.At)
	assert.Contains(t, pre.Body, "10 minutes")

	main := plan.Entries[1]
	assert.Equal(t, model.ReminderMain, main.Kind)
	assert.Equal(t, plan.Target, main.At)

	for k := 1; k <= MaxFollowUps; k++ {
		fu := plan.Entries[1+k]
		assert.Equal(t, model.ReminderFollowUp, fu.Kind)
		assert.Equal(t, plan.Target.Add(time.Duration(k*10)*time.Minute), fu.At)
	}
}

func TestBuildPlanZeroIntervalSkipsFollowUps(t *testing.T) {
	now := time.Date(2026, time.May, 4, 12, 0, 0, 0, time.Local)
	target := time.Date(2026, time.May, 4, 21, 30, 0, 0, time.Local)

	plan := BuildPlan(target, settings(10, 0), now)
	require.Len(t, plan.Entries, 2)
	assert.Equal(t, model.ReminderPre, plan.Entries[0].Kind)
	assert.Equal(t, model.ReminderMain, plan.Entries[1].Kind)
}

func TestBuildPlanPastPreIsDropped(t *testing.T) {
	// Now is already inside the pre-notification window.
	now := time.Date(2026, time.May, 4, 21, 25, 0, 0, time.Local)
	target := time.Date(2026, time.May, 4, 21, 30, 0, 0, time.Local)

	plan := BuildPlan(target, settings(10, 0), now)
	require.Len(t, plan.Entries, 1)
	assert.Equal(t, model.ReminderMain, plan.Entries[0].Kind)
}

func TestBuildPlanZeroPreHasNoPreNotification(t *testing.T) {
	now := time.Date(2026, time.May, 4, 12, 0, 0, 0, time.Local)
	target := time.Date(2026, time.May, 4, 21, 30, 0, 0, time.Local)

	plan := BuildPlan(target, settings(0, 15), now)
	require.Len(t, plan.Entries, 1+MaxFollowUps)
	assert.Equal(t, model.ReminderMain, plan.Entries[0].Kind)
}

func TestBuildPlanMarksPastEntriesDelivered(t *testing.T) {
	// Rebuilding late in the evening, after the whole schedule has gone by.
	now := time.Date(2026, time.May, 4, 23, 0, 0, 0, time.Local)
	target := time.Date(2026, time.May, 4, 21, 30, 0, 0, time.Local)

	plan := BuildPlan(target, settings(10, 10), now)

	// main + 6 follow-ups, every one already spent.
	require.Len(t, plan.Entries, 1+MaxFollowUps)
	for _, e := range plan.Entries {
		assert.True(t, e.Delivered, "entry %s at %s should be spent", e.Kind, e.At)
	}
	assert.Empty(t, plan.Pending(now))
}

func TestBuildPlanEntriesHaveIDsAndContent(t *testing.T) {
	now := time.Date(2026, time.May, 4, 12, 0, 0, 0, time.Local)
	plan := BuildPlan(now.Add(2*time.Hour), settings(10, 10), now)

	seen := make(map[string]bool)
	for _, e := range plan.Entries {
		assert.NotEmpty(t, e.ID)
		assert.False(t, seen[e.ID], "duplicate id")
		seen[e.ID] = true
		assert.NotEmpty(t, e.Title)
		assert.NotEmpty(t, e.Body)
		assert.False(t, e.Delivered)
	}
}
