package adherence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lynneapp/lynne/internal/model"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		diff int
		want model.CheckInStatus
	}{
		{0, model.StatusOnTime},
		{5, model.StatusOnTime},
		{6, model.StatusSlightlyLate},
		{15, model.StatusSlightlyLate},
		{16, model.StatusVeryLate},
		{60, model.StatusVeryLate},
		{61, model.StatusMissed},
		{1440, model.StatusMissed},
		{-3, model.StatusOnTime},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.diff), "diff=%d", tt.diff)
	}
}

func TestClassifyMonotonic(t *testing.T) {
	prev := Classify(0)
	for diff := 1; diff <= 200; diff++ {
		cur := Classify(diff)
		assert.True(t, cur.IsValid())
		assert.GreaterOrEqual(t, cur.Severity(), prev.Severity(), "diff=%d", diff)
		prev = cur
	}
}

func TestDiffMinutes(t *testing.T) {
	target := time.Date(2026, time.January, 10, 21, 0, 0, 0, time.Local)

	// Same time of day on a different date still counts as zero.
	checkIn := time.Date(2026, time.January, 11, 21, 0, 45, 0, time.Local)
	assert.Equal(t, 0, DiffMinutes(checkIn, target))

	early := time.Date(2026, time.January, 10, 20, 42, 0, 0, time.Local)
	assert.Equal(t, 18, DiffMinutes(early, target))

	late := time.Date(2026, time.January, 10, 22, 5, 0, 0, time.Local)
	assert.Equal(t, 65, DiffMinutes(late, target))
}

func TestEvaluate(t *testing.T) {
	target := time.Date(2026, time.January, 10, 8, 30, 0, 0, time.Local)
	checkIn := time.Date(2026, time.January, 10, 8, 41, 0, 0, time.Local)
	assert.Equal(t, model.StatusSlightlyLate, Evaluate(checkIn, target))
}

func TestResultMessageCoversAllStatuses(t *testing.T) {
	for _, s := range model.AllStatuses() {
		assert.NotEmpty(t, ResultMessage(s))
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, time.June, 10, 12, 0, 0, 0, time.Local)
	h := model.CheckInHistory{
		"2026-06-10": {Status: model.StatusOnTime},
		"2026-06-09": {Status: model.StatusOnTime},
		"2026-06-08": {Status: model.StatusSlightlyLate},
		"2026-06-06": {Status: model.StatusMissed},
	}

	s := Summarize(h, now)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.ByStatus[model.StatusOnTime])
	assert.InDelta(t, 0.5, s.OnTimeRate, 1e-9)
	// 10th, 9th, 8th check in; the 7th is the gap.
	assert.Equal(t, 3, s.Streak)
}

func TestSummarizeStreakToleratesMissingToday(t *testing.T) {
	now := time.Date(2026, time.June, 10, 9, 0, 0, 0, time.Local)
	h := model.CheckInHistory{
		"2026-06-09": {Status: model.StatusOnTime},
		"2026-06-08": {Status: model.StatusOnTime},
	}
	assert.Equal(t, 2, Summarize(h, now).Streak)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(model.CheckInHistory{}, time.Now())
	assert.Equal(t, 0, s.Total)
	assert.Zero(t, s.OnTimeRate)
	assert.Zero(t, s.Streak)
}
