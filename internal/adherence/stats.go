package adherence

import (
	"time"

	"github.com/lynneapp/lynne/internal/model"
)

// Stats summarizes a stretch of check-in history.
type Stats struct {
	Total      int
	ByStatus   map[model.CheckInStatus]int
	OnTimeRate float64 // onTime / total, 0 when empty
	Streak     int     // consecutive days with any check-in, ending today or yesterday
}

// Summarize computes stats over the whole history. now anchors the streak
// calculation.
func Summarize(h model.CheckInHistory, now time.Time) Stats {
	s := Stats{ByStatus: make(map[model.CheckInStatus]int)}
	for _, rec := range h {
		s.Total++
		s.ByStatus[rec.Status]++
	}
	if s.Total > 0 {
		s.OnTimeRate = float64(s.ByStatus[model.StatusOnTime]) / float64(s.Total)
	}
	s.Streak = streak(h, now)
	return s
}

// streak counts consecutive checked-in days walking backwards from today.
// A missing entry for today does not break the streak until the day is
// over, so the walk may start at yesterday.
func streak(h model.CheckInHistory, now time.Time) int {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if _, ok := h[model.DateKey(day)]; !ok {
		day = day.AddDate(0, 0, -1)
	}

	count := 0
	for {
		if _, ok := h[model.DateKey(day)]; !ok {
			break
		}
		count++
		day = day.AddDate(0, 0, -1)
	}
	return count
}
