// Package reminder computes the daily notification schedule.
package reminder

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lynneapp/lynne/internal/model"
)

// MaxFollowUps caps the follow-up reminders after the target time so the
// schedule stays bounded no matter the interval setting.
const MaxFollowUps = 6

// Notification copy. The follow-up body is intentionally the original
// app's nudge.
const (
	reminderTitle = "Lynne Birth Control Reminder"
	followUpTitle = "Birth Control Reminder"
	followUpBody  = "Did you know that it cost ~400K to raise a child to 17 years in California?"
	mainBody      = "It's time to take your birth control!"
)

// BuildPlan computes the notification schedule for today's occurrence of
// the target time-of-day:
//
//  1. a pre-notification PreNotificationTime minutes before the target,
//     included only while that instant is still in the future;
//  2. the main notification exactly at the target;
//  3. up to MaxFollowUps follow-ups spaced ReminderInterval minutes
//     apart, skipped entirely when the interval is zero or negative.
//
// Entries whose instant is already behind now are marked delivered, so
// a mid-day rebuild never queues the morning's schedule for redelivery.
//
// Only the instants and content are computed here; delivery belongs to
// the daemon.
func BuildPlan(target time.Time, settings *model.NotificationSettings, now time.Time) *model.ReminderPlan {
	// Pin the target's time-of-day onto today's date.
	at := time.Date(now.Year(), now.Month(), now.Day(),
		target.Hour(), target.Minute(), 0, 0, now.Location())

	plan := &model.ReminderPlan{
		Key:       model.KeyReminderPlan,
		Target:    at,
		CreatedAt: now,
	}

	pre := at.Add(-time.Duration(settings.PreNotificationTime) * time.Minute)
	if settings.PreNotificationTime > 0 && pre.After(now) {
		plan.Entries = append(plan.Entries, model.PlannedReminder{
			ID:    uuid.New().String(),
			Kind:  model.ReminderPre,
			At:    pre,
			Title: reminderTitle,
			Body:  fmt.Sprintf("Time to take your birth control in %d minutes!", settings.PreNotificationTime),
		})
	}

	plan.Entries = append(plan.Entries, model.PlannedReminder{
		ID:    uuid.New().String(),
		Kind:  model.ReminderMain,
		At:    at,
		Title: reminderTitle,
		Body:  mainBody,
	})

	if settings.ReminderInterval > 0 {
		for k := 1; k <= MaxFollowUps; k++ {
			plan.Entries = append(plan.Entries, model.PlannedReminder{
				ID:    uuid.New().String(),
				Kind:  model.ReminderFollowUp,
				At:    at.Add(time.Duration(k*settings.ReminderInterval) * time.Minute),
				Title: followUpTitle,
				Body:  followUpBody,
			})
		}
	}

	for i := range plan.Entries {
		if plan.Entries[i].At.Before(now) {
			plan.Entries[i].Delivered = true
		}
	}

	return plan
}
