package storage

import (
	"time"

	"github.com/lynneapp/lynne/internal/model"
)

// CalendarRepo persists the cached calendar snapshot.
type CalendarRepo struct {
	db *DB
}

// NewCalendarRepo creates a new calendar repository.
func NewCalendarRepo(db *DB) *CalendarRepo {
	return &CalendarRepo{db: db}
}

// Snapshot returns the cached calendar data. When no calendar was ever
// connected, a disconnected empty snapshot is returned with a nil error.
func (r *CalendarRepo) Snapshot() (*model.CalendarSnapshot, error) {
	snap := &model.CalendarSnapshot{}
	if err := r.db.Get(model.KeyCalendarData, snap); err != nil {
		if IsErrKeyNotFound(err) {
			return &model.CalendarSnapshot{Key: model.KeyCalendarData}, nil
		}
		return nil, err
	}
	return snap, nil
}

// Connect stores a fresh snapshot with the given events and marks the
// calendar connected.
func (r *CalendarRepo) Connect(events []model.CalendarEvent) error {
	snap := &model.CalendarSnapshot{
		Key:         model.KeyCalendarData,
		IsConnected: true,
		Events:      events,
		FetchedAt:   time.Now(),
	}
	return r.db.Set(snap)
}

// Disconnect drops the cached snapshot entirely.
func (r *CalendarRepo) Disconnect() error {
	return r.db.Delete(model.KeyCalendarData)
}
