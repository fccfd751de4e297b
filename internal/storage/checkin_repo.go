package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lynneapp/lynne/internal/model"
)

// CheckInRepo persists the check-in history and the daily target time.
// The history is one JSON blob under a fixed key; every save is a full
// read-modify-write of the map, last writer wins.
type CheckInRepo struct {
	db *DB
}

// NewCheckInRepo creates a new check-in repository.
func NewCheckInRepo(db *DB) *CheckInRepo {
	return &CheckInRepo{db: db}
}

// History returns the full check-in history. A history that was never
// written comes back as an empty map with a nil error; a failed read or
// a corrupt blob is an error the caller can see.
func (r *CheckInRepo) History() (model.CheckInHistory, error) {
	data, err := r.db.GetBytes(model.KeyCheckInHistory)
	if err != nil {
		if IsErrKeyNotFound(err) {
			return model.CheckInHistory{}, nil
		}
		return nil, fmt.Errorf("read check-in history: %w", err)
	}

	var history model.CheckInHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("decode check-in history: %w", err)
	}
	if history == nil {
		history = model.CheckInHistory{}
	}
	return history, nil
}

// Get returns the record for one date key, if present.
func (r *CheckInRepo) Get(date string) (model.CheckInRecord, bool, error) {
	history, err := r.History()
	if err != nil {
		return model.CheckInRecord{}, false, err
	}
	rec, ok := history[date]
	return rec, ok, nil
}

// SaveCheckIn inserts or overwrites the record for the given date key and
// writes the whole map back.
func (r *CheckInRepo) SaveCheckIn(date string, rec model.CheckInRecord) error {
	history, err := r.History()
	if err != nil {
		return err
	}
	history[date] = rec
	return r.writeHistory(history)
}

// ClearDay removes the record for one date key. Clearing an absent day is
// a no-op.
func (r *CheckInRepo) ClearDay(date string) error {
	history, err := r.History()
	if err != nil {
		return err
	}
	if _, ok := history[date]; !ok {
		return nil
	}
	delete(history, date)
	return r.writeHistory(history)
}

func (r *CheckInRepo) writeHistory(history model.CheckInHistory) error {
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encode check-in history: %w", err)
	}
	if err := r.db.SetBytes(model.KeyCheckInHistory, data); err != nil {
		return fmt.Errorf("write check-in history: %w", err)
	}
	return nil
}

// TargetTime returns the persisted daily target time. The second return
// is false when no target has ever been set.
func (r *CheckInRepo) TargetTime() (time.Time, bool, error) {
	data, err := r.db.GetBytes(model.KeyDailyTargetTime)
	if err != nil {
		if IsErrKeyNotFound(err) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("read daily target time: %w", err)
	}

	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return time.Time{}, false, fmt.Errorf("decode daily target time: %w", err)
	}
	return t, true, nil
}

// SetTargetTime overwrites the daily target time. Past records keep the
// target they were written with.
func (r *CheckInRepo) SetTargetTime(t time.Time) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode daily target time: %w", err)
	}
	if err := r.db.SetBytes(model.KeyDailyTargetTime, data); err != nil {
		return fmt.Errorf("write daily target time: %w", err)
	}
	return nil
}
