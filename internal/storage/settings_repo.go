package storage

import (
	"github.com/lynneapp/lynne/internal/model"
)

// SettingsRepo persists the notification settings singleton.
type SettingsRepo struct {
	db *DB
}

// NewSettingsRepo creates a new settings repository.
func NewSettingsRepo(db *DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get returns the saved settings, or the defaults when none are saved or
// the stored record cannot be decoded. The second return reports whether
// the defaults were substituted.
func (r *SettingsRepo) Get() (*model.NotificationSettings, bool, error) {
	settings := &model.NotificationSettings{}
	if err := r.db.Get(model.KeySettings, settings); err != nil {
		if IsErrKeyNotFound(err) {
			return model.DefaultNotificationSettings(), true, nil
		}
		// Corrupt or unreadable settings degrade to defaults, but the
		// caller gets to know about it.
		return model.DefaultNotificationSettings(), true, err
	}
	return settings, false, nil
}

// Save replaces the settings record wholesale.
func (r *SettingsRepo) Save(settings *model.NotificationSettings) error {
	settings.Key = model.KeySettings
	return r.db.Set(settings)
}
