package store

import (
	"database/sql"
	"errors"
)

// settingActiveProfile is the settings key holding the active profile ID.
const settingActiveProfile = "active_profile"

// SettingsRepository provides key-value settings storage.
type SettingsRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{db: s.db}
}

// Get retrieves a setting value by key.
func (r *SettingsRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// Set stores a setting value, replacing any existing value for the key.
func (r *SettingsRepository) Set(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// Delete removes a setting by key. Deleting a missing key is not an error.
func (r *SettingsRepository) Delete(key string) error {
	_, err := r.db.Exec(`DELETE FROM settings WHERE key = ?`, key)
	return err
}

// ActiveProfileID returns the ID of the currently active tuning profile,
// or ErrNotFound if none has been activated.
func (r *SettingsRepository) ActiveProfileID() (string, error) {
	return r.Get(settingActiveProfile)
}

// SetActiveProfileID records the given profile ID as active.
func (r *SettingsRepository) SetActiveProfileID(id string) error {
	return r.Set(settingActiveProfile, id)
}
