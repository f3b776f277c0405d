// Package settings persists per-user location and notification
// preferences under the storage keys the clients have always used.
package settings

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/jummah-prayer/server/internal/model"
)

const (
	LocationKey      = "prayerSettings"
	NotificationsKey = "notificationSettings"
)

// StateStore is the slice of the persistence layer the manager needs.
type StateStore interface {
	GetState(userID int, key string) ([]byte, error)
	SetState(userID int, key string, value []byte) error
}

type Manager struct {
	store StateStore
}

func NewManager(store StateStore) *Manager {
	return &Manager{store: store}
}

// Location returns the user's saved profile, or the Moscow default when
// nothing has been saved yet. A corrupt record is logged and replaced
// by the default rather than surfaced.
func (m *Manager) Location(userID int) model.Location {
	raw, err := m.store.GetState(userID, LocationKey)
	if err != nil || raw == nil {
		return model.DefaultLocation()
	}
	var loc model.Location
	if err := json.Unmarshal(raw, &loc); err != nil || !loc.Valid() {
		log.Error().Int("user", userID).Msg("discarding corrupt location settings")
		return model.DefaultLocation()
	}
	return loc
}

func (m *Manager) SaveLocation(userID int, loc model.Location) error {
	raw, err := json.Marshal(loc)
	if err != nil {
		return err
	}
	return m.store.SetState(userID, LocationKey, raw)
}

// Notifications returns the user's alert preferences, defaulting to
// alerts off with a 15 minute warning.
func (m *Manager) Notifications(userID int) model.NotificationSettings {
	raw, err := m.store.GetState(userID, NotificationsKey)
	if err != nil || raw == nil {
		return model.DefaultNotificationSettings()
	}
	var prefs model.NotificationSettings
	if err := json.Unmarshal(raw, &prefs); err != nil {
		log.Error().Int("user", userID).Msg("discarding corrupt notification settings")
		return model.DefaultNotificationSettings()
	}
	if prefs.WarningMinutes <= 0 {
		prefs.WarningMinutes = model.DefaultNotificationSettings().WarningMinutes
	}
	return prefs
}

func (m *Manager) SaveNotifications(userID int, prefs model.NotificationSettings) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return m.store.SetState(userID, NotificationsKey, raw)
}
