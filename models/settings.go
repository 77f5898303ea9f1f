package models

import (
	"time"
)

// RefreshInterval is one of the fixed cadences a user may pick for scheduled
// listing refreshes. Values are cron specs consumed directly by the scheduler.
type RefreshInterval string

const (
	RefreshDaily       RefreshInterval = "0 0 * * *"
	RefreshEvery5Days  RefreshInterval = "0 0 */5 * *"
	RefreshEvery15Days RefreshInterval = "0 0 */15 * *"
	RefreshMonthly     RefreshInterval = "0 0 1 * *"
)

// RefreshIntervals returns every supported cadence.
func RefreshIntervals() []RefreshInterval {
	return []RefreshInterval{RefreshDaily, RefreshEvery5Days, RefreshEvery15Days, RefreshMonthly}
}

// Valid reports whether the interval is one of the supported cadences.
func (r RefreshInterval) Valid() bool {
	for _, iv := range RefreshIntervals() {
		if r == iv {
			return true
		}
	}
	return false
}

// Settings represents user settings stored in the database
type Settings struct {
	ID              string          `bson:"_id,omitempty" json:"id" db:"id"`
	UserID          string          `bson:"user_id" json:"user_id" db:"user_id"`
	RefreshInterval RefreshInterval `bson:"refresh_interval" json:"refresh_interval" db:"refresh_interval"`
	CreatedAt       *time.Time      `bson:"created_at,omitempty" json:"created_at" db:"created_at"`
	UpdatedAt       *time.Time      `bson:"updated_at,omitempty" json:"updated_at" db:"updated_at"`
}

// DefaultSettings returns default settings for new users
func DefaultSettings() *Settings {
	return &Settings{
		RefreshInterval: RefreshDaily,
	}
}
