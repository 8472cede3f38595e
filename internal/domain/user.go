// Package domain holds the plain types of the Credify engine: the user,
// activity records, streaks, achievements, daily challenges and settings.
// It depends on nothing but the standard library; all behavior lives in
// the app layer.
package domain

import "time"

// User is the singleton profile for this installation.
// TotalXP is monotonically non-decreasing; Level is always recomputable
// from TotalXP (it is persisted only for cheap reads).
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	TotalXP      int64     `json:"total_xp"`
	Level        int       `json:"level"`
	Streaks      Streaks   `json:"streaks"`
	Achievements []string  `json:"achievements"`
}

// HasAchievement reports whether the achievement ID is already unlocked.
func (u *User) HasAchievement(id string) bool {
	for _, a := range u.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// Streaks holds the per-category and overall consecutive-day counters.
type Streaks struct {
	Financial        int  `json:"financial"`
	Health           int  `json:"health"`
	Mindfulness      int  `json:"mindfulness"`
	Overall          int  `json:"overall"`
	LastActivityDate Date `json:"last_activity_date"`
}

// NewUser creates a fresh first-launch profile.
func NewUser(id, name string, now time.Time) User {
	return User{
		ID:           id,
		Name:         name,
		CreatedAt:    now,
		TotalXP:      0,
		Level:        1,
		Achievements: []string{},
	}
}
