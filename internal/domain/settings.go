package domain

// StreakMode controls what makes a day streak-qualifying.
type StreakMode string

const (
	// StreakAny counts a day when any category has activity.
	StreakAny StreakMode = "any"
	// StreakAll requires financial, health and mindfulness activity
	// on the same day.
	StreakAll StreakMode = "all"
)

// Theme is the UI color scheme preference.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Style is the UI visual style preference.
type Style string

const (
	StyleModern  Style = "modern"
	StyleMinimal Style = "minimal"
	StyleClassic Style = "classic"
	StyleVibrant Style = "vibrant"
)

// Settings is pure configuration with default fallbacks and no derived
// invariants. Persisted in the settings key-value table.
type Settings struct {
	StreakMode StreakMode `json:"streak_mode"`
	Theme      Theme      `json:"theme"`
	Style      Style      `json:"style"`
}

// DefaultSettings returns first-launch settings.
func DefaultSettings() Settings {
	return Settings{
		StreakMode: StreakAll,
		Theme:      ThemeDark,
		Style:      StyleModern,
	}
}

// Normalize replaces unknown values with defaults.
func (s Settings) Normalize() Settings {
	def := DefaultSettings()
	if s.StreakMode != StreakAny && s.StreakMode != StreakAll {
		s.StreakMode = def.StreakMode
	}
	if s.Theme != ThemeDark && s.Theme != ThemeLight {
		s.Theme = def.Theme
	}
	switch s.Style {
	case StyleModern, StyleMinimal, StyleClassic, StyleVibrant:
	default:
		s.Style = def.Style
	}
	return s
}
