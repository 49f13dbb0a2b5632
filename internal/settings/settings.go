package settings

import "fmt"

// WeightUnit is the unit weights are displayed in.
type WeightUnit string

const (
	Kilograms WeightUnit = "kg"
	Pounds    WeightUnit = "lbs"
)

// DistanceUnit is the unit distances are displayed in.
type DistanceUnit string

const (
	Kilometers DistanceUnit = "km"
	Miles      DistanceUnit = "miles"
)

// Theme is the preferred color scheme.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Settings holds user preferences. Stored weights are never converted;
// the unit only affects presentation.
type Settings struct {
	WeightUnit   WeightUnit   `json:"weightUnit"`
	DistanceUnit DistanceUnit `json:"distanceUnit"`
	Theme        Theme        `json:"theme"`
}

// Default returns the settings used before the user changes anything.
func Default() Settings {
	return Settings{WeightUnit: Kilograms, DistanceUnit: Kilometers, Theme: ThemeSystem}
}

// Normalize replaces unknown or empty values with defaults.
func (s Settings) Normalize() Settings {
	d := Default()
	switch s.WeightUnit {
	case Kilograms, Pounds:
	default:
		s.WeightUnit = d.WeightUnit
	}
	switch s.DistanceUnit {
	case Kilometers, Miles:
	default:
		s.DistanceUnit = d.DistanceUnit
	}
	switch s.Theme {
	case ThemeLight, ThemeDark, ThemeSystem:
	default:
		s.Theme = d.Theme
	}
	return s
}

// Validate rejects unknown values, for input coming from the CLI.
func (s Settings) Validate() error {
	if n := s.Normalize(); n != s {
		return fmt.Errorf("invalid settings: weightUnit=%q distanceUnit=%q theme=%q", s.WeightUnit, s.DistanceUnit, s.Theme)
	}
	return nil
}

// FormatWeight renders a weight with the configured unit.
func (s Settings) FormatWeight(w float64) string {
	return fmt.Sprintf("%g %s", w, s.Normalize().WeightUnit)
}
