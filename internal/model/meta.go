package model

import "slices"

const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSunset = "sunset"
)

// Meta is the persisted progression state: experience within the current
// level, the level itself, the active theme, and the order-key seed handed
// to newly created tasks.
type Meta struct {
	XP             int      `json:"xp"`
	Level          int      `json:"level"`
	Theme          string   `json:"theme"`
	UnlockedThemes []string `json:"unlockedThemes"`
	OrderSeed      int      `json:"orderSeed"`
}

func DefaultMeta() Meta {
	return Meta{
		XP:             0,
		Level:          1,
		Theme:          ThemeLight,
		UnlockedThemes: []string{ThemeLight, ThemeDark},
		OrderSeed:      0,
	}
}

// Normalize repairs a meta record loaded from storage: zero/negative values
// fall back to defaults, light and dark are always unlocked, and the active
// theme must be a member of the unlocked set.
func (m *Meta) Normalize() {
	if m.XP < 0 {
		m.XP = 0
	}
	if m.Level < 1 {
		m.Level = 1
	}
	for _, base := range []string{ThemeLight, ThemeDark} {
		if !slices.Contains(m.UnlockedThemes, base) {
			m.UnlockedThemes = append(m.UnlockedThemes, base)
		}
	}
	if m.Theme == "" || !m.HasTheme(m.Theme) {
		m.Theme = ThemeLight
	}
	if m.OrderSeed < 0 {
		m.OrderSeed = 0
	}
}

func (m *Meta) HasTheme(theme string) bool {
	return slices.Contains(m.UnlockedThemes, theme)
}

// UnlockTheme adds a theme to the unlocked set. It is idempotent and
// reports whether the theme was newly added.
func (m *Meta) UnlockTheme(theme string) bool {
	if theme == "" || m.HasTheme(theme) {
		return false
	}
	m.UnlockedThemes = append(m.UnlockedThemes, theme)
	return true
}
