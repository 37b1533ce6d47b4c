// Package progress is the gamification engine: it converts completed tasks
// into experience, level-ups, and theme unlocks. Award is a pure
// transformation of the meta record; it has no failure states.
package progress

import (
	"fmt"

	"github.com/mariaspatani/SmartTodo/internal/model"
)

// Balance holds the tunable reward numbers. Values come from config; the
// zero value is not usable, start from DefaultBalance.
type Balance struct {
	XPByPriority    map[model.Priority]int
	DefaultXP       int
	SubtaskBonusPer int
	SubtaskBonusCap int
	ThresholdBase   int
	ThresholdStep   int
	ThemeUnlocks    []ThemeUnlock
}

// ThemeUnlock grants a theme once a level-up lands at or above MinLevel.
type ThemeUnlock struct {
	Theme    string
	MinLevel int
}

func DefaultBalance() Balance {
	return Balance{
		XPByPriority: map[model.Priority]int{
			model.PriorityHigh:   25,
			model.PriorityMedium: 15,
			model.PriorityLow:    10,
		},
		DefaultXP:       10,
		SubtaskBonusPer: 2,
		SubtaskBonusCap: 10,
		ThresholdBase:   100,
		ThresholdStep:   20,
		ThemeUnlocks: []ThemeUnlock{
			{Theme: model.ThemeSunset, MinLevel: 3},
		},
	}
}

// Threshold is the XP required to clear the given level.
func (b Balance) Threshold(level int) int {
	if level < 1 {
		level = 1
	}
	return b.ThresholdBase + (level-1)*b.ThresholdStep
}

// Award summarizes one completion: the XP granted and everything the
// leveling loop produced.
type Award struct {
	Base           int      `json:"base"`
	Bonus          int      `json:"bonus"`
	Total          int      `json:"total"`
	LevelUps       []int    `json:"levelUps,omitempty"`
	ThemesUnlocked []string `json:"themesUnlocked,omitempty"`
	Messages       []string `json:"messages,omitempty"`
}

// Apply grants XP for a completed task and runs the leveling loop on the
// meta record. Levels climb one at a time so a single large award can
// produce several level-ups, each with its own message, in ascending order.
// XP already granted is never revoked elsewhere, so Apply needs no inverse.
func (b Balance) Apply(m *model.Meta, priority model.Priority, subtaskCount int) Award {
	base, ok := b.XPByPriority[priority]
	if !ok {
		base = b.DefaultXP
	}
	bonus := subtaskCount * b.SubtaskBonusPer
	if bonus > b.SubtaskBonusCap {
		bonus = b.SubtaskBonusCap
	}

	award := Award{Base: base, Bonus: bonus, Total: base + bonus}
	m.XP += award.Total

	for m.XP >= b.Threshold(m.Level) {
		m.XP -= b.Threshold(m.Level)
		m.Level++
		award.LevelUps = append(award.LevelUps, m.Level)
		award.Messages = append(award.Messages, fmt.Sprintf("Level up! Reached level %d", m.Level))

		for _, u := range b.ThemeUnlocks {
			if m.Level >= u.MinLevel && m.UnlockTheme(u.Theme) {
				award.ThemesUnlocked = append(award.ThemesUnlocked, u.Theme)
			}
		}
	}

	return award
}
