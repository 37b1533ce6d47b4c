package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariaspatani/SmartTodo/internal/model"
)

func TestThreshold_GrowsLinearly(t *testing.T) {
	b := DefaultBalance()

	assert.Equal(t, 100, b.Threshold(1))
	assert.Equal(t, 120, b.Threshold(2))
	assert.Equal(t, 140, b.Threshold(3))
	assert.Equal(t, 100, b.Threshold(0), "levels below 1 fall back to level 1")
}

func TestApply_BaseByPriority(t *testing.T) {
	b := DefaultBalance()

	cases := []struct {
		priority model.Priority
		base     int
	}{
		{model.PriorityHigh, 25},
		{model.PriorityMedium, 15},
		{model.PriorityLow, 10},
		{model.Priority("urgent"), 10}, // unrecognized falls back
	}
	for _, tc := range cases {
		m := model.DefaultMeta()
		award := b.Apply(&m, tc.priority, 0)
		assert.Equal(t, tc.base, award.Base, "priority %q", tc.priority)
		assert.Equal(t, 0, award.Bonus)
		assert.Equal(t, tc.base, m.XP)
	}
}

func TestApply_SubtaskBonusCapped(t *testing.T) {
	b := DefaultBalance()

	m := model.DefaultMeta()
	award := b.Apply(&m, model.PriorityLow, 2)
	assert.Equal(t, 4, award.Bonus)

	m = model.DefaultMeta()
	award = b.Apply(&m, model.PriorityLow, 50)
	assert.Equal(t, 10, award.Bonus, "bonus caps at 10")
}

func TestApply_SingleLevelUp(t *testing.T) {
	b := DefaultBalance()
	m := model.DefaultMeta()
	m.XP = 90

	award := b.Apply(&m, model.PriorityHigh, 2) // 25 + 4

	assert.Equal(t, 2, m.Level)
	assert.Equal(t, 19, m.XP)
	assert.Equal(t, []int{2}, award.LevelUps)
	assert.Equal(t, []string{"Level up! Reached level 2"}, award.Messages)
	assert.Empty(t, award.ThemesUnlocked, "no theme below level 3")
	assert.NotContains(t, m.UnlockedThemes, model.ThemeSunset)
}

func TestApply_LargeAwardLevelsToTwoWithLeftover(t *testing.T) {
	b := DefaultBalance()
	b.XPByPriority[model.PriorityHigh] = 125

	m := model.DefaultMeta()
	award := b.Apply(&m, model.PriorityHigh, 0)

	assert.Equal(t, 125, award.Total)
	assert.Equal(t, 2, m.Level)
	assert.Equal(t, 25, m.XP)
	assert.Empty(t, award.ThemesUnlocked)
}

func TestApply_MultiLevelUpAscending(t *testing.T) {
	b := DefaultBalance()
	b.ThresholdBase = 10
	b.ThresholdStep = 0

	m := model.DefaultMeta()
	award := b.Apply(&m, model.PriorityHigh, 5) // 25 + 10 = 35

	require.Equal(t, []int{2, 3, 4}, award.LevelUps)
	assert.Equal(t, 4, m.Level)
	assert.Equal(t, 5, m.XP)
	assert.Equal(t, []string{model.ThemeSunset}, award.ThemesUnlocked)
	assert.Contains(t, m.UnlockedThemes, model.ThemeSunset)
}

func TestApply_NoResidualOverflow(t *testing.T) {
	b := DefaultBalance()

	for _, p := range []model.Priority{model.PriorityHigh, model.PriorityMedium, model.PriorityLow} {
		for xp := 0; xp < 100; xp += 7 {
			m := model.DefaultMeta()
			m.XP = xp
			levelBefore := m.Level
			b.Apply(&m, p, 3)
			assert.Less(t, m.XP, b.Threshold(m.Level))
			assert.GreaterOrEqual(t, m.Level, levelBefore)
		}
	}
}

func TestApply_ThemeUnlockIdempotent(t *testing.T) {
	b := DefaultBalance()
	b.ThresholdBase = 10
	b.ThresholdStep = 0

	m := model.DefaultMeta()
	b.Apply(&m, model.PriorityHigh, 5)
	require.Contains(t, m.UnlockedThemes, model.ThemeSunset)

	award := b.Apply(&m, model.PriorityHigh, 5)
	assert.Empty(t, award.ThemesUnlocked, "sunset already unlocked")

	count := 0
	for _, theme := range m.UnlockedThemes {
		if theme == model.ThemeSunset {
			count++
		}
	}
	assert.Equal(t, 1, count, "no duplicate entries")
}
