package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mariaspatani/SmartTodo/internal/model"
	"github.com/mariaspatani/SmartTodo/internal/progress"
)

type Config struct {
	Version     string      `yaml:"version" json:"version"`
	Server      Server      `yaml:"server" json:"server"`
	Storage     Storage     `yaml:"storage" json:"storage"`
	Progression Progression `yaml:"progression" json:"progression"`
	UI          UI          `yaml:"ui" json:"ui"`
}

type Server struct {
	Addr string `yaml:"addr" json:"addr"`
}

type Storage struct {
	DataDir string `yaml:"data_dir" json:"data_dir"`
}

type Progression struct {
	XP           XPConfig      `yaml:"xp" json:"xp"`
	Leveling     Leveling      `yaml:"leveling" json:"leveling"`
	ThemeUnlocks []ThemeUnlock `yaml:"theme_unlocks" json:"theme_unlocks"`
}

type XPConfig struct {
	ByPriority      map[string]int `yaml:"by_priority" json:"by_priority"`
	DefaultXP       int            `yaml:"default_xp" json:"default_xp"`
	SubtaskBonusPer int            `yaml:"subtask_bonus_per_item" json:"subtask_bonus_per_item"`
	SubtaskBonusCap int            `yaml:"subtask_bonus_cap" json:"subtask_bonus_cap"`
}

type Leveling struct {
	BaseThreshold int `yaml:"base_threshold" json:"base_threshold"`
	ThresholdStep int `yaml:"threshold_step" json:"threshold_step"`
}

type ThemeUnlock struct {
	Theme    string `yaml:"theme" json:"theme"`
	MinLevel int    `yaml:"min_level" json:"min_level"`
}

type UI struct {
	MotivationMessages []string `yaml:"motivation_messages" json:"motivation_messages"`
}

func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

func (c *Config) ApplyDefaults() {
	if c.Version == "" {
		c.Version = "1"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8484"
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = "data"
	}

	b := progress.DefaultBalance()
	if c.Progression.XP.ByPriority == nil {
		c.Progression.XP.ByPriority = map[string]int{}
		for p, xp := range b.XPByPriority {
			c.Progression.XP.ByPriority[string(p)] = xp
		}
	}
	if c.Progression.XP.DefaultXP == 0 {
		c.Progression.XP.DefaultXP = b.DefaultXP
	}
	if c.Progression.XP.SubtaskBonusPer == 0 {
		c.Progression.XP.SubtaskBonusPer = b.SubtaskBonusPer
	}
	if c.Progression.XP.SubtaskBonusCap == 0 {
		c.Progression.XP.SubtaskBonusCap = b.SubtaskBonusCap
	}
	if c.Progression.Leveling.BaseThreshold == 0 {
		c.Progression.Leveling.BaseThreshold = b.ThresholdBase
	}
	if c.Progression.Leveling.ThresholdStep == 0 {
		c.Progression.Leveling.ThresholdStep = b.ThresholdStep
	}
	if c.Progression.ThemeUnlocks == nil {
		for _, u := range b.ThemeUnlocks {
			c.Progression.ThemeUnlocks = append(c.Progression.ThemeUnlocks, ThemeUnlock{
				Theme:    u.Theme,
				MinLevel: u.MinLevel,
			})
		}
	}

	if len(c.UI.MotivationMessages) == 0 {
		c.UI.MotivationMessages = []string{
			"Small steps, big wins.",
			"Focus beats force.",
			"Progress > perfection.",
			"You're building momentum.",
			"Keep going, future you is grateful.",
		}
	}
}

// Balance maps the progression section onto the engine's numbers.
func (c *Config) Balance() progress.Balance {
	b := progress.Balance{
		XPByPriority:    map[model.Priority]int{},
		DefaultXP:       c.Progression.XP.DefaultXP,
		SubtaskBonusPer: c.Progression.XP.SubtaskBonusPer,
		SubtaskBonusCap: c.Progression.XP.SubtaskBonusCap,
		ThresholdBase:   c.Progression.Leveling.BaseThreshold,
		ThresholdStep:   c.Progression.Leveling.ThresholdStep,
	}
	for p, xp := range c.Progression.XP.ByPriority {
		b.XPByPriority[model.Priority(p)] = xp
	}
	for _, u := range c.Progression.ThemeUnlocks {
		b.ThemeUnlocks = append(b.ThemeUnlocks, progress.ThemeUnlock{
			Theme:    u.Theme,
			MinLevel: u.MinLevel,
		})
	}
	return b
}

// Load reads a YAML config file. A missing file is not an error: the
// defaults describe a fully working local setup.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	var r Config
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	r.ApplyDefaults()
	return &r, nil
}
