package config

import "sort"

var Presets = map[string]func() *Config{
	"competition": DefaultConfig,
	"precision": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "precision"
		cfg.Drive.TurnGain = 0.5
		cfg.Intake.Power = 90
		return cfg
	},
	"arcade": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "arcade"
		cfg.Drive.TurnGain = 1.0
		cfg.PeriodMs = 10
		return cfg
	},
	"southpaw": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "southpaw"
		cfg.Controls.Forward = "right_y"
		cfg.Controls.Turn = "left_x"
		cfg.Controls.PistonExtend = "r1"
		cfg.Controls.PistonRetract = "r2"
		cfg.Controls.IntakeForward = "l1"
		cfg.Controls.IntakeReverse = "l2"
		return cfg
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
