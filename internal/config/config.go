package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/teleop/internal/control"
	"github.com/san-kum/teleop/internal/robot"
)

const (
	DefaultPeriodMs    = 20
	DefaultTurnGain    = control.DefaultTurnGain
	DefaultIntakePower = control.DefaultIntakePower
	DefaultPistonPort  = "H"
	DefaultIntakePort  = -6
	DefaultLogLevel    = "info"
)

type Config struct {
	Name     string         `yaml:"name"`
	PeriodMs int            `yaml:"period_ms"`
	LogLevel string         `yaml:"log_level"`
	Drive    DriveConfig    `yaml:"drive"`
	Intake   IntakeConfig   `yaml:"intake"`
	Piston   PistonConfig   `yaml:"piston"`
	Controls ControlsConfig `yaml:"controls"`
}

// DriveConfig lists the drive motor ports. A negative port is a reversed
// motor.
type DriveConfig struct {
	Left     []int   `yaml:"left"`
	Right    []int   `yaml:"right"`
	TurnGain float64 `yaml:"turn_gain"`
}

type IntakeConfig struct {
	Port  int `yaml:"port"`
	Power int `yaml:"power"`
}

type PistonConfig struct {
	Port string `yaml:"port"`
}

type ControlsConfig struct {
	Forward       string `yaml:"forward"`
	Turn          string `yaml:"turn"`
	PistonExtend  string `yaml:"piston_extend"`
	PistonRetract string `yaml:"piston_retract"`
	IntakeForward string `yaml:"intake_forward"`
	IntakeReverse string `yaml:"intake_reverse"`
	IntakeStop    string `yaml:"intake_stop"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:     "competition",
		PeriodMs: DefaultPeriodMs,
		LogLevel: DefaultLogLevel,
		Drive: DriveConfig{
			Left:     []int{-7, 8, -3},
			Right:    []int{10, -12, 11},
			TurnGain: DefaultTurnGain,
		},
		Intake: IntakeConfig{
			Port:  DefaultIntakePort,
			Power: DefaultIntakePower,
		},
		Piston: PistonConfig{Port: DefaultPistonPort},
		Controls: ControlsConfig{
			Forward:       "left_y",
			Turn:          "right_x",
			PistonExtend:  "l1",
			PistonRetract: "l2",
			IntakeForward: "r1",
			IntakeReverse: "r2",
			IntakeStop:    "b",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Period() time.Duration {
	return time.Duration(c.PeriodMs) * time.Millisecond
}

// Validate checks that the configuration describes a drivable robot.
// Port conflicts are left to the brain, which owns port allocation.
func (c *Config) Validate() error {
	if len(c.Drive.Left) != 3 || len(c.Drive.Right) != 3 {
		return fmt.Errorf("%w: drive needs three motors per side, got %d left and %d right",
			robot.ErrInvalidConfig, len(c.Drive.Left), len(c.Drive.Right))
	}
	if c.PeriodMs <= 0 {
		return fmt.Errorf("%w: period_ms must be positive, got %d", robot.ErrInvalidConfig, c.PeriodMs)
	}
	if err := control.CheckParam("turn_gain", c.Drive.TurnGain); err != nil {
		return err
	}
	if err := control.CheckParam("intake_power", float64(c.Intake.Power)); err != nil {
		return err
	}
	if len(c.Piston.Port) != 1 {
		return fmt.Errorf("%w: piston port must be a single letter, got %q", robot.ErrInvalidConfig, c.Piston.Port)
	}
	if _, err := c.Bindings(); err != nil {
		return fmt.Errorf("%w: %v", robot.ErrInvalidConfig, err)
	}
	return nil
}

// Bindings resolves the configured control names.
func (c *Config) Bindings() (control.Bindings, error) {
	var b control.Bindings
	var err error

	if b.Forward, err = robot.ParseAxis(c.Controls.Forward); err != nil {
		return b, err
	}
	if b.Turn, err = robot.ParseAxis(c.Controls.Turn); err != nil {
		return b, err
	}
	buttons := []struct {
		dst  *robot.ButtonID
		name string
	}{
		{&b.PistonExtend, c.Controls.PistonExtend},
		{&b.PistonRetract, c.Controls.PistonRetract},
		{&b.IntakeForward, c.Controls.IntakeForward},
		{&b.IntakeReverse, c.Controls.IntakeReverse},
		{&b.IntakeStop, c.Controls.IntakeStop},
	}
	for _, btn := range buttons {
		if *btn.dst, err = robot.ParseButton(btn.name); err != nil {
			return b, err
		}
	}
	return b, nil
}

func (c *Config) Teleop() *control.Teleop {
	return control.NewTeleop(c.Drive.TurnGain, c.Intake.Power)
}
