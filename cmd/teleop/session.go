package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/teleop/internal/competition"
	"github.com/san-kum/teleop/internal/config"
	"github.com/san-kum/teleop/internal/control"
	"github.com/san-kum/teleop/internal/display"
	"github.com/san-kum/teleop/internal/hardware"
	"github.com/san-kum/teleop/internal/robot"
	"github.com/san-kum/teleop/internal/teleop"
)

// session is one fully wired robot: devices, loop and lifecycle hooks.
type session struct {
	cfg      *config.Config
	bindings control.Bindings
	brain    *hardware.Brain
	chassis  *hardware.Chassis
	lcd      *display.LCD
	loop     *teleop.Loop
	robot    *competition.Robot
}

// resolveConfig picks the preset or config file, then applies flag
// overrides the user set explicitly.
func resolveConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.preset != "" {
		cfg = config.GetPreset(opts.preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (have %v)", opts.preset, config.ListPresets())
		}
	}
	if opts.configFile != "" {
		loaded, err := config.Load(opts.configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("turn-gain") {
		cfg.Drive.TurnGain = opts.turnGain
	}
	if flags.Changed("period") {
		cfg.PeriodMs = opts.periodMs
	}
	if cmd.Root().PersistentFlags().Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSession(cfg *config.Config, input robot.InputDevice, maxTicks int, log zerolog.Logger) (*session, error) {
	bindings, err := cfg.Bindings()
	if err != nil {
		return nil, err
	}

	brain := hardware.NewBrain(log)
	chassis, err := brain.BuildChassis(cfg)
	if err != nil {
		return nil, err
	}

	lcd := display.New()
	loop := teleop.New(input, bindings, chassis.DriveMotors(), chassis.Intake, chassis.Piston, cfg.Teleop(), log)
	r := competition.NewRobot(lcd, loop, teleop.Config{Period: cfg.Period(), MaxTicks: maxTicks}, log)

	return &session{
		cfg:      cfg,
		bindings: bindings,
		brain:    brain,
		chassis:  chassis,
		lcd:      lcd,
		loop:     loop,
		robot:    r,
	}, nil
}
