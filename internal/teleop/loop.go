package teleop

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/san-kum/teleop/internal/control"
	"github.com/san-kum/teleop/internal/robot"
)

type Loop struct {
	input      robot.InputDevice
	bindings   control.Bindings
	drive      [6]robot.Motor
	intake     robot.Motor
	piston     robot.DigitalOut
	controller *control.Teleop
	observers  []Observer
	log        zerolog.Logger
	ticks      atomic.Int64
}

func New(input robot.InputDevice, bindings control.Bindings, drive [6]robot.Motor, intake robot.Motor,
	piston robot.DigitalOut, controller *control.Teleop, log zerolog.Logger) *Loop {
	return &Loop{
		input:      input,
		bindings:   bindings,
		drive:      drive,
		intake:     intake,
		piston:     piston,
		controller: controller,
		observers:  make([]Observer, 0),
		log:        log.With().Str("component", "teleop").Logger(),
	}
}

func (l *Loop) AddObserver(o Observer) { l.observers = append(l.observers, o) }

// Ticks reports how many ticks have completed.
func (l *Loop) Ticks() int { return int(l.ticks.Load()) }

func (l *Loop) Controller() *control.Teleop { return l.controller }

// Tick runs one iteration: sample, map, write. Drive motors are written
// left side first, then the piston if commanded, then the intake.
func (l *Loop) Tick(at time.Time) robot.TickOutput {
	in := l.bindings.Sample(l.input)
	out := l.controller.Compute(in)

	for i, p := range out.Drive.Powers() {
		l.drive[i].Move(p)
	}
	if out.Piston != nil {
		l.piston.Set(*out.Piston)
	}
	l.intake.Move(out.Intake)

	tick := int(l.ticks.Add(1) - 1)

	if e := l.log.Trace(); e.Enabled() {
		e.Int("tick", tick).Int("left", out.Drive.Left).Int("right", out.Drive.Right).
			Int("intake", out.Intake).Bool("piston_write", out.Piston != nil).Msg("tick")
	}

	for _, obs := range l.observers {
		obs.OnTick(tick, in, out, at)
	}
	return out
}

// Run ticks until ctx is cancelled or cfg.MaxTicks ticks have run. It
// returns a *robot.TickError wrapping ctx.Err() on cancellation and nil
// when the tick budget is spent.
// No cleanup is performed on exit; actuators keep their last command.
func (l *Loop) Run(ctx context.Context, cfg Config) error {
	return l.RunWithCallback(ctx, cfg, nil)
}

// RunWithCallback is Run with a per-tick callback; returning false stops
// the loop after that tick.
func (l *Loop) RunWithCallback(ctx context.Context, cfg Config, callback func(tick int, out robot.TickOutput) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	l.log.Info().Dur("period", cfg.Period).Int("max_ticks", cfg.MaxTicks).Msg("operator control started")

	timer := time.NewTimer(cfg.Period)
	defer timer.Stop()

	for n := 0; ; n++ {
		select {
		case <-ctx.Done():
			return l.stopped(ctx)
		default:
		}

		out := l.Tick(time.Now())

		if callback != nil && !callback(l.Ticks()-1, out) {
			l.log.Info().Int("ticks", l.Ticks()).Msg("operator control finished by callback")
			return nil
		}
		if cfg.MaxTicks > 0 && n+1 >= cfg.MaxTicks {
			l.log.Info().Int("ticks", l.Ticks()).Msg("operator control finished")
			return nil
		}

		timer.Reset(cfg.Period)
		select {
		case <-ctx.Done():
			return l.stopped(ctx)
		case <-timer.C:
		}
	}
}

// stopped reports a cancelled run along with the number of ticks issued.
func (l *Loop) stopped(ctx context.Context) error {
	n := l.Ticks()
	l.log.Info().Int("ticks", n).Msg("operator control stopped")
	return &robot.TickError{Tick: n, Wrapped: ctx.Err()}
}

func validateConfig(cfg Config) error {
	if cfg.Period <= 0 {
		return fmt.Errorf("%w: period must be positive, got %v", robot.ErrInvalidConfig, cfg.Period)
	}
	if cfg.MaxTicks < 0 {
		return fmt.Errorf("%w: max ticks must not be negative, got %d", robot.ErrInvalidConfig, cfg.MaxTicks)
	}
	return nil
}
