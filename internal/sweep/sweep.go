// Package sweep replays one input script against a range of values for a
// single teleop parameter and compares the resulting run metrics.
//
// Replays tick as fast as possible with synthetic timestamps one period
// apart, so a sweep over many values finishes in milliseconds.
package sweep

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/teleop/internal/config"
	"github.com/san-kum/teleop/internal/control"
	"github.com/san-kum/teleop/internal/hardware"
	"github.com/san-kum/teleop/internal/metrics"
	"github.com/san-kum/teleop/internal/robot"
	"github.com/san-kum/teleop/internal/script"
	"github.com/san-kum/teleop/internal/teleop"
)

// Span is a default sweep range for one parameter.
type Span struct {
	Min float64
	Max float64
}

// Spans are the ranges swept when the caller gives none.
var Spans = map[string]Span{
	"turn_gain":    {Min: 0.5, Max: 1.0},
	"intake_power": {Min: 64, Max: robot.MotorMax},
}

type Config struct {
	Param   string
	Min     float64
	Max     float64
	Steps   int
	Workers int
}

// Validate checks the sweep against the controller's parameter ranges.
// Whole-number parameters need at least one distinct value per step.
func (c Config) Validate() error {
	r, ok := control.Params[c.Param]
	if !ok {
		return fmt.Errorf("%w: unknown sweep parameter %q", robot.ErrInvalidConfig, c.Param)
	}
	if c.Steps < 1 {
		return fmt.Errorf("%w: steps must be at least 1, got %d", robot.ErrInvalidConfig, c.Steps)
	}
	if c.Max < c.Min {
		return fmt.Errorf("%w: max %.3f below min %.3f", robot.ErrInvalidConfig, c.Max, c.Min)
	}
	if err := control.CheckParam(c.Param, c.Min); err != nil {
		return fmt.Errorf("sweep min: %w", err)
	}
	if err := control.CheckParam(c.Param, c.Max); err != nil {
		return fmt.Errorf("sweep max: %w", err)
	}
	if r.Whole && float64(c.Steps) > c.Max-c.Min+1 {
		return fmt.Errorf("%w: %d steps do not fit in whole values %g..%g",
			robot.ErrInvalidConfig, c.Steps, c.Min, c.Max)
	}
	return nil
}

// Values returns the evenly spaced parameter values, min and max included.
// Whole-number parameters are rounded to the nearest integer.
func (c Config) Values() []float64 {
	if c.Steps == 1 {
		return []float64{c.Min}
	}
	step := (c.Max - c.Min) / float64(c.Steps-1)
	whole := control.Params[c.Param].Whole
	vals := make([]float64, c.Steps)
	for i := range vals {
		vals[i] = c.Min + float64(i)*step
		if whole {
			vals[i] = math.Round(vals[i])
		}
	}
	vals[len(vals)-1] = c.Max
	return vals
}

type Result struct {
	Value   float64
	Ticks   int
	Metrics map[string]float64
}

// Run replays s once per value, in parallel, and returns the results in
// value order.
func Run(ctx context.Context, base *config.Config, s *script.Script, sc Config, log zerolog.Logger) ([]Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if err := base.Validate(); err != nil {
		return nil, err
	}

	values := sc.Values()
	results := make([]Result, len(values))

	g, ctx := errgroup.WithContext(ctx)
	if sc.Workers > 0 {
		g.SetLimit(sc.Workers)
	}
	for i, v := range values {
		i, v := i, v
		g.Go(func() error {
			res, err := Replay(ctx, base, s, sc.Param, v, log)
			if err != nil {
				return fmt.Errorf("%s=%.3f: %w", sc.Param, v, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debug().Str("param", sc.Param).Int("runs", len(results)).Msg("sweep complete")
	return results, nil
}

// Replay drives a fresh simulated chassis with s, with param set to value.
func Replay(ctx context.Context, base *config.Config, s *script.Script, param string, value float64, log zerolog.Logger) (Result, error) {
	bindings, err := base.Bindings()
	if err != nil {
		return Result{}, err
	}
	chassis, err := hardware.NewBrain(zerolog.Nop()).BuildChassis(base)
	if err != nil {
		return Result{}, err
	}

	controller := base.Teleop()
	if err := controller.SetParam(param, value); err != nil {
		return Result{}, err
	}

	player := script.NewPlayer(s)
	loop := teleop.New(player, bindings, chassis.DriveMotors(), chassis.Intake, chassis.Piston, controller, log)

	period := base.Period()
	ms := metrics.Defaults(period)
	for _, m := range ms {
		loop.AddObserver(m)
	}
	loop.AddObserver(player)

	at := time.Unix(0, 0)
	for !player.Done() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		loop.Tick(at)
		at = at.Add(period)
	}

	return Result{
		Value:   value,
		Ticks:   loop.Ticks(),
		Metrics: metrics.Collect(ms),
	}, nil
}
