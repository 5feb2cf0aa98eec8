// Package competition runs the robot's lifecycle hooks the way a field
// controller does: initialize once, then one task per competition mode.
// Switching modes kills the running task and starts the next hook from
// scratch; a task is never resumed.
package competition

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

type Mode int

const (
	ModeNone Mode = iota
	ModeDisabled
	ModePreMatch
	ModeAutonomous
	ModeOpControl
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeDisabled:
		return "disabled"
	case ModePreMatch:
		return "competition_initialize"
	case ModeAutonomous:
		return "autonomous"
	case ModeOpControl:
		return "opcontrol"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode accepts the names printed by Mode.String plus "prematch".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "disabled":
		return ModeDisabled, nil
	case "competition_initialize", "prematch":
		return ModePreMatch, nil
	case "autonomous":
		return ModeAutonomous, nil
	case "opcontrol":
		return ModeOpControl, nil
	}
	return ModeNone, fmt.Errorf("unknown mode: %s", s)
}

// Hooks are the entry points the dispatcher calls. Every hook except
// Initialize runs in its own task and must return when ctx is done.
type Hooks interface {
	Initialize(ctx context.Context) error
	Disabled(ctx context.Context) error
	CompetitionInitialize(ctx context.Context) error
	Autonomous(ctx context.Context) error
	OpControl(ctx context.Context) error
}

var ErrNotStarted = errors.New("competition: dispatcher not started")

type Dispatcher struct {
	hooks Hooks
	log   zerolog.Logger

	// switching serializes mode changes; mu guards the fields below.
	switching sync.Mutex
	mu        sync.Mutex
	parent    context.Context
	mode      Mode
	cancel    context.CancelFunc
	done      chan struct{}
	lastErr   error
}

func NewDispatcher(hooks Hooks, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		hooks: hooks,
		log:   log.With().Str("component", "competition").Logger(),
	}
}

// Start runs Initialize to completion. No other hook runs before it returns.
func (d *Dispatcher) Start(ctx context.Context) error {
	d.log.Info().Msg("initialize")
	if err := d.hooks.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	d.mu.Lock()
	d.parent = ctx
	d.mu.Unlock()
	return nil
}

// SetMode stops the running task, waits for it to return and starts the
// hook for m. Setting the current mode again restarts its task.
func (d *Dispatcher) SetMode(m Mode) error {
	d.switching.Lock()
	defer d.switching.Unlock()
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.parent == nil {
		return ErrNotStarted
	}
	hook, err := d.hookFor(m)
	if err != nil {
		return err
	}

	d.stopLocked()

	ctx, cancel := context.WithCancel(d.parent)
	done := make(chan struct{})
	d.mode, d.cancel, d.done = m, cancel, done

	d.log.Info().Stringer("mode", m).Msg("task started")
	go func() {
		defer close(done)
		err := hook(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			d.log.Error().Err(err).Stringer("mode", m).Msg("task failed")
			d.mu.Lock()
			d.lastErr = err
			d.mu.Unlock()
			return
		}
		d.log.Debug().Stringer("mode", m).Msg("task returned")
	}()
	return nil
}

func (d *Dispatcher) hookFor(m Mode) (func(context.Context) error, error) {
	switch m {
	case ModeDisabled:
		return d.hooks.Disabled, nil
	case ModePreMatch:
		return d.hooks.CompetitionInitialize, nil
	case ModeAutonomous:
		return d.hooks.Autonomous, nil
	case ModeOpControl:
		return d.hooks.OpControl, nil
	}
	return nil, fmt.Errorf("no hook for mode %s", m)
}

// stopLocked cancels the running task and waits for it. The task goroutine
// may need d.mu to record an error, so the lock is released while waiting.
func (d *Dispatcher) stopLocked() {
	if d.cancel == nil {
		return
	}
	cancel, done, mode := d.cancel, d.done, d.mode
	d.cancel, d.done, d.mode = nil, nil, ModeNone

	cancel()
	d.mu.Unlock()
	<-done
	d.mu.Lock()
	d.log.Info().Stringer("mode", mode).Msg("task stopped")
}

func (d *Dispatcher) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// Err returns the last error a task returned, other than cancellation.
func (d *Dispatcher) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}

// Wait blocks until the running task returns on its own or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	d.mu.Lock()
	done := d.done
	d.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return d.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop kills the running task, if any, and waits for it.
func (d *Dispatcher) Stop() {
	d.switching.Lock()
	defer d.switching.Unlock()
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}
