package competition

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/san-kum/teleop/internal/display"
	"github.com/san-kum/teleop/internal/teleop"
)

// Robot is the program run by the dispatcher. Only operator control does
// anything; the other modes return immediately.
type Robot struct {
	LCD        *display.LCD
	Loop       *teleop.Loop
	LoopConfig teleop.Config
	log        zerolog.Logger
}

func NewRobot(lcd *display.LCD, loop *teleop.Loop, cfg teleop.Config, log zerolog.Logger) *Robot {
	return &Robot{
		LCD:        lcd,
		Loop:       loop,
		LoopConfig: cfg,
		log:        log.With().Str("component", "robot").Logger(),
	}
}

func (r *Robot) Initialize(ctx context.Context) error {
	display.Init(r.LCD)
	return nil
}

func (r *Robot) Disabled(ctx context.Context) error              { return nil }
func (r *Robot) CompetitionInitialize(ctx context.Context) error { return nil }
func (r *Robot) Autonomous(ctx context.Context) error            { return nil }

// OpControl runs the teleop loop until the task is killed. Cancellation is
// the normal way out and is not reported as an error.
func (r *Robot) OpControl(ctx context.Context) error {
	r.Loop.Controller().Reset()
	err := r.Loop.Run(ctx, r.LoopConfig)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

var _ Hooks = (*Robot)(nil)
