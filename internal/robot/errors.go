package robot

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownPort indicates a port outside the brain's addressable range.
	ErrUnknownPort = errors.New("robot: unknown port")

	// ErrPortInUse indicates two devices configured on the same port.
	ErrPortInUse = errors.New("robot: port already claimed")

	// ErrInvalidConfig indicates a configuration that cannot drive the robot.
	ErrInvalidConfig = errors.New("robot: invalid configuration")
)

// TickError wraps an error with the number of ticks completed before it.
type TickError struct {
	// Tick counts completed ticks, so the first tick that did not run is
	// numbered Tick.
	Tick    int
	Wrapped error
}

func (e *TickError) Error() string {
	return fmt.Sprintf("tick %d: %v", e.Tick, e.Wrapped)
}

func (e *TickError) Unwrap() error {
	return e.Wrapped
}
