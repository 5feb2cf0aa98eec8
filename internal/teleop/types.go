package teleop

import (
	"time"

	"github.com/san-kum/teleop/internal/robot"
)

const DefaultPeriod = 20 * time.Millisecond

// Observer is notified after every tick, once all writes are issued.
type Observer interface {
	OnTick(tick int, in robot.InputSample, out robot.TickOutput, at time.Time)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(tick int, in robot.InputSample, out robot.TickOutput, at time.Time)

func (f ObserverFunc) OnTick(tick int, in robot.InputSample, out robot.TickOutput, at time.Time) {
	f(tick, in, out, at)
}

type Config struct {
	// Period is the delay between ticks.
	Period time.Duration
	// MaxTicks bounds the run; zero runs until the context is cancelled.
	MaxTicks int
}
