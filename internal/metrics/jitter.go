package metrics

import (
	"math"
	"time"

	"github.com/san-kum/teleop/internal/robot"
)

// TickJitter is the largest deviation, in milliseconds, between the
// interval of two consecutive ticks and the loop period.
type TickJitter struct {
	period time.Duration
	last   time.Time
	worst  time.Duration
}

func NewTickJitter(period time.Duration) *TickJitter {
	return &TickJitter{period: period}
}

func (j *TickJitter) Name() string { return "tick_jitter_ms" }

func (j *TickJitter) OnTick(tick int, in robot.InputSample, out robot.TickOutput, at time.Time) {
	if !j.last.IsZero() {
		dev := at.Sub(j.last) - j.period
		if dev < 0 {
			dev = -dev
		}
		if dev > j.worst {
			j.worst = dev
		}
	}
	j.last = at
}

func (j *TickJitter) Value() float64 {
	return math.Round(float64(j.worst)/float64(time.Microsecond)) / 1000
}

func (j *TickJitter) Reset() {
	j.last = time.Time{}
	j.worst = 0
}
