// Package metrics summarizes a teleop run. Every metric is a loop observer
// and reduces the run to one number.
package metrics

import (
	"time"

	"github.com/san-kum/teleop/internal/robot"
)

type Metric interface {
	Name() string
	OnTick(tick int, in robot.InputSample, out robot.TickOutput, at time.Time)
	Value() float64
	Reset()
}

// Defaults returns the metrics recorded for every run.
func Defaults(period time.Duration) []Metric {
	return []Metric{
		NewDriveEffort(),
		NewTickJitter(period),
		NewPistonWrites(),
		NewIntakeDuty(),
	}
}

// Collect reads the current value of every metric.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
