package metrics

import (
	"time"

	"github.com/san-kum/teleop/internal/robot"
)

// DriveEffort is the mean absolute drive command, averaged over both sides.
type DriveEffort struct {
	name    string
	sum     float64
	samples int
}

func NewDriveEffort() *DriveEffort {
	return &DriveEffort{
		name: "drive_effort",
	}
}

func (c *DriveEffort) Name() string {
	return c.name
}

func (c *DriveEffort) OnTick(tick int, in robot.InputSample, out robot.TickOutput, at time.Time) {
	c.sum += (abs(out.Drive.Left) + abs(out.Drive.Right)) / 2
	c.samples++
}

func (c *DriveEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *DriveEffort) Reset() {
	c.sum = 0
	c.samples = 0
}

// IntakeDuty is the fraction of ticks with the intake running.
type IntakeDuty struct {
	running int
	samples int
}

func NewIntakeDuty() *IntakeDuty { return &IntakeDuty{} }

func (d *IntakeDuty) Name() string { return "intake_duty" }

func (d *IntakeDuty) OnTick(tick int, in robot.InputSample, out robot.TickOutput, at time.Time) {
	if out.Intake != 0 {
		d.running++
	}
	d.samples++
}

func (d *IntakeDuty) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return float64(d.running) / float64(d.samples)
}

func (d *IntakeDuty) Reset() {
	d.running = 0
	d.samples = 0
}

// PistonWrites counts ticks that commanded the piston.
type PistonWrites struct {
	count int
}

func NewPistonWrites() *PistonWrites { return &PistonWrites{} }

func (p *PistonWrites) Name() string { return "piston_writes" }

func (p *PistonWrites) OnTick(tick int, in robot.InputSample, out robot.TickOutput, at time.Time) {
	if out.Piston != nil {
		p.count++
	}
}

func (p *PistonWrites) Value() float64 { return float64(p.count) }
func (p *PistonWrites) Reset()         { p.count = 0 }

func abs(x int) float64 {
	if x < 0 {
		return float64(-x)
	}
	return float64(x)
}
