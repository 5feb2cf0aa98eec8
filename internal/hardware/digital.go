package hardware

import (
	"sync"

	"github.com/san-kum/teleop/internal/robot"
)

type DigitalOutState struct {
	Name   string `json:"name"`
	Port   string `json:"port"`
	Level  bool   `json:"level"`
	Writes int    `json:"writes"`
}

// DigitalOut is a simulated three-wire digital output, such as the
// solenoid valve of a pneumatic piston.
type DigitalOut struct {
	mu     sync.Mutex
	name   string
	port   byte
	level  bool
	writes int
}

func NewDigitalOut(name string, port byte) *DigitalOut {
	return &DigitalOut{name: name, port: port}
}

func (d *DigitalOut) Set(level bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.level = level
	d.writes++
}

func (d *DigitalOut) Level() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.level
}

func (d *DigitalOut) State() DigitalOutState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return DigitalOutState{
		Name:   d.name,
		Port:   string(d.port),
		Level:  d.level,
		Writes: d.writes,
	}
}

var _ robot.DigitalOut = (*DigitalOut)(nil)
