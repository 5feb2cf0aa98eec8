package hardware

import (
	"sync"

	"github.com/san-kum/teleop/internal/robot"
)

const (
	MinPort = 1
	MaxPort = 21
)

type MotorState struct {
	Name      string `json:"name"`
	Port      int    `json:"port"`
	Reversed  bool   `json:"reversed"`
	Commanded int    `json:"commanded"`
	Applied   int    `json:"applied"`
	Writes    int    `json:"writes"`
}

// Motor is a simulated smart motor. Commands saturate to the motor range
// and are inverted when the motor is mounted reversed.
type Motor struct {
	mu        sync.Mutex
	name      string
	port      int
	reversed  bool
	commanded int
	applied   int
	writes    int
}

// NewMotor creates a motor from a signed port number. A negative port
// means the motor is reversed.
func NewMotor(name string, port int) *Motor {
	m := &Motor{name: name, port: port}
	if port < 0 {
		m.port = -port
		m.reversed = true
	}
	return m
}

func (m *Motor) Move(power int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.commanded = power
	m.applied = robot.Clamp(power)
	if m.reversed {
		m.applied = -m.applied
	}
	m.writes++
}

func (m *Motor) Port() int      { return m.port }
func (m *Motor) Reversed() bool { return m.reversed }

// Applied is the power reaching the motor after saturation and polarity.
func (m *Motor) Applied() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.applied
}

func (m *Motor) State() MotorState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MotorState{
		Name:      m.name,
		Port:      m.port,
		Reversed:  m.reversed,
		Commanded: m.commanded,
		Applied:   m.applied,
		Writes:    m.writes,
	}
}

var _ robot.Motor = (*Motor)(nil)
