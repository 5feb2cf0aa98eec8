package hardware

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/san-kum/teleop/internal/config"
	"github.com/san-kum/teleop/internal/robot"
)

// Brain owns the port map of the robot. Every device is claimed through it
// so that two devices never share a port.
type Brain struct {
	mu      sync.Mutex
	log     zerolog.Logger
	motors  map[int]*Motor
	outputs map[byte]*DigitalOut
}

func NewBrain(log zerolog.Logger) *Brain {
	return &Brain{
		log:     log.With().Str("component", "brain").Logger(),
		motors:  make(map[int]*Motor),
		outputs: make(map[byte]*DigitalOut),
	}
}

// ClaimMotor registers a motor on a signed port; negative is reversed.
func (b *Brain) ClaimMotor(name string, port int) (*Motor, error) {
	abs := port
	if abs < 0 {
		abs = -abs
	}
	if abs < MinPort || abs > MaxPort {
		return nil, fmt.Errorf("%w: motor %s on port %d", robot.ErrUnknownPort, name, port)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if prev, ok := b.motors[abs]; ok {
		return nil, fmt.Errorf("%w: port %d wanted by %s, held by %s", robot.ErrPortInUse, abs, name, prev.name)
	}
	m := NewMotor(name, port)
	b.motors[abs] = m
	b.log.Debug().Str("device", name).Int("port", abs).Bool("reversed", m.reversed).Msg("motor claimed")
	return m, nil
}

// ClaimDigitalOut registers a digital output on a three-wire port A..H.
func (b *Brain) ClaimDigitalOut(name string, port string) (*DigitalOut, error) {
	if len(port) != 1 {
		return nil, fmt.Errorf("%w: digital out %s on port %q", robot.ErrUnknownPort, name, port)
	}
	p := port[0]
	if p >= 'a' && p <= 'h' {
		p -= 'a' - 'A'
	}
	if p < 'A' || p > 'H' {
		return nil, fmt.Errorf("%w: digital out %s on port %q", robot.ErrUnknownPort, name, port)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if prev, ok := b.outputs[p]; ok {
		return nil, fmt.Errorf("%w: port %c wanted by %s, held by %s", robot.ErrPortInUse, p, name, prev.name)
	}
	d := NewDigitalOut(name, p)
	b.outputs[p] = d
	b.log.Debug().Str("device", name).Str("port", string(p)).Msg("digital out claimed")
	return d, nil
}

// Snapshot reports every claimed device ordered by port.
func (b *Brain) Snapshot() ([]MotorState, []DigitalOutState) {
	b.mu.Lock()
	defer b.mu.Unlock()

	motors := make([]MotorState, 0, len(b.motors))
	for _, m := range b.motors {
		motors = append(motors, m.State())
	}
	sort.Slice(motors, func(i, j int) bool { return motors[i].Port < motors[j].Port })

	outs := make([]DigitalOutState, 0, len(b.outputs))
	for _, d := range b.outputs {
		outs = append(outs, d.State())
	}
	sort.Slice(outs, func(i, j int) bool { return outs[i].Port < outs[j].Port })
	return motors, outs
}

// Chassis is the full actuator set of the robot.
type Chassis struct {
	Left   [3]*Motor
	Right  [3]*Motor
	Intake *Motor
	Piston *DigitalOut
}

// DriveMotors returns the six drive motors, left side first, as the loop
// expects them.
func (c *Chassis) DriveMotors() [6]robot.Motor {
	return [6]robot.Motor{c.Left[0], c.Left[1], c.Left[2], c.Right[0], c.Right[1], c.Right[2]}
}

// BuildChassis claims every device named by cfg.
func (b *Brain) BuildChassis(cfg *config.Config) (*Chassis, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Chassis{}
	var err error
	for i, port := range cfg.Drive.Left {
		if c.Left[i], err = b.ClaimMotor(fmt.Sprintf("left%d", i+1), port); err != nil {
			return nil, err
		}
	}
	for i, port := range cfg.Drive.Right {
		if c.Right[i], err = b.ClaimMotor(fmt.Sprintf("right%d", i+1), port); err != nil {
			return nil, err
		}
	}
	if c.Intake, err = b.ClaimMotor("intake", cfg.Intake.Port); err != nil {
		return nil, err
	}
	if c.Piston, err = b.ClaimDigitalOut("piston", cfg.Piston.Port); err != nil {
		return nil, err
	}

	b.log.Info().Ints("left", cfg.Drive.Left).Ints("right", cfg.Drive.Right).Str("piston", cfg.Piston.Port).Msg("chassis ready")
	return c, nil
}
