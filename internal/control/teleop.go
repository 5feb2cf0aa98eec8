package control

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/teleop/internal/robot"
)

const (
	DefaultTurnGain    = 0.8
	DefaultIntakePower = robot.MotorMax

	MinTurnGain = 0.05
	MaxTurnGain = 2.0
)

// ParamRange bounds a tunable parameter. Both ends are inclusive.
type ParamRange struct {
	Min   float64
	Max   float64
	Whole bool
}

// Params lists the tunable parameters of a Teleop controller.
var Params = map[string]ParamRange{
	"turn_gain":    {Min: MinTurnGain, Max: MaxTurnGain},
	"intake_power": {Min: 1, Max: robot.MotorMax, Whole: true},
}

// ParamNames returns the tunable parameter names, sorted.
func ParamNames() []string {
	names := make([]string, 0, len(Params))
	for name := range Params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CheckParam rejects unknown parameters and values outside their range.
// Intake power is always positive; the sign comes from the buttons.
func CheckParam(name string, value float64) error {
	r, ok := Params[name]
	if !ok {
		return fmt.Errorf("%w: unknown parameter %q", robot.ErrInvalidConfig, name)
	}
	if math.IsNaN(value) || value < r.Min || value > r.Max {
		return fmt.Errorf("%w: %s must be in %g..%g, got %g", robot.ErrInvalidConfig, name, r.Min, r.Max, value)
	}
	if r.Whole && value != math.Trunc(value) {
		return fmt.Errorf("%w: %s must be a whole number, got %g", robot.ErrInvalidConfig, name, value)
	}
	return nil
}

type Teleop struct {
	TurnGain    float64
	IntakeSpeed int
	state       robot.ActuatorState
}

func NewTeleop(turnGain float64, intakeSpeed int) *Teleop {
	return &Teleop{
		TurnGain:    turnGain,
		IntakeSpeed: intakeSpeed,
	}
}

// Compute derives this tick's output and records the resulting actuator
// state. The piston keeps its previous level when no piston button is held.
func (c *Teleop) Compute(in robot.InputSample) robot.TickOutput {
	out := robot.TickOutput{
		Drive:  Mix(in.LeftY, in.RightX, c.TurnGain),
		Piston: PistonCommand(in),
		Intake: IntakePower(in, c.IntakeSpeed),
	}
	if out.Piston != nil {
		c.state.PistonExtended = *out.Piston
	}
	c.state.IntakePower = out.Intake
	return out
}

func (c *Teleop) State() robot.ActuatorState { return c.state }

// Reset returns the actuator state to retracted and stopped.
func (c *Teleop) Reset() {
	c.state = robot.ActuatorState{}
}

// GetParams returns tunable parameters for live adjustment
func (c *Teleop) GetParams() map[string]float64 {
	return map[string]float64{
		"turn_gain":    c.TurnGain,
		"intake_power": float64(c.IntakeSpeed),
	}
}

// SetParam adjusts a teleop parameter. Out-of-range values leave the
// controller unchanged.
func (c *Teleop) SetParam(name string, value float64) error {
	if err := CheckParam(name, value); err != nil {
		return err
	}
	switch name {
	case "turn_gain":
		c.TurnGain = value
	case "intake_power":
		c.IntakeSpeed = int(value)
	}
	return nil
}
