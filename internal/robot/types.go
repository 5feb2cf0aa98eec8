package robot

import "fmt"

const (
	MotorMax = 127
	MotorMin = -127
)

type AxisID int

const (
	AxisLeftX AxisID = iota
	AxisLeftY
	AxisRightX
	AxisRightY
)

var axisNames = map[AxisID]string{
	AxisLeftX:  "left_x",
	AxisLeftY:  "left_y",
	AxisRightX: "right_x",
	AxisRightY: "right_y",
}

func (a AxisID) String() string {
	if n, ok := axisNames[a]; ok {
		return n
	}
	return fmt.Sprintf("axis(%d)", int(a))
}

// ParseAxis maps a lower-case axis name ("left_y") to its id.
func ParseAxis(name string) (AxisID, error) {
	for id, n := range axisNames {
		if n == name {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown axis: %s", name)
}

type ButtonID int

const (
	ButtonL1 ButtonID = iota
	ButtonL2
	ButtonR1
	ButtonR2
	ButtonA
	ButtonB
	ButtonX
	ButtonY
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

var buttonNames = map[ButtonID]string{
	ButtonL1:    "l1",
	ButtonL2:    "l2",
	ButtonR1:    "r1",
	ButtonR2:    "r2",
	ButtonA:     "a",
	ButtonB:     "b",
	ButtonX:     "x",
	ButtonY:     "y",
	ButtonUp:    "up",
	ButtonDown:  "down",
	ButtonLeft:  "left",
	ButtonRight: "right",
}

func (b ButtonID) String() string {
	if n, ok := buttonNames[b]; ok {
		return n
	}
	return fmt.Sprintf("button(%d)", int(b))
}

// ParseButton maps a lower-case button name ("r1") to its id.
func ParseButton(name string) (ButtonID, error) {
	for id, n := range buttonNames {
		if n == name {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown button: %s", name)
}

type InputDevice interface {
	Axis(id AxisID) int
	Button(id ButtonID) bool
}

type Motor interface {
	Move(power int)
}

type DigitalOut interface {
	Set(level bool)
}

// InputSample is the operator input captured at the start of a tick.
type InputSample struct {
	LeftY  int
	RightX int

	PistonExtend  bool
	PistonRetract bool
	IntakeForward bool
	IntakeReverse bool
	IntakeStop    bool
}

// DriveCommand holds one power per side. All motors on a side are
// commanded with the same value.
type DriveCommand struct {
	Left  int
	Right int
}

// Powers expands the command to the six drive motors, left side first.
func (d DriveCommand) Powers() [6]int {
	return [6]int{d.Left, d.Left, d.Left, d.Right, d.Right, d.Right}
}

type ActuatorState struct {
	PistonExtended bool
	IntakePower    int
}

// TickOutput is everything a single tick writes. Piston is nil when no
// piston button was pressed and the valve keeps its previous level.
type TickOutput struct {
	Drive  DriveCommand
	Piston *bool
	Intake int
}

// Clamp saturates a power value to the motor range.
func Clamp(power int) int {
	if power > MotorMax {
		return MotorMax
	}
	if power < MotorMin {
		return MotorMin
	}
	return power
}
