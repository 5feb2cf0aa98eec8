package control

import "github.com/san-kum/teleop/internal/robot"

// Bindings maps the logical controls of the robot to controller inputs.
type Bindings struct {
	Forward robot.AxisID
	Turn    robot.AxisID

	PistonExtend  robot.ButtonID
	PistonRetract robot.ButtonID
	IntakeForward robot.ButtonID
	IntakeReverse robot.ButtonID
	IntakeStop    robot.ButtonID
}

func DefaultBindings() Bindings {
	return Bindings{
		Forward:       robot.AxisLeftY,
		Turn:          robot.AxisRightX,
		PistonExtend:  robot.ButtonL1,
		PistonRetract: robot.ButtonL2,
		IntakeForward: robot.ButtonR1,
		IntakeReverse: robot.ButtonR2,
		IntakeStop:    robot.ButtonB,
	}
}

// Sample polls dev once for every bound input.
func (b Bindings) Sample(dev robot.InputDevice) robot.InputSample {
	return robot.InputSample{
		LeftY:         dev.Axis(b.Forward),
		RightX:        dev.Axis(b.Turn),
		PistonExtend:  dev.Button(b.PistonExtend),
		PistonRetract: dev.Button(b.PistonRetract),
		IntakeForward: dev.Button(b.IntakeForward),
		IntakeReverse: dev.Button(b.IntakeReverse),
		IntakeStop:    dev.Button(b.IntakeStop),
	}
}
