package control

import "github.com/san-kum/teleop/internal/robot"

// Mix combines the forward axis v and the turn axis h. The turn axis is
// scaled by gain and truncated toward zero before mixing. Results are not
// clamped; the motors saturate on their own.
func Mix(v, h int, gain float64) robot.DriveCommand {
	turn := int(gain * float64(h))
	return robot.DriveCommand{
		Left:  v + turn,
		Right: v - turn,
	}
}

// PistonCommand returns the valve level requested this tick, or nil when
// neither button is held. Retract is checked after extend, so holding both
// retracts.
func PistonCommand(in robot.InputSample) *bool {
	var level *bool
	if in.PistonExtend {
		v := true
		level = &v
	}
	if in.PistonRetract {
		v := false
		level = &v
	}
	return level
}

// IntakePower returns the intake command for this tick. Forward has
// priority over reverse; stop overrides both.
func IntakePower(in robot.InputSample, power int) int {
	out := 0
	if in.IntakeForward {
		out = power
	} else if in.IntakeReverse {
		out = -power
	}
	if in.IntakeStop {
		out = 0
	}
	return out
}
