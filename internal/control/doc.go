// Package control maps operator input to actuator commands.
//
// The mapping is pure and evaluated once per tick:
//
//   - [Mix]: tank-hybrid mixing of a forward axis and a turn axis
//   - [PistonCommand]: extend/retract buttons to a valve level
//   - [IntakePower]: forward/reverse/stop buttons to an intake power
//
// [Teleop] combines the three and keeps the last commanded actuator state.
//
// # Usage
//
//	tc := control.NewTeleop(0.8, 127)
//	out := tc.Compute(control.DefaultBindings().Sample(pad))
//
// [Teleop] implements GetParams/SetParam for live tuning.
package control
