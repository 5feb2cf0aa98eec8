// Package teleop runs the operator-control loop.
//
// Each tick the [Loop] polls the controller, maps the sample through
// [control.Teleop] and writes six drive powers, an optional piston level
// and one intake power. It then sleeps for the configured period. The loop
// has no exit of its own: it runs until its context is cancelled, which is
// how the competition dispatcher ends the operator-control task.
//
//	loop := teleop.New(pad, bindings, chassis.DriveMotors(), chassis.Intake, chassis.Piston, tc, log)
//	loop.AddObserver(recorder)
//	err := loop.Run(ctx, teleop.Config{Period: 20 * time.Millisecond})
package teleop
