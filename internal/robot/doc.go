// Package robot defines the types shared between the control mapping,
// the teleop loop and the device layer.
//
// The device side is expressed as small polled interfaces:
//
//   - [InputDevice]: analog axes and digital buttons of the operator controller
//   - [Motor]: a smart motor accepting a signed power command
//   - [DigitalOut]: a single digital output, such as a pneumatic valve
//
// Per tick the loop captures an [InputSample], derives a [TickOutput] and
// writes it to the actuators. Nothing is buffered between ticks.
package robot
