package hardware

import (
	"sync"

	"github.com/san-kum/teleop/internal/robot"
)

const numButtons = int(robot.ButtonRight) + 1

// Gamepad is a virtual operator controller. Anything may set its inputs
// concurrently with the control loop polling them.
type Gamepad struct {
	mu      sync.RWMutex
	axes    [4]int
	buttons [numButtons]bool
}

func NewGamepad() *Gamepad {
	return &Gamepad{}
}

func (g *Gamepad) Axis(id robot.AxisID) int {
	if id < 0 || int(id) >= len(g.axes) {
		return 0
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.axes[id]
}

func (g *Gamepad) Button(id robot.ButtonID) bool {
	if id < 0 || int(id) >= numButtons {
		return false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.buttons[id]
}

// SetAxis sets an analog axis, clamped to the controller range.
func (g *Gamepad) SetAxis(id robot.AxisID, value int) {
	if id < 0 || int(id) >= len(g.axes) {
		return
	}
	g.mu.Lock()
	g.axes[id] = robot.Clamp(value)
	g.mu.Unlock()
}

func (g *Gamepad) SetButton(id robot.ButtonID, pressed bool) {
	if id < 0 || int(id) >= numButtons {
		return
	}
	g.mu.Lock()
	g.buttons[id] = pressed
	g.mu.Unlock()
}

func (g *Gamepad) Press(id robot.ButtonID)   { g.SetButton(id, true) }
func (g *Gamepad) Release(id robot.ButtonID) { g.SetButton(id, false) }

// Toggle flips a button and returns its new state.
func (g *Gamepad) Toggle(id robot.ButtonID) bool {
	if id < 0 || int(id) >= numButtons {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.buttons[id] = !g.buttons[id]
	return g.buttons[id]
}

// Reset centers all axes and releases all buttons.
func (g *Gamepad) Reset() {
	g.mu.Lock()
	g.axes = [4]int{}
	g.buttons = [numButtons]bool{}
	g.mu.Unlock()
}

var _ robot.InputDevice = (*Gamepad)(nil)
