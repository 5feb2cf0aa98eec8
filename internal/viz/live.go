// Package viz is the live terminal dashboard. The keyboard drives a virtual
// gamepad and every frame runs one tick of the control loop.
package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/teleop/internal/control"
	"github.com/san-kum/teleop/internal/display"
	"github.com/san-kum/teleop/internal/hardware"
	"github.com/san-kum/teleop/internal/robot"
	"github.com/san-kum/teleop/internal/teleop"
)

const (
	historyCapacity = 120
	axisStep        = 32
	gainStep        = 0.05
)

type TickMsg time.Time

// Model contains the devices, the loop and the power history on screen.
type Model struct {
	pad     *hardware.Gamepad
	loop    *teleop.Loop
	chassis *hardware.Chassis
	lcd     *display.LCD
	period  time.Duration

	forward   robot.AxisID
	turn      robot.AxisID
	last      robot.TickOutput
	leftHist  []float64
	rightHist []float64
	paused    bool
	width     int
}

func NewModel(pad *hardware.Gamepad, loop *teleop.Loop, chassis *hardware.Chassis, lcd *display.LCD,
	forward, turn robot.AxisID, period time.Duration) Model {
	return Model{
		pad:       pad,
		loop:      loop,
		chassis:   chassis,
		lcd:       lcd,
		period:    period,
		forward:   forward,
		turn:      turn,
		leftHist:  make([]float64, 0, historyCapacity),
		rightHist: make([]float64, 0, historyCapacity),
		width:     80,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.period, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// buttonKeys maps keys to controller buttons. A terminal reports no key
// releases, so buttons latch until pressed again.
var buttonKeys = map[string]robot.ButtonID{
	"1": robot.ButtonL1,
	"2": robot.ButtonL2,
	"3": robot.ButtonR1,
	"4": robot.ButtonR2,
	"b": robot.ButtonB,
	"x": robot.ButtonX,
	"y": robot.ButtonY,
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case TickMsg:
		if !m.paused {
			m.step(time.Time(msg))
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	if id, ok := buttonKeys[key]; ok {
		m.pad.Toggle(id)
		return m, nil
	}

	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "w", "up":
		m.nudge(m.forward, axisStep)
	case "s", "down":
		m.nudge(m.forward, -axisStep)
	case "d", "right":
		m.nudge(m.turn, axisStep)
	case "a", "left":
		m.nudge(m.turn, -axisStep)
	case " ":
		m.pad.SetAxis(m.forward, 0)
		m.pad.SetAxis(m.turn, 0)
	case "r":
		m.pad.Reset()
	case "c":
		m.lcd.Press(display.ButtonCenter)
	case "+", "=":
		m.adjustGain(gainStep)
	case "-", "_":
		m.adjustGain(-gainStep)
	case "p":
		m.paused = !m.paused
	}
	return m, nil
}

func (m Model) nudge(id robot.AxisID, delta int) {
	m.pad.SetAxis(id, m.pad.Axis(id)+delta)
}

func (m Model) adjustGain(delta float64) {
	tc := m.loop.Controller()
	gain := tc.GetParams()["turn_gain"] + delta
	gain = math.Min(math.Max(gain, control.MinTurnGain), control.MaxTurnGain)
	_ = tc.SetParam("turn_gain", gain)
}

func (m *Model) step(at time.Time) {
	m.last = m.loop.Tick(at)
	m.leftHist = appendCapped(m.leftHist, float64(m.last.Drive.Left))
	m.rightHist = appendCapped(m.rightHist, float64(m.last.Drive.Right))
}

func appendCapped(h []float64, v float64) []float64 {
	if len(h) >= historyCapacity {
		copy(h, h[1:])
		h = h[:len(h)-1]
	}
	return append(h, v)
}

func (m Model) View() string {
	var s strings.Builder
	status := "RUNNING"
	if m.paused {
		status = "PAUSED"
	}
	s.WriteString(headerStyle.Render("TELEOP") + "  " + hintStyle.Render(fmt.Sprintf("%s  tick %d", status, m.loop.Ticks())) + "\n\n")

	left := lipgloss.JoinVertical(lipgloss.Left, m.viewDrive(), m.viewInputs())
	right := lipgloss.JoinVertical(lipgloss.Left, m.viewMechanisms(), m.lcd.Render())
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right) + "\n")

	if len(m.leftHist) > 1 {
		graphWidth := m.width - 12
		if graphWidth > historyCapacity {
			graphWidth = historyCapacity
		}
		if graphWidth < 20 {
			graphWidth = 20
		}
		chart := asciigraph.PlotMany([][]float64{m.leftHist, m.rightHist},
			asciigraph.Height(8), asciigraph.Width(graphWidth), asciigraph.Caption("left / right drive power"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(help())
	return s.String()
}

func (m Model) viewDrive() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("DRIVE") + "\n")
	for _, mot := range append(m.chassis.Left[:], m.chassis.Right[:]...) {
		st := mot.State()
		b.WriteString(labelStyle.Render(fmt.Sprintf("%s:%d", st.Name, st.Port)) + power(st.Applied) + "\n")
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) viewMechanisms() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("MECHANISMS") + "\n")
	b.WriteString(labelStyle.Render("intake") + power(m.chassis.Intake.Applied()) + "\n")
	piston := idleStyle.Render("retracted")
	if m.chassis.Piston.Level() {
		piston = pressedStyle.Render("extended")
	}
	b.WriteString(labelStyle.Render("piston") + piston + "\n")
	gain := m.loop.Controller().GetParams()["turn_gain"]
	b.WriteString(labelStyle.Render("turn gain") + valueStyle.Render(fmt.Sprintf("%.2f", gain)))
	return panelStyle.Render(b.String())
}

func (m Model) viewInputs() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("CONTROLLER") + "\n")
	b.WriteString(labelStyle.Render(m.forward.String()) + valueStyle.Render(fmt.Sprintf("%4d", m.pad.Axis(m.forward))) + "\n")
	b.WriteString(labelStyle.Render(m.turn.String()) + valueStyle.Render(fmt.Sprintf("%4d", m.pad.Axis(m.turn))) + "\n")
	buttons := make([]string, 0, len(buttonKeys))
	for _, id := range []robot.ButtonID{robot.ButtonL1, robot.ButtonL2, robot.ButtonR1, robot.ButtonR2, robot.ButtonB, robot.ButtonX, robot.ButtonY} {
		name := strings.ToUpper(id.String())
		if m.pad.Button(id) {
			buttons = append(buttons, pressedStyle.Render(name))
		} else {
			buttons = append(buttons, idleStyle.Render(name))
		}
	}
	b.WriteString(strings.Join(buttons, " "))
	return panelStyle.Render(b.String())
}

func power(p int) string {
	bar := strings.Repeat("█", abs(p)*10/robot.MotorMax)
	text := fmt.Sprintf("%4d ", p)
	switch {
	case p > 0:
		return valueStyle.Render(text) + forwardStyle.Render(bar)
	case p < 0:
		return valueStyle.Render(text) + reverseStyle.Render(bar)
	}
	return valueStyle.Render(text)
}

func help() string {
	pairs := [][2]string{
		{"w/s", "forward"}, {"a/d", "turn"}, {"space", "center"}, {"1-4", "L1 L2 R1 R2"},
		{"b", "stop"}, {"c", "lcd"}, {"+/-", "gain"}, {"p", "pause"}, {"q", "quit"},
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, keyStyle.Render(p[0])+hintStyle.Render(" "+p[1]))
	}
	return "\n" + strings.Join(parts, "  ") + "\n"
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Run starts the dashboard in the alternate screen and blocks until quit.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
