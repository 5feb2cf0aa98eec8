// Package display emulates the brain's status screen: a few lines of text
// and three buttons whose presses are delivered to registered callbacks.
package display

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

const Lines = 8

type Button int

const (
	ButtonLeft Button = iota
	ButtonCenter
	ButtonRight
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonCenter:
		return "center"
	case ButtonRight:
		return "right"
	}
	return fmt.Sprintf("button(%d)", int(b))
}

// LCD holds the text lines and the button callback registry. Callbacks
// run on the goroutine that calls Press, outside the LCD lock.
type LCD struct {
	mu        sync.Mutex
	lines     [Lines]string
	callbacks map[Button]func()
}

func New() *LCD {
	return &LCD{callbacks: make(map[Button]func())}
}

func (l *LCD) SetText(line int, text string) error {
	if line < 0 || line >= Lines {
		return fmt.Errorf("display: line %d out of range", line)
	}
	l.mu.Lock()
	l.lines[line] = text
	l.mu.Unlock()
	return nil
}

func (l *LCD) ClearLine(line int) error {
	return l.SetText(line, "")
}

func (l *LCD) Lines() [Lines]string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lines
}

// RegisterButton sets the callback for a button, replacing any previous one.
func (l *LCD) RegisterButton(b Button, cb func()) {
	l.mu.Lock()
	l.callbacks[b] = cb
	l.mu.Unlock()
}

// Press delivers a button press. It reports whether a callback ran.
func (l *LCD) Press(b Button) bool {
	l.mu.Lock()
	cb := l.callbacks[b]
	l.mu.Unlock()
	if cb == nil {
		return false
	}
	cb()
	return true
}

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1).
			Width(34)
	lineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff"))
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
)

// Render draws the screen as a bordered panel.
func (l *LCD) Render() string {
	lines := l.Lines()
	rows := make([]string, 0, Lines)
	for i, s := range lines {
		if s == "" {
			rows = append(rows, emptyStyle.Render(fmt.Sprintf("%d", i)))
			continue
		}
		rows = append(rows, lineStyle.Render(fmt.Sprintf("%d %s", i, s)))
	}
	return panelStyle.Render(strings.Join(rows, "\n"))
}
