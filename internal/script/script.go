// Package script replays operator input from a YAML file so the control
// loop can run headless.
//
//	name: figure-eight
//	steps:
//	  - ticks: 50
//	    axes: {left_y: 100, right_x: 40}
//	    buttons: [r1]
//	  - ticks: 10
//	    buttons: [l1]
package script

import (
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/teleop/internal/robot"
)

type Step struct {
	Ticks   int            `yaml:"ticks"`
	Axes    map[string]int `yaml:"axes,omitempty"`
	Buttons []string       `yaml:"buttons,omitempty"`
}

type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("script %q has no steps", s.Name)
	}
	for i, st := range s.Steps {
		if st.Ticks <= 0 {
			return nil, fmt.Errorf("step %d: ticks must be positive, got %d", i, st.Ticks)
		}
		for name := range st.Axes {
			if _, err := robot.ParseAxis(name); err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
		}
		for _, name := range st.Buttons {
			if _, err := robot.ParseButton(name); err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
		}
	}
	return &s, nil
}

// TotalTicks is the length of the script in ticks.
func (s *Script) TotalTicks() int {
	n := 0
	for _, st := range s.Steps {
		n += st.Ticks
	}
	return n
}

type frame struct {
	axes    map[robot.AxisID]int
	buttons map[robot.ButtonID]bool
}

// Player serves the script as an input device. It advances one tick each
// time the loop reports a completed tick; past the end all inputs are idle.
type Player struct {
	mu     sync.Mutex
	frames []frame
	spans  []int
	tick   int
	total  int
}

func NewPlayer(s *Script) *Player {
	p := &Player{total: s.TotalTicks()}
	for _, st := range s.Steps {
		f := frame{
			axes:    make(map[robot.AxisID]int, len(st.Axes)),
			buttons: make(map[robot.ButtonID]bool, len(st.Buttons)),
		}
		for name, v := range st.Axes {
			id, _ := robot.ParseAxis(name)
			f.axes[id] = robot.Clamp(v)
		}
		for _, name := range st.Buttons {
			id, _ := robot.ParseButton(name)
			f.buttons[id] = true
		}
		p.frames = append(p.frames, f)
		p.spans = append(p.spans, st.Ticks)
	}
	return p
}

func (p *Player) current() *frame {
	t := p.tick
	for i, span := range p.spans {
		if t < span {
			return &p.frames[i]
		}
		t -= span
	}
	return nil
}

func (p *Player) Axis(id robot.AxisID) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if f := p.current(); f != nil {
		return f.axes[id]
	}
	return 0
}

func (p *Player) Button(id robot.ButtonID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if f := p.current(); f != nil {
		return f.buttons[id]
	}
	return false
}

func (p *Player) OnTick(tick int, in robot.InputSample, out robot.TickOutput, at time.Time) {
	p.mu.Lock()
	p.tick++
	p.mu.Unlock()
}

func (p *Player) Done() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tick >= p.total
}

var _ robot.InputDevice = (*Player)(nil)
