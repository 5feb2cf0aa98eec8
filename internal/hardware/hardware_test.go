package hardware

import (
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/san-kum/teleop/internal/config"
	"github.com/san-kum/teleop/internal/robot"
)

func TestMotorSaturatesAndInverts(t *testing.T) {
	tests := []struct {
		port    int
		power   int
		applied int
	}{
		{8, 50, 50},
		{8, 228, 127},
		{8, -300, -127},
		{-7, 50, -50},
		{-7, 228, -127},
		{-7, -26, 26},
	}

	for _, tt := range tests {
		m := NewMotor("m", tt.port)
		m.Move(tt.power)
		st := m.State()
		if st.Applied != tt.applied {
			t.Errorf("port %d power %d: expected applied %d, got %d", tt.port, tt.power, tt.applied, st.Applied)
		}
		if st.Commanded != tt.power {
			t.Errorf("port %d: expected commanded %d, got %d", tt.port, tt.power, st.Commanded)
		}
	}

	m := NewMotor("m", -12)
	if m.Port() != 12 || !m.Reversed() {
		t.Errorf("expected reversed port 12, got %d reversed=%v", m.Port(), m.Reversed())
	}
}

func TestDigitalOut(t *testing.T) {
	d := NewDigitalOut("piston", 'H')
	d.Set(true)
	d.Set(true)
	d.Set(false)

	st := d.State()
	if st.Level {
		t.Error("expected low level")
	}
	if st.Writes != 3 {
		t.Errorf("expected 3 writes, got %d", st.Writes)
	}
	if st.Port != "H" {
		t.Errorf("expected port H, got %s", st.Port)
	}
}

func TestGamepad(t *testing.T) {
	g := NewGamepad()
	g.SetAxis(robot.AxisLeftY, 300)
	g.Press(robot.ButtonR1)

	if g.Axis(robot.AxisLeftY) != 127 {
		t.Errorf("expected clamped axis, got %d", g.Axis(robot.AxisLeftY))
	}
	if !g.Button(robot.ButtonR1) {
		t.Error("expected R1 pressed")
	}
	if g.Toggle(robot.ButtonR1) {
		t.Error("expected toggle to release R1")
	}
	if g.Axis(robot.AxisID(42)) != 0 || g.Button(robot.ButtonID(-1)) {
		t.Error("out of range ids must read as idle")
	}

	g.Press(robot.ButtonB)
	g.Reset()
	if g.Button(robot.ButtonB) || g.Axis(robot.AxisLeftY) != 0 {
		t.Error("expected reset to clear inputs")
	}
}

func TestGamepadConcurrentAccess(t *testing.T) {
	g := NewGamepad()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				g.SetAxis(robot.AxisRightX, j)
				g.SetButton(robot.ButtonL1, j%2 == 0)
				_ = g.Axis(robot.AxisRightX)
				_ = g.Button(robot.ButtonL1)
			}
		}(i)
	}
	wg.Wait()
}

func TestBrainRejectsConflicts(t *testing.T) {
	b := NewBrain(zerolog.Nop())

	if _, err := b.ClaimMotor("a", 7); err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if _, err := b.ClaimMotor("b", -7); !errors.Is(err, robot.ErrPortInUse) {
		t.Errorf("expected ErrPortInUse, got %v", err)
	}
	if _, err := b.ClaimMotor("c", 22); !errors.Is(err, robot.ErrUnknownPort) {
		t.Errorf("expected ErrUnknownPort, got %v", err)
	}
	if _, err := b.ClaimMotor("d", 0); !errors.Is(err, robot.ErrUnknownPort) {
		t.Errorf("expected ErrUnknownPort for port 0, got %v", err)
	}

	if _, err := b.ClaimDigitalOut("p", "h"); err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if _, err := b.ClaimDigitalOut("q", "H"); !errors.Is(err, robot.ErrPortInUse) {
		t.Errorf("expected ErrPortInUse, got %v", err)
	}
	if _, err := b.ClaimDigitalOut("r", "Z"); !errors.Is(err, robot.ErrUnknownPort) {
		t.Errorf("expected ErrUnknownPort, got %v", err)
	}
}

func TestBuildChassis(t *testing.T) {
	b := NewBrain(zerolog.Nop())
	c, err := b.BuildChassis(config.DefaultConfig())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	wantReversed := map[int]bool{7: true, 8: false, 3: true, 10: false, 12: true, 11: false, 6: true}
	motors, outs := b.Snapshot()
	if len(motors) != 7 {
		t.Fatalf("expected 7 motors, got %d", len(motors))
	}
	for _, m := range motors {
		if m.Reversed != wantReversed[m.Port] {
			t.Errorf("port %d: expected reversed=%v", m.Port, wantReversed[m.Port])
		}
	}
	for i := 1; i < len(motors); i++ {
		if motors[i-1].Port > motors[i].Port {
			t.Error("snapshot must be sorted by port")
		}
	}
	if len(outs) != 1 || outs[0].Port != "H" {
		t.Errorf("expected piston on H, got %+v", outs)
	}

	drive := c.DriveMotors()
	for _, m := range drive {
		m.Move(100)
	}
	if c.Left[0].Applied() != -100 || c.Left[1].Applied() != 100 {
		t.Error("left side polarity not applied")
	}
	if c.Right[1].Applied() != -100 || c.Right[2].Applied() != 100 {
		t.Error("right side polarity not applied")
	}
}

func TestBuildChassisDuplicatePort(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Intake.Port = 8

	if _, err := NewBrain(zerolog.Nop()).BuildChassis(cfg); !errors.Is(err, robot.ErrPortInUse) {
		t.Errorf("expected ErrPortInUse, got %v", err)
	}
}
