package robot

import (
	"errors"
	"testing"
)

func TestDriveCommandPowers(t *testing.T) {
	p := DriveCommand{Left: 40, Right: -25}.Powers()
	want := [6]int{40, 40, 40, -25, -25, -25}
	if p != want {
		t.Errorf("expected %v, got %v", want, p)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 0},
		{127, 127},
		{128, 127},
		{228, 127},
		{-127, -127},
		{-201, -127},
		{55, 55},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%d): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestParseNames(t *testing.T) {
	for id := range buttonNames {
		got, err := ParseButton(id.String())
		if err != nil || got != id {
			t.Errorf("button %s did not round trip: %v %v", id, got, err)
		}
	}
	for id := range axisNames {
		got, err := ParseAxis(id.String())
		if err != nil || got != id {
			t.Errorf("axis %s did not round trip: %v %v", id, got, err)
		}
	}
	if _, err := ParseButton("select"); err == nil {
		t.Error("expected error for unknown button")
	}
	if _, err := ParseAxis("z"); err == nil {
		t.Error("expected error for unknown axis")
	}
}

func TestTickErrorUnwrap(t *testing.T) {
	err := &TickError{Tick: 3, Wrapped: ErrPortInUse}
	if !errors.Is(err, ErrPortInUse) {
		t.Error("expected TickError to unwrap to ErrPortInUse")
	}
	if err.Error() != "tick 3: robot: port already claimed" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
