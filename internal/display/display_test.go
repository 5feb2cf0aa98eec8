package display

import (
	"strings"
	"testing"
)

func TestSetText(t *testing.T) {
	lcd := New()
	if err := lcd.SetText(0, "ready"); err != nil {
		t.Fatalf("set text failed: %v", err)
	}
	if err := lcd.SetText(Lines, "oops"); err == nil {
		t.Error("expected error for out of range line")
	}
	if err := lcd.ClearLine(-1); err == nil {
		t.Error("expected error for negative line")
	}
	if lcd.Lines()[0] != "ready" {
		t.Errorf("expected line 0 'ready', got %q", lcd.Lines()[0])
	}
}

func TestPressWithoutCallback(t *testing.T) {
	if New().Press(ButtonLeft) {
		t.Error("press without callback should report false")
	}
}

func TestCenterToggle(t *testing.T) {
	lcd := New()
	toggle := Init(lcd)

	if lcd.Lines()[GreetingLine] != Greeting {
		t.Errorf("expected greeting, got %q", lcd.Lines()[GreetingLine])
	}

	if !lcd.Press(ButtonCenter) {
		t.Fatal("expected center callback to run")
	}
	if lcd.Lines()[ToggleLine] != ToggleMessage || !toggle.Pressed() {
		t.Error("expected message after first press")
	}

	lcd.Press(ButtonCenter)
	if lcd.Lines()[ToggleLine] != "" || toggle.Pressed() {
		t.Error("expected line cleared after second press")
	}

	lcd.Press(ButtonCenter)
	if lcd.Lines()[ToggleLine] != ToggleMessage {
		t.Error("expected message after third press")
	}
}

func TestTogglesAreIndependent(t *testing.T) {
	a, b := New(), New()
	Init(a)
	Init(b)
	a.Press(ButtonCenter)
	if b.Lines()[ToggleLine] != "" {
		t.Error("toggle state must not be shared between displays")
	}
}

func TestRender(t *testing.T) {
	lcd := New()
	Init(lcd)
	out := lcd.Render()
	if !strings.Contains(out, Greeting) {
		t.Errorf("expected greeting in render, got %q", out)
	}
}
