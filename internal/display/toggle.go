package display

const (
	ToggleLine    = 2
	ToggleMessage = "I was pressed!"
	GreetingLine  = 1
	Greeting      = "Hello PROS User!"
)

// CenterToggle shows a message on line 2 on every other press.
type CenterToggle struct {
	lcd     *LCD
	pressed bool
}

func NewCenterToggle(lcd *LCD) *CenterToggle {
	return &CenterToggle{lcd: lcd}
}

func (t *CenterToggle) OnPress() {
	t.pressed = !t.pressed
	if t.pressed {
		t.lcd.SetText(ToggleLine, ToggleMessage)
	} else {
		t.lcd.ClearLine(ToggleLine)
	}
}

func (t *CenterToggle) Pressed() bool { return t.pressed }

// Init writes the greeting and wires a CenterToggle to the center button.
func Init(lcd *LCD) *CenterToggle {
	lcd.SetText(GreetingLine, Greeting)
	t := NewCenterToggle(lcd)
	lcd.RegisterButton(ButtonCenter, t.OnPress)
	return t
}
