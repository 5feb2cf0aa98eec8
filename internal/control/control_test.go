package control

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/teleop/internal/robot"
)

type fakePad struct {
	axes    map[robot.AxisID]int
	buttons map[robot.ButtonID]bool
}

func (f *fakePad) Axis(id robot.AxisID) int       { return f.axes[id] }
func (f *fakePad) Button(id robot.ButtonID) bool { return f.buttons[id] }

var _ = Describe("Mix", func() {
	It("drives straight when there is no turn input", func() {
		Expect(Mix(100, 0, DefaultTurnGain)).To(Equal(robot.DriveCommand{Left: 100, Right: 100}))
	})

	It("rotates in place at reduced power", func() {
		Expect(Mix(0, 100, DefaultTurnGain)).To(Equal(robot.DriveCommand{Left: 80, Right: -80}))
	})

	It("scales the turn axis by four fifths across the axis range", func() {
		for v := -127; v <= 127; v++ {
			for h := -125; h <= 125; h += 5 {
				cmd := Mix(v, h, DefaultTurnGain)
				Expect(cmd.Left).To(Equal(v+h*4/5), "v=%d h=%d", v, h)
				Expect(cmd.Right).To(Equal(v-h*4/5), "v=%d h=%d", v, h)
			}
		}
	})

	It("truncates the scaled turn toward zero", func() {
		Expect(Mix(0, 127, DefaultTurnGain)).To(Equal(robot.DriveCommand{Left: 101, Right: -101}))
		Expect(Mix(0, -127, DefaultTurnGain)).To(Equal(robot.DriveCommand{Left: -101, Right: 101}))
	})

	It("does not clamp values beyond the motor range", func() {
		cmd := Mix(127, 127, DefaultTurnGain)
		Expect(cmd.Left).To(Equal(228))
		Expect(cmd.Right).To(Equal(26))
	})
})

var _ = Describe("PistonCommand", func() {
	DescribeTable("button combinations",
		func(extend, retract bool, want *bool) {
			got := PistonCommand(robot.InputSample{PistonExtend: extend, PistonRetract: retract})
			if want == nil {
				Expect(got).To(BeNil())
				return
			}
			Expect(got).NotTo(BeNil())
			Expect(*got).To(Equal(*want))
		},
		Entry("neither", false, false, (*bool)(nil)),
		Entry("extend only", true, false, ptr(true)),
		Entry("retract only", false, true, ptr(false)),
		Entry("both, retract evaluated last", true, true, ptr(false)),
	)
})

var _ = Describe("IntakePower", func() {
	DescribeTable("button combinations",
		func(in robot.InputSample, want int) {
			Expect(IntakePower(in, DefaultIntakePower)).To(Equal(want))
		},
		Entry("forward", robot.InputSample{IntakeForward: true}, 127),
		Entry("reverse", robot.InputSample{IntakeReverse: true}, -127),
		Entry("neither", robot.InputSample{}, 0),
		Entry("forward wins over reverse", robot.InputSample{IntakeForward: true, IntakeReverse: true}, 127),
		Entry("stop overrides forward", robot.InputSample{IntakeForward: true, IntakeStop: true}, 0),
		Entry("stop overrides reverse", robot.InputSample{IntakeReverse: true, IntakeStop: true}, 0),
		Entry("stop alone", robot.InputSample{IntakeStop: true}, 0),
	)
})

var _ = Describe("Teleop", func() {
	var tc *Teleop

	BeforeEach(func() {
		tc = NewTeleop(DefaultTurnGain, DefaultIntakePower)
	})

	It("keeps the piston level between presses", func() {
		tc.Compute(robot.InputSample{PistonExtend: true})
		Expect(tc.State().PistonExtended).To(BeTrue())

		out := tc.Compute(robot.InputSample{})
		Expect(out.Piston).To(BeNil())
		Expect(tc.State().PistonExtended).To(BeTrue())

		tc.Compute(robot.InputSample{PistonRetract: true})
		Expect(tc.State().PistonExtended).To(BeFalse())
	})

	It("records the last intake power", func() {
		tc.Compute(robot.InputSample{IntakeReverse: true})
		Expect(tc.State().IntakePower).To(Equal(-127))

		tc.Compute(robot.InputSample{})
		Expect(tc.State().IntakePower).To(Equal(0))
	})

	It("produces exactly one drive command per tick", func() {
		out := tc.Compute(robot.InputSample{LeftY: 50, RightX: -50})
		Expect(out.Drive.Powers()).To(Equal([6]int{10, 10, 10, 90, 90, 90}))
	})

	It("supports live tuning", func() {
		Expect(tc.SetParam("turn_gain", 1.0)).To(Succeed())
		Expect(tc.SetParam("intake_power", 90)).To(Succeed())
		Expect(tc.GetParams()).To(HaveKeyWithValue("turn_gain", 1.0))
		Expect(tc.IntakeSpeed).To(Equal(90))
		Expect(tc.Compute(robot.InputSample{RightX: 60}).Drive).To(Equal(robot.DriveCommand{Left: 60, Right: -60}))
	})

	DescribeTable("rejects out-of-range parameters",
		func(name string, value float64) {
			Expect(tc.SetParam(name, value)).To(MatchError(robot.ErrInvalidConfig))
			Expect(tc.TurnGain).To(Equal(DefaultTurnGain))
			Expect(tc.IntakeSpeed).To(Equal(DefaultIntakePower))
		},
		Entry("negative intake power", "intake_power", -127.0),
		Entry("zero intake power", "intake_power", 0.0),
		Entry("fractional intake power", "intake_power", 0.5),
		Entry("intake power above motor range", "intake_power", 400.0),
		Entry("negative turn gain", "turn_gain", -1.0),
		Entry("zero turn gain", "turn_gain", 0.0),
		Entry("turn gain above range", "turn_gain", 5.0),
		Entry("unknown parameter", "wheel_size", 1.0),
	)

	It("keeps the intake forward button driving forward after tuning", func() {
		Expect(tc.SetParam("intake_power", -127)).NotTo(Succeed())
		Expect(tc.Compute(robot.InputSample{IntakeForward: true}).Intake).To(Equal(127))
	})

	It("resets to retracted and stopped", func() {
		tc.Compute(robot.InputSample{PistonExtend: true, IntakeForward: true})
		tc.Reset()
		Expect(tc.State()).To(Equal(robot.ActuatorState{}))
	})
})

var _ = Describe("Bindings", func() {
	It("samples the default controller layout", func() {
		pad := &fakePad{
			axes: map[robot.AxisID]int{robot.AxisLeftY: 64, robot.AxisRightX: -32, robot.AxisLeftX: 99},
			buttons: map[robot.ButtonID]bool{
				robot.ButtonL1: true,
				robot.ButtonR2: true,
				robot.ButtonB:  true,
			},
		}
		Expect(DefaultBindings().Sample(pad)).To(Equal(robot.InputSample{
			LeftY:         64,
			RightX:        -32,
			PistonExtend:  true,
			IntakeReverse: true,
			IntakeStop:    true,
		}))
	})
})

func ptr(b bool) *bool { return &b }
