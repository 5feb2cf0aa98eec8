package storage

import (
	"strconv"
	"sync"
	"time"

	"github.com/san-kum/teleop/internal/robot"
)

// Piston values in a TickRecord.
const (
	PistonNone    = -1
	PistonRetract = 0
	PistonExtend  = 1
)

// TickRecord is one row of ticks.csv.
type TickRecord struct {
	Tick   int
	Ms     int
	LeftY  int
	RightX int
	Left   int
	Right  int
	Intake int
	Piston int
}

func (r TickRecord) row() []string {
	return []string{
		strconv.Itoa(r.Tick),
		strconv.Itoa(r.Ms),
		strconv.Itoa(r.LeftY),
		strconv.Itoa(r.RightX),
		strconv.Itoa(r.Left),
		strconv.Itoa(r.Right),
		strconv.Itoa(r.Intake),
		strconv.Itoa(r.Piston),
	}
}

// Recorder is a loop observer that keeps every tick in memory.
type Recorder struct {
	mu    sync.Mutex
	start time.Time
	ticks []TickRecord
}

func NewRecorder() *Recorder {
	return &Recorder{ticks: make([]TickRecord, 0, 256)}
}

func (r *Recorder) OnTick(tick int, in robot.InputSample, out robot.TickOutput, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.start.IsZero() {
		r.start = at
	}
	piston := PistonNone
	if out.Piston != nil {
		piston = PistonRetract
		if *out.Piston {
			piston = PistonExtend
		}
	}
	r.ticks = append(r.ticks, TickRecord{
		Tick:   tick,
		Ms:     int(at.Sub(r.start) / time.Millisecond),
		LeftY:  in.LeftY,
		RightX: in.RightX,
		Left:   out.Drive.Left,
		Right:  out.Drive.Right,
		Intake: out.Intake,
		Piston: piston,
	})
}

// Ticks returns a copy of the recorded ticks.
func (r *Recorder) Ticks() []TickRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]TickRecord(nil), r.ticks...)
}
