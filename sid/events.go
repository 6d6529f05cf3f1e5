package sid

// A Clock locates register writes in time.
type Clock interface {
	// Now returns the current frame (play routine invocation) and the CPU
	// cycle count.
	Now() (frame, cycle uint64)
}

// Event is a timestamped register write.
type Event struct {
	Frame uint64
	Cycle uint64
	Reg   uint8
	Val   uint8
}

// Recorder is a Sink that keeps all the register writes it receives.
type Recorder struct {
	clock  Clock
	events []Event
}

// NewRecorder returns a Recorder timestamping events with clock, which may be
// nil.
func NewRecorder(clock Clock) *Recorder {
	return &Recorder{clock: clock}
}

func (r *Recorder) WriteReg(reg, val uint8) {
	ev := Event{Reg: reg, Val: val}
	if r.clock != nil {
		ev.Frame, ev.Cycle = r.clock.Now()
	}
	r.events = append(r.events, ev)
}

// Events returns the recorded events.
func (r *Recorder) Events() []Event {
	return r.events
}

// Reset forgets all recorded events.
func (r *Recorder) Reset() {
	r.events = r.events[:0]
}
