package sid

import (
	"io"

	"github.com/go-faster/jx"
)

// JSONWriter is a Sink writing each register write as a JSON object on its
// own line:
//
//	{"frame":3,"cycle":10234,"reg":24,"name":"ModeVol","val":15}
type JSONWriter struct {
	w     io.Writer
	clock Clock
	enc   jx.Encoder
	err   error
}

// NewJSONWriter returns a JSONWriter writing to w, timestamping events with
// clock, which may be nil.
func NewJSONWriter(w io.Writer, clock Clock) *JSONWriter {
	return &JSONWriter{w: w, clock: clock}
}

func (jw *JSONWriter) WriteReg(reg, val uint8) {
	ev := Event{Reg: reg, Val: val}
	if jw.clock != nil {
		ev.Frame, ev.Cycle = jw.clock.Now()
	}
	jw.WriteEvent(ev)
}

// WriteEvent writes ev. After a write error, all writes are ignored and Err
// reports it.
func (jw *JSONWriter) WriteEvent(ev Event) {
	if jw.err != nil {
		return
	}

	jw.enc.Reset()
	encodeEvent(&jw.enc, ev)
	jw.enc.RawStr("\n")
	_, jw.err = jw.w.Write(jw.enc.Bytes())
}

// Err returns the first error encountered while writing.
func (jw *JSONWriter) Err() error {
	return jw.err
}

func encodeEvent(e *jx.Encoder, ev Event) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("frame", func(e *jx.Encoder) { e.UInt64(ev.Frame) })
		e.Field("cycle", func(e *jx.Encoder) { e.UInt64(ev.Cycle) })
		e.Field("reg", func(e *jx.Encoder) { e.UInt8(ev.Reg) })
		e.Field("name", func(e *jx.Encoder) { e.Str(RegName(ev.Reg)) })
		e.Field("val", func(e *jx.Encoder) { e.UInt8(ev.Val) })
	})
}

// DecodeEvent parses an event encoded by JSONWriter.
func DecodeEvent(data []byte) (Event, error) {
	var ev Event
	d := jx.DecodeBytes(data)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "frame":
			ev.Frame, err = d.UInt64()
		case "cycle":
			ev.Cycle, err = d.UInt64()
		case "reg":
			ev.Reg, err = d.UInt8()
		case "val":
			ev.Val, err = d.UInt8()
		default:
			err = d.Skip()
		}
		return err
	})
	return ev, err
}
