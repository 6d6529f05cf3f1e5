package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-faster/jx"
	"gopkg.in/Sirupsen/logrus.v0"
)

// EntryZ is a structured log entry. A nil *EntryZ is valid and discards
// everything, so disabled call sites cost a single nil check per field.
//
//	log.ModCPU.DebugZ("illegal opcode").Hex8("op", op).Hex16("pc", pc).End()
type EntryZ struct {
	lvl Level
	msg string
	mod Module

	zfbuf [16]ZField
	zfidx int
}

var entryPool = sync.Pool{
	New: func() any { return new(EntryZ) },
}

func NewEntryZ() *EntryZ {
	z := entryPool.Get().(*EntryZ)
	z.zfidx = 0
	return z
}

func (z *EntryZ) add(f ZField) *EntryZ {
	if z == nil {
		return nil
	}
	if z.zfidx < len(z.zfbuf) {
		z.zfbuf[z.zfidx] = f
		z.zfidx++
	}
	return z
}

func (z *EntryZ) String(key, val string) *EntryZ {
	return z.add(ZField{Type: FieldTypeString, Key: key, String: val})
}

func (z *EntryZ) Bool(key string, val bool) *EntryZ {
	return z.add(ZField{Type: FieldTypeBool, Key: key, Boolean: val})
}

func (z *EntryZ) Hex8(key string, val uint8) *EntryZ {
	return z.add(ZField{Type: FieldTypeHex8, Key: key, Integer: uint64(val)})
}

func (z *EntryZ) Hex16(key string, val uint16) *EntryZ {
	return z.add(ZField{Type: FieldTypeHex16, Key: key, Integer: uint64(val)})
}

func (z *EntryZ) Hex32(key string, val uint32) *EntryZ {
	return z.add(ZField{Type: FieldTypeHex32, Key: key, Integer: uint64(val)})
}

func (z *EntryZ) Int(key string, val int) *EntryZ {
	return z.add(ZField{Type: FieldTypeInt, Key: key, Integer: uint64(val)})
}

func (z *EntryZ) Uint64(key string, val uint64) *EntryZ {
	return z.add(ZField{Type: FieldTypeUint, Key: key, Integer: val})
}

func (z *EntryZ) Duration(key string, val time.Duration) *EntryZ {
	return z.add(ZField{Type: FieldTypeDuration, Key: key, Duration: val})
}

func (z *EntryZ) Error(key string, err error) *EntryZ {
	return z.add(ZField{Type: FieldTypeError, Key: key, Error: err})
}

func (z *EntryZ) Stringer(key string, val fmt.Stringer) *EntryZ {
	return z.add(ZField{Type: FieldTypeStringer, Key: key, Interface: val})
}

func (z *EntryZ) Blob(key string, val []byte) *EntryZ {
	return z.add(ZField{Type: FieldTypeBlob, Key: key, Blob: val})
}

// End emits the entry and releases it. The entry must not be used afterwards.
func (z *EntryZ) End() {
	if z == nil {
		return
	}
	addContexts(z)

	if jsonOutput() {
		z.writeJSON()
	} else {
		z.writeText()
	}

	lvl, msg := z.lvl, z.msg
	entryPool.Put(z)

	switch lvl {
	case FatalLevel:
		os.Exit(1)
	case PanicLevel:
		panic(msg)
	}
}

func (z *EntryZ) writeText() {
	fields := make(logrus.Fields, z.zfidx+1)
	fields["_mod"] = modNames[z.mod]
	for i := range z.zfbuf[:z.zfidx] {
		fields[z.zfbuf[i].Key] = z.zfbuf[i].Value()
	}
	e := logrus.StandardLogger().WithFields(fields)
	switch z.lvl {
	case DebugLevel:
		e.Debug(z.msg)
	case InfoLevel:
		e.Info(z.msg)
	case WarnLevel:
		e.Warn(z.msg)
	default:
		// Fatal and panic are handled by End, logrus must not exit first.
		e.Error(z.msg)
	}
}

func (z *EntryZ) writeJSON() {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	e.Obj(func(e *jx.Encoder) {
		e.Field("time", func(e *jx.Encoder) { e.Str(time.Now().Format(time.RFC3339Nano)) })
		e.Field("level", func(e *jx.Encoder) { e.Str(z.lvl.String()) })
		e.Field("mod", func(e *jx.Encoder) { e.Str(modNames[z.mod]) })
		e.Field("msg", func(e *jx.Encoder) { e.Str(z.msg) })
		for i := range z.zfbuf[:z.zfidx] {
			f := &z.zfbuf[i]
			e.Field(f.Key, f.encode)
		}
	})

	jsonMu.Lock()
	defer jsonMu.Unlock()
	buf := append(e.Bytes(), '\n')
	jsonOut.Write(buf)
}

var (
	jsonEnabled atomic.Bool
	jsonMu      sync.Mutex
	jsonOut     io.Writer = os.Stderr
)

func jsonOutput() bool { return jsonEnabled.Load() }

// SetJSON switches every module to JSON lines output.
func SetJSON(enabled bool) {
	jsonEnabled.Store(enabled)
}

// SetOutput sets the destination of both text and JSON output.
func SetOutput(w io.Writer) {
	jsonMu.Lock()
	jsonOut = w
	jsonMu.Unlock()
	logrus.SetOutput(w)
}
