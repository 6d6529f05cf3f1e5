package log

import (
	"fmt"

	"gopkg.in/Sirupsen/logrus.v0"
)

type Fields logrus.Fields

// Like a logrus.Entry, but is nullable. This allows us to selectively disable
// logging while also removing all code overhead associated with it
type Entry struct {
	mod        Module
	lazyfields [8]func() Fields
}

func (entry Entry) log() *logrus.Entry {
	final := logrus.StandardLogger().WithField("_mod", modNames[entry.mod])
	for _, lf := range entry.lazyfields {
		if lf != nil {
			final = final.WithFields(logrus.Fields(lf()))
		}
	}

	fields := make(logrus.Fields, 8)

	var z EntryZ
	addContexts(&z)
	for i := range z.zfbuf[:z.zfidx] {
		fields[z.zfbuf[i].Key] = z.zfbuf[i].Value()
	}
	return final.WithFields(fields)
}

func (entry Entry) WithFields(fields Fields) Entry {
	return entry.withDelayedFields(func() Fields { return fields })
}

func (entry Entry) WithField(key string, value any) Entry {
	return entry.withDelayedFields(func() Fields {
		return Fields{
			key: value,
		}
	})
}

func (entry Entry) withDelayedFields(getfields func() Fields) Entry {
	for idx := range entry.lazyfields {
		if entry.lazyfields[idx] == nil {
			entry.lazyfields[idx] = getfields
			return entry
		}
	}
	return entry
}

// emit routes printf-style entries either to logrus or, in JSON mode, through
// the EntryZ encoder so that both families share one output format.
func (entry Entry) emit(lvl Level, format string, args ...any) {
	if !entry.mod.Enabled(lvl) {
		return
	}
	if jsonOutput() {
		z := NewEntryZ()
		z.lvl = lvl
		z.mod = entry.mod
		z.msg = fmt.Sprintf(format, args...)
		for _, lf := range entry.lazyfields {
			if lf == nil {
				continue
			}
			for k, v := range lf() {
				z.add(ZField{Type: FieldTypeString, Key: k, String: fmt.Sprint(v)})
			}
		}
		z.End()
		return
	}

	e := entry.log()
	switch lvl {
	case DebugLevel:
		e.Debugf(format, args...)
	case InfoLevel:
		e.Infof(format, args...)
	case WarnLevel:
		e.Warnf(format, args...)
	case ErrorLevel:
		e.Errorf(format, args...)
	case FatalLevel:
		e.Fatalf(format, args...)
	default:
		e.Panicf(format, args...)
	}
}

func (entry Entry) Debugf(format string, args ...any) { entry.emit(DebugLevel, format, args...) }
func (entry Entry) Infof(format string, args ...any)  { entry.emit(InfoLevel, format, args...) }
func (entry Entry) Warnf(format string, args ...any)  { entry.emit(WarnLevel, format, args...) }
func (entry Entry) Errorf(format string, args ...any) { entry.emit(ErrorLevel, format, args...) }
func (entry Entry) Fatalf(format string, args ...any) { entry.emit(FatalLevel, format, args...) }
