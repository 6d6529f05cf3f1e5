package log

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/go-faster/jx"
)

type FieldType int

const (
	FieldTypeUnknown FieldType = iota
	FieldTypeBool
	FieldTypeString
	FieldTypeHex8
	FieldTypeHex16
	FieldTypeHex32
	FieldTypeInt
	FieldTypeUint
	FieldTypeError
	FieldTypeDuration
	FieldTypeStringer
	FieldTypeBlob
)

type ZField struct {
	Type FieldType
	Key  string

	// Possible values. Only one of these is populated, depending on Type
	String    string
	Integer   uint64
	Duration  time.Duration
	Error     error
	Interface any
	Boolean   bool
	Blob      []byte
}

func (f *ZField) Value() string {
	switch f.Type {
	case FieldTypeBool:
		return strconv.FormatBool(f.Boolean)
	case FieldTypeString:
		return f.String
	case FieldTypeUint:
		return strconv.FormatUint(f.Integer, 10)
	case FieldTypeInt:
		return strconv.FormatInt(int64(f.Integer), 10)
	case FieldTypeHex8:
		return fmt.Sprintf("%02x", uint(f.Integer))
	case FieldTypeHex16:
		return fmt.Sprintf("%04x", uint(f.Integer))
	case FieldTypeHex32:
		return fmt.Sprintf("%08x", uint(f.Integer))
	case FieldTypeError:
		if f.Error == nil {
			return "<nil>"
		}
		return f.Error.Error()
	case FieldTypeDuration:
		return f.Duration.String()
	case FieldTypeStringer:
		return f.Interface.(fmt.Stringer).String()
	case FieldTypeBlob:
		return hex.Dump(f.Blob)
	}
	return ""
}

// encode writes the field value as JSON. Numbers stay numbers, except hex
// fields which keep their textual form.
func (f *ZField) encode(e *jx.Encoder) {
	switch f.Type {
	case FieldTypeBool:
		e.Bool(f.Boolean)
	case FieldTypeUint:
		e.UInt64(f.Integer)
	case FieldTypeInt:
		e.Int64(int64(f.Integer))
	case FieldTypeDuration:
		e.Int64(int64(f.Duration))
	case FieldTypeBlob:
		e.Str(hex.EncodeToString(f.Blob))
	default:
		e.Str(f.Value())
	}
}
