package log

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/go-faster/jx"
)

func captureJSON(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	SetJSON(true)
	SetOutput(&buf)
	t.Cleanup(func() {
		SetJSON(false)
		SetOutput(os.Stderr)
		DisableDebugModules(ModuleMaskAll)
	})
	return &buf
}

// decodeLine returns the raw JSON values of the top-level fields of line.
func decodeLine(t *testing.T, line []byte) map[string]string {
	t.Helper()

	fields := make(map[string]string)
	d := jx.DecodeBytes(line)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		raw, err := d.Raw()
		fields[key] = raw.String()
		return err
	})
	if err != nil {
		t.Fatalf("invalid json line %q: %v", line, err)
	}
	return fields
}

type pcContext struct{ pc uint16 }

func (c *pcContext) AddLogContext(z *EntryZ) { z.Hex16("pc", c.pc) }

func TestEntryZJSON(t *testing.T) {
	buf := captureJSON(t)
	EnableDebugModules(ModCPU.Mask())

	ctx := &pcContext{pc: 0x1003}
	AddContext(ctx)
	ModCPU.DebugZ("illegal opcode").
		Hex8("op", 0x02).
		Int("count", -1).
		Uint64("frame", 7).
		Bool("fatal", false).
		String("name", "KIL").
		End()
	RemoveContext(ctx)

	fields := decodeLine(t, bytes.TrimSpace(buf.Bytes()))
	want := map[string]string{
		"level": `"debug"`,
		"mod":   `"cpu"`,
		"msg":   `"illegal opcode"`,
		"op":    `"02"`,
		"count": `-1`,
		"frame": `7`,
		"fatal": `false`,
		"name":  `"KIL"`,
		"pc":    `"1003"`,
	}
	for k, v := range want {
		if fields[k] != v {
			t.Errorf("field %q = %s, want %s", k, fields[k], v)
		}
	}
	if _, ok := fields["time"]; !ok {
		t.Errorf("missing time field")
	}

	// The context is gone.
	buf.Reset()
	ModCPU.DebugZ("no context").End()
	if strings.Contains(buf.String(), `"pc"`) {
		t.Errorf("context still applied after RemoveContext: %s", buf.String())
	}
}

func TestModuleMask(t *testing.T) {
	buf := captureJSON(t)

	if ModSID.DebugZ("debug") != nil {
		t.Fatalf("DebugZ returned an entry for a module not in debug mask")
	}
	ModSID.DebugZ("debug").Hex8("reg", 1).End()
	if buf.Len() != 0 {
		t.Errorf("got output for a disabled module: %s", buf.String())
	}

	ModSID.WarnZ("warn").End()
	if !strings.Contains(buf.String(), `"msg":"warn"`) {
		t.Errorf("warning not emitted: %s", buf.String())
	}

	buf.Reset()
	EnableDebugModules(ModSID.Mask())
	ModSID.DebugZ("debug").End()
	ModPSID.DebugZ("other").End()
	if got := strings.Count(buf.String(), "\n"); got != 1 {
		t.Errorf("got %d lines, want 1:\n%s", got, buf.String())
	}
}

func TestEntryPrintfJSON(t *testing.T) {
	buf := captureJSON(t)

	ModPlayer.WithField("song", 2).Warnf("song %d of %d", 2, 5)
	fields := decodeLine(t, bytes.TrimSpace(buf.Bytes()))
	if got, want := fields["msg"], `"song 2 of 5"`; got != want {
		t.Errorf("msg = %s, want %s", got, want)
	}
	if got, want := fields["song"], `"2"`; got != want {
		t.Errorf("song = %s, want %s", got, want)
	}
}

func TestModuleByName(t *testing.T) {
	for _, name := range ModuleNames() {
		mod, ok := ModuleByName(name)
		if !ok {
			t.Errorf("ModuleByName(%q) not found", name)
			continue
		}
		if mod.String() != name {
			t.Errorf("ModuleByName(%q).String() = %q", name, mod.String())
		}
	}
	if _, ok := ModuleByName("nope"); ok {
		t.Errorf("ModuleByName(nope) found")
	}
}
