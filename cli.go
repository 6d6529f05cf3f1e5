package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"sidplay/emu/log"
)

type mode byte

const (
	playMode    mode = iota // Play a sid file in real time
	dumpMode                // Dump SID register writes
	infosMode               // Show sid file infos
	versionMode             // Show sidplay version
)

type (
	CLI struct {
		Play    Play    `cmd:"" help:"Play a sid file in real time."`
		Dump    Dump    `cmd:"" help:"Run a sid file offline and dump SID register writes."`
		Infos   Infos   `cmd:"" help:"Show sid file infos."`
		Version Version `cmd:"" help:"Show sidplay version."`

		Log     logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
		LogJSON bool       `name:"log-json" help:"Write logs as JSON lines."`
		Config  string     `name:"config" help:"${config_help}" type:"path" placeholder:"FILE"`

		mode mode
	}

	Play struct {
		SidPath string `arg:"" name:"/path/to/sid" type:"existingfile"`

		Song   int      `name:"song" help:"${song_help}"`
		Rate   int      `name:"rate" help:"${rate_help}" placeholder:"HZ"`
		Frames uint64   `name:"frames" help:"Stop after N frames, 0 means never."`
		Trace  *outfile `name:"trace" help:"Write CPU trace log." placeholder:"FILE|stdout|stderr"`
		Regs   bool     `name:"regs" help:"Print SID registers after each frame."`
		JSON   bool     `name:"json" help:"Print SID register writes as JSON lines."`
	}

	Dump struct {
		SidPath string `arg:"" name:"/path/to/sid" type:"existingfile"`

		Song   int      `name:"song" help:"${song_help}"`
		Frames uint64   `name:"frames" help:"Number of frames to run, 0 uses the config value."`
		Trace  *outfile `name:"trace" help:"Write CPU trace log." placeholder:"FILE|stdout|stderr"`
		JSON   bool     `name:"json" help:"Dump register writes as JSON lines instead of a register table."`
	}

	Infos struct {
		SidPaths []string `arg:"" name:"/path/to/sid" type:"existingfile"`
	}

	Version struct{}
)

var vars = kong.Vars{
	"song_help":   "Song to play, starting at 1. Defaults to the start song of the file.",
	"rate_help":   "Play routine calls per second. Defaults to the rate of the song.",
	"config_help": "Config file. Defaults to config.toml in the user config directory.",
	"log_help":    "Enable logging for specified modules.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("sidplay"),
		kong.Description("Commodore 64 sid music player."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	cmd, _, _ := strings.Cut(ctx.Command(), " ")
	switch cmd {
	case "play":
		cfg.mode = playMode
	case "dump":
		cfg.mode = dumpMode
	case "infos":
		cfg.mode = infosMode
	case "version":
		cfg.mode = versionMode
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if ctx.Command() == "" {
		loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
		var strs []string
		for _, m := range log.ModuleNames() {
			strs = append(strs, "    - "+m)
		}

		fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	}
	if strings.HasPrefix(ctx.Command(), "play") {
		fmt.Fprint(os.Stderr, `
Keys (when stdin is a terminal):
  n, +                       Next song.
  p, -                       Previous song.
  space                      Pause/resume.
  q, esc, ctrl-c             Quit.
`)
	}

	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	s, ok := tok.Value.(string)
	if !ok {
		return fmt.Errorf("expected a list of log modules, got %v", tok.Value)
	}
	return applyLogModules(strings.Split(s, ","))
}

// applyLogModules enables debug logs of the given modules. "all" enables all
// of them, "no" disables logging altogether.
func applyLogModules(names []string) error {
	var (
		lm      log.ModuleMask
		nolog   bool
		allLogs bool
	)

	for _, v := range names {
		switch v {
		case "":
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return fmt.Errorf("unknown log module %s", v)
			}
			lm |= mod.Mask()
		}
	}

	if nolog {
		if allLogs {
			return fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if lm != 0 {
			return fmt.Errorf("cannot combine 'no' with other log modules")
		}
		log.Disable()
		return nil
	}

	if allLogs {
		lm = log.ModuleMaskAll
	}

	log.EnableDebugModules(lm)
	return nil
}

type outfile struct {
	w     io.Writer
	name  string
	close func() error
}

// Decode decodes FILE|stdout|stderr into an io.WriteCloser
// that writes to that file.
//
// Implements kong.MapperValue interface.
func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	f.name = tok.Value.(string)
	f.close = func() error { return nil }

	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = fd
		f.close = fd.Close
	}
	return nil
}

func (f *outfile) String() string              { return f.name }
func (f *outfile) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *outfile) Close() error                { return f.close() }

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
