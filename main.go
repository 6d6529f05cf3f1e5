package main

import (
	"bufio"
	"fmt"
	"os"
	"runtime/debug"

	"sidplay/emu"
	"sidplay/emu/log"
)

func main() {
	cli := parseArgs(os.Args[1:])

	if cli.mode == versionMode {
		printVersion()
		return
	}

	cfg, err := emu.LoadConfigOrDefault(cli.Config)
	checkf(err, "failed to load config")
	checkf(applyLogModules(cfg.Log.Modules), "invalid log modules in config")
	log.SetJSON(cli.LogJSON || cfg.Log.JSON)

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	switch cli.mode {
	case playMode:
		err = playMain(cli.Play, cfg, out)
	case dumpMode:
		err = dumpMain(cli.Dump, cfg, out)
	case infosMode:
		err = infosMain(cli.Infos.SidPaths, out)
	}
	if err != nil {
		out.Flush()
		fatalf("%s", err)
	}
}

func printVersion() {
	version := "(devel)"
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		version = bi.Main.Version
	}
	fmt.Println("sidplay", version)
}
