package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hexaflex/intcode/cpu"
)

// Config defines program configuration.
type Config struct {
	Program    string // Path to the program image to load.
	Resume     string // Snapshot to resume instead of loading Program.
	Save       string // Path to write a snapshot to when the program stops.
	Input      string // File to read program input from. Stdin if empty.
	Reserve    int    // Number of zero cells appended to memory.
	ASCII      bool   // Exchange text rather than numbers?
	PrintTrace bool   // Log instruction trace data?
	TraceFile  string // Path to write JSON log records to.
	Journal    bool   // Also log to the systemd journal?
	Disasm     bool   // Print a disassembly of the program and exit.
	Debug      bool   // Log debug messages.
	LogLevel   string // Minimum level of logged messages.
	MemLimit   int64  // Largest memory extent in cells. Zero for no limit.
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.Reserve = 2000
	c.LogLevel = "info"
	c.MemLimit = cpu.MemoryLimit

	flag.Usage = func() {
		fmt.Printf("%s [options] <program file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.StringVar(&c.Resume, "resume", c.Resume, "Resume execution from the given snapshot file. The program file may be omitted.")
	flag.StringVar(&c.Save, "save", c.Save, "Write a snapshot to this file when the program halts or is interrupted.")
	flag.StringVar(&c.Input, "input", c.Input, "Read program input from this file instead of stdin.")
	flag.IntVar(&c.Reserve, "reserve", c.Reserve, "Number of zero-valued memory cells to append to the program.")
	flag.BoolVar(&c.ASCII, "ascii", c.ASCII, "Exchange ASCII text with the program instead of one integer per line.")
	flag.BoolVar(&c.PrintTrace, "trace", c.PrintTrace, "Log every executed instruction.")
	flag.StringVar(&c.TraceFile, "trace-file", c.TraceFile, "Write JSON log records to this file.")
	flag.BoolVar(&c.Journal, "journal", c.Journal, "Send log records to the systemd journal.")
	flag.BoolVar(&c.Disasm, "disasm", c.Disasm, "Print a disassembly of the program, or of a -resume snapshot's program, and exit.")
	flag.BoolVar(&c.Debug, "debug", c.Debug, "Log debug messages. Same as -log-level debug.")
	flag.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Minimum level of logged messages: debug, info, warn or error.")
	flag.Int64Var(&c.MemLimit, "memory-limit", c.MemLimit, "Largest number of memory cells a program may address. Zero removes the limit.")
	version := flag.Bool("version", false, "Display version information.")
	flag.Parse()

	if *version {
		fmt.Println(Version())
		os.Exit(0)
	}

	if flag.NArg() == 0 && c.Resume == "" {
		flag.Usage()
		os.Exit(1)
	}

	c.Program = flag.Arg(0)
	c.Debug = c.Debug || c.PrintTrace
	if c.Debug {
		c.LogLevel = "debug"
	}
	return &c
}
