package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/hexaflex/intcode/cpu"
	"github.com/hexaflex/intcode/image"
)

// Config defines program configuration.
// It can be loaded from a TOML file, after which command line flags
// which were explicitly set take precedence.
type Config struct {
	Program  string  `toml:"program"`      // Path to the program image every node runs.
	Topology string  `toml:"topology"`     // Network wiring: linear or ring.
	Phases   []int64 `toml:"phases"`       // Phase setting per node.
	Signal   int64   `toml:"signal"`       // Value fed into the first node.
	Reserve  int     `toml:"reserve"`      // Number of zero cells appended to each node's memory.
	MemLimit int64   `toml:"memory_limit"` // Largest memory extent in cells. Zero for no limit.
	Search   bool    `toml:"search"`       // Try every ordering of Phases.
	Parallel bool    `toml:"parallel"`     // Run every node in its own goroutine.
	Debug    bool    `toml:"debug"`        // Log debug messages.
	LogLevel string  `toml:"log_level"`    // Minimum level of logged messages.
	Journal  bool    `toml:"journal"`      // Also log to the systemd journal.
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	c, err := parseConfig(os.Args[0], os.Args[1:], os.Stdout)
	if err == flag.ErrHelp {
		os.Exit(0)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if c == nil {
		fmt.Println(Version())
		os.Exit(0)
	}

	return c
}

// parseConfig builds the configuration from the given arguments.
// Returns a nil config without error if version information was requested.
func parseConfig(name string, args []string, usage io.Writer) (*Config, error) {
	var c Config
	c.Topology = "ring"
	c.Phases = []int64{5, 6, 7, 8, 9}
	c.MemLimit = cpu.MemoryLimit
	c.LogLevel = "info"

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(usage)
	fs.Usage = func() {
		fmt.Fprintf(usage, "%s [options] [program file]\n", name)
		fs.PrintDefaults()
	}

	var phases string
	configFile := fs.String("config", "", "Load the network description from this TOML file.")
	fs.StringVar(&c.Topology, "topology", c.Topology, "Network wiring: linear or ring.")
	fs.StringVar(&phases, "phases", "", "Comma-separated phase settings, one per node. (default 5,6,7,8,9)")
	fs.Int64Var(&c.Signal, "signal", c.Signal, "Initial input signal.")
	fs.IntVar(&c.Reserve, "reserve", c.Reserve, "Number of zero-valued memory cells to append to each node's program.")
	fs.BoolVar(&c.Search, "search", c.Search, "Find the ordering of the phase settings which yields the strongest signal.")
	fs.BoolVar(&c.Parallel, "parallel", c.Parallel, "Run every node in its own goroutine.")
	fs.Int64Var(&c.MemLimit, "memory-limit", c.MemLimit, "Largest number of memory cells a node may address. Zero removes the limit.")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "Log debug messages. Same as -log-level debug.")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Minimum level of logged messages: debug, info, warn or error.")
	fs.BoolVar(&c.Journal, "journal", c.Journal, "Send log records to the systemd journal.")
	version := fs.Bool("version", false, "Display version information.")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *version {
		return nil, nil
	}

	if *configFile != "" {
		if err := c.load(*configFile); err != nil {
			return nil, err
		}

		// Reapply whatever the command line set explicitly.
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
	}

	if phases != "" {
		v, err := image.ParseString(phases)
		if err != nil {
			return nil, errors.Wrapf(err, "-phases")
		}
		c.Phases = v
	}

	if fs.NArg() > 0 {
		c.Program = fs.Arg(0)
	}

	if c.Debug {
		c.LogLevel = "debug"
	}

	if c.Program == "" {
		fs.Usage()
		return nil, errors.New("no program file given")
	}

	return &c, nil
}

// load reads the TOML network description in file into c. A relative
// program path is taken relative to the file's directory.
func (c *Config) load(file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	if err := toml.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "%s", file)
	}

	if c.Program != "" && !filepath.IsAbs(c.Program) {
		c.Program = filepath.Join(filepath.Dir(file), c.Program)
	}

	return nil
}
