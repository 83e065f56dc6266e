package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/hexaflex/intcode/arch"
	"github.com/hexaflex/intcode/cpu"
	"github.com/hexaflex/intcode/devices"
	"github.com/hexaflex/intcode/devices/ascii"
	"github.com/hexaflex/intcode/devices/stream"
	"github.com/hexaflex/intcode/image"
)

// App defines application context.
type App struct {
	config *Config        // Application configuration.
	log    *slog.Logger   // Destination for status and trace records.
	cpu    *CPUController // VM with program to be run.
	stdin  io.Reader      // Program input.
	stdout io.Writer      // Program output.
}

// NewApp creates a new application instance using the given configuration.
func NewApp(config *Config, log *slog.Logger) *App {
	return &App{
		config: config,
		log:    log,
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}
}

// Run runs the application and does not return until the program has
// stopped or ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.log.Debug(Version())

	c, err := a.loadProgram()
	if err != nil {
		return err
	}

	if a.config.Disasm {
		return image.Dump(a.stdout, c.Program())
	}

	if a.config.Input != "" {
		fd, err := os.Open(a.config.Input)
		if err != nil {
			return err
		}
		defer fd.Close()
		a.stdin = fd
	}

	a.cpu = NewCPUController(c, a.terminal())
	err = a.cpu.Serve(ctx)

	a.log.Info("stopped",
		"cycles", a.cpu.Cycles(),
		"elapsed", a.cpu.Elapsed(),
		"frequency", prettyFrequency(a.cpu.Frequency()),
		"halted", c.Halted())

	if a.config.Save != "" {
		if serr := image.WriteStateFile(a.config.Save, c.State()); serr != nil {
			return serr
		}
		a.log.Info("snapshot saved", "file", a.config.Save)
	}

	if errors.Is(err, context.Canceled) {
		a.log.Warn("interrupted", "ip", c.IP())
		return nil
	}
	return err
}

// loadProgram creates the cpu, either from a program image or from a
// snapshot.
func (a *App) loadProgram() (*cpu.CPU, error) {
	if a.config.Resume != "" {
		a.log.Info("resuming", "file", a.config.Resume)

		s, err := image.ReadStateFile(a.config.Resume)
		if err != nil {
			return nil, err
		}
		return cpu.FromState(s, a.printTrace), nil
	}

	a.log.Info("loading", "file", a.config.Program)

	prog, err := image.Load(a.config.Program)
	if err != nil {
		return nil, err
	}

	c := cpu.New(prog, a.printTrace)
	if err := c.Reserve(a.config.Reserve); err != nil {
		return nil, err
	}
	return c, nil
}

// terminal returns the peripheral the program talks to.
func (a *App) terminal() devices.Device {
	if a.config.ASCII {
		return ascii.New(a.stdin, a.stdout)
	}
	return stream.New(a.stdin, a.stdout)
}

// printTrace logs instruction trace data. This can be toggled
// through a.config.PrintTrace.
func (a *App) printTrace(i *cpu.Instruction) {
	if !a.config.PrintTrace {
		return
	}

	name, _ := arch.Name(i.Opcode)
	a.log.Debug("trace", "ip", i.IP, "op", name, "args", formatArgs(i))
}

// formatArgs renders the operands of i, along with the values they
// resolved to.
func formatArgs(i *cpu.Instruction) string {
	var sb strings.Builder
	sb.Grow(60)

	argc := arch.Argc(i.Opcode)
	for j := 0; j < argc; j++ {
		argv := i.Args[j]

		sb.WriteString(argv.Mode.Format(argv.Raw))

		switch {
		case arch.Writes(i.Opcode, j):
			fmt.Fprintf(&sb, "@%d", argv.Address)
		case argv.Mode != arch.Immediate:
			fmt.Fprintf(&sb, "=%d", argv.Value)
		}

		if j < argc-1 {
			sb.WriteString(", ")
		}
	}

	return sb.String()
}

// prettyFrequency returns a human-readable version of the given clock frequency in herz.
func prettyFrequency(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2f GHz", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2f MHz", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f KHz", v/1e3)
	default:
		return fmt.Sprintf("%.2f Hz", v)
	}
}
