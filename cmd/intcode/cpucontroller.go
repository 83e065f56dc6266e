package main

import (
	"context"
	"time"

	"github.com/hexaflex/intcode/cpu"
	"github.com/hexaflex/intcode/devices"
)

// CPUController controls the execution of a CPU.
type CPUController struct {
	cpu     *cpu.CPU
	start   time.Time
	elapsed time.Duration
	cycles  uint64 // Cycle count at start.
	running bool
}

// NewCPUController creates a controller for c with the given peripherals.
func NewCPUController(c *cpu.CPU, devices ...devices.Device) *CPUController {
	for _, dev := range devices {
		c.Connect(dev)
	}

	return &CPUController{
		cpu: c,
	}
}

// Elapsed returns the time spent in the most recent call to Serve.
func (c *CPUController) Elapsed() time.Duration {
	if c.running {
		return time.Since(c.start)
	}
	return c.elapsed
}

// Cycles returns the number of instructions executed by the most
// recent call to Serve.
func (c *CPUController) Cycles() uint64 {
	return c.cpu.Cycles() - c.cycles
}

// Frequency returns the average clock frequency in herz.
func (c *CPUController) Frequency() float64 {
	secs := c.Elapsed().Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(c.Cycles()) / secs
}

// Serve runs the program with its peripherals until it halts, faults or
// ctx is done.
func (c *CPUController) Serve(ctx context.Context) error {
	c.setRunning(true)
	defer c.setRunning(false)
	return c.cpu.Serve(ctx)
}

// setRunning determines of the CPU is running or is paused.
func (c *CPUController) setRunning(v bool) {
	if v {
		c.start = time.Now()
		c.cycles = c.cpu.Cycles()
	} else if c.running {
		c.elapsed = time.Since(c.start)
	}
	c.running = v
}
