package cpu

import (
	"github.com/hexaflex/intcode/arch"
)

// State is a serializable copy of a cpu's architectural state.
// Faults are not part of it; restoring a faulted cpu is not supported.
// Neither is a closed input: whether a producer remains depends on who
// drives the restored cpu, so its input always starts out open.
type State struct {
	Program      []int64 `cbor:"program"`
	Memory       []int64 `cbor:"memory"`
	IP           int64   `cbor:"ip"`
	RelativeBase int64   `cbor:"rb"`
	Cycles       uint64  `cbor:"cycles"`
	Halted       bool    `cbor:"halted"`
	Input        []int64 `cbor:"input,omitempty"`
	Output       []int64 `cbor:"output,omitempty"`
}

// State returns a snapshot of the cpu.
func (c *CPU) State() *State {
	return &State{
		Program:      c.program.Clone(),
		Memory:       arch.Program(c.memory).Clone(),
		IP:           c.ip,
		RelativeBase: c.rb,
		Cycles:       c.cycles,
		Halted:       c.halted,
		Input:        c.in.Values(),
		Output:       c.out.Values(),
	}
}

// FromState creates a cpu which continues where the snapshot s left off.
func FromState(s *State, trace TraceFunc) *CPU {
	c := New(s.Program, trace)
	c.memory = Memory(arch.Program(s.Memory).Clone())
	c.ip = s.IP
	c.rb = s.RelativeBase
	c.cycles = s.Cycles
	c.halted = s.Halted
	c.in.Push(s.Input...)
	c.out.Push(s.Output...)
	return c
}
