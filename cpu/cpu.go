// Package cpu implements the Intcode CPU: a memory bank, an instruction
// decoder and the fetch-decode-execute loop, exchanging values with its
// environment through an input and an output queue.
package cpu

import (
	"context"
	"io"

	"github.com/hexaflex/intcode/arch"
	"github.com/hexaflex/intcode/devices"
)

// checkInterval is the number of steps RunContext executes between
// cancellation checks.
const checkInterval = 1024

// TraceFunc represents a callback handler for debug trace output.
type TraceFunc func(*Instruction)

// CPU implements the runtime.
type CPU struct {
	devices devices.Map  // Connected peripherals.
	trace   TraceFunc    // Handler for debug trace output.
	program arch.Program // Initial memory image.
	memory  Memory       // System memory.
	instr   Instruction  // Decoded instruction data.
	in      *Queue       // Values consumed by IN.
	out     *Queue       // Values produced by OUT.
	ip      int64        // Instruction pointer.
	rb      int64        // Relative base.
	cycles  uint64       // Number of instructions executed.
	halted  bool         // Has a HALT instruction been executed?
	fault   error        // Fault which aborted execution, if any.
}

// New creates a new CPU for the given program.
// Optionally with the given debug trace handler.
func New(program arch.Program, trace TraceFunc) *CPU {
	if trace == nil {
		trace = func(*Instruction) { /* nop */ }
	}

	c := &CPU{
		trace:   trace,
		program: program.Clone(),
		in:      NewQueue(),
		out:     NewQueue(),
	}

	c.Reset()
	return c
}

// Reset restores the initial program image and clears the registers.
// Queue contents are left untouched.
func (c *CPU) Reset() {
	c.memory = Memory(c.program.Clone())
	c.ip = 0
	c.rb = 0
	c.cycles = 0
	c.halted = false
	c.fault = nil
}

// Reserve appends n zero-valued cells to memory.
func (c *CPU) Reserve(n int) error {
	return c.memory.Reserve(n)
}

// Memory returns the cpu's internal memory bank.
func (c *CPU) Memory() Memory {
	return c.memory
}

// Program returns the initial memory image.
func (c *CPU) Program() arch.Program {
	return c.program
}

// Input returns the queue read by IN instructions.
func (c *CPU) Input() *Queue {
	return c.in
}

// Output returns the queue written by OUT instructions.
func (c *CPU) Output() *Queue {
	return c.out
}

// Link replaces the cpu's input and output queues.
// A nil queue leaves the current one in place.
func (c *CPU) Link(in, out *Queue) {
	if in != nil {
		c.in = in
	}
	if out != nil {
		c.out = out
	}
}

// Connect connects the given hardware peripheral to the system.
// Returns false if the given device type is already connected.
func (c *CPU) Connect(dev devices.Device) bool {
	return c.devices.Connect(dev)
}

// IP returns the instruction pointer.
func (c *CPU) IP() int64 { return c.ip }

// RelativeBase returns the relative base register.
func (c *CPU) RelativeBase() int64 { return c.rb }

// Cycles returns the number of instructions executed since the last reset.
func (c *CPU) Cycles() uint64 { return c.cycles }

// Halted returns true once a HALT instruction has been executed.
func (c *CPU) Halted() bool { return c.halted }

// Err returns the fault which aborted execution, if any.
func (c *CPU) Err() error { return c.fault }

// Step performs a single execution step.
//
// Returns io.EOF if the program has reached its end, ErrWaitInput if
// an IN instruction found the input queue empty, or an *Error if the
// program faulted. Faults are final: every later call returns the same
// error.
func (c *CPU) Step() error {
	if c.fault != nil {
		return c.fault
	}
	if c.halted {
		return io.EOF
	}

	mem := &c.memory
	instr := &c.instr
	args := instr.Args[:]

	if err := instr.Decode(mem, c.ip, c.rb); err != nil {
		return c.abort(err)
	}

	var input int64
	if instr.Opcode == arch.IN {
		v, ok := c.in.Pop()
		if !ok {
			if c.in.Closed() {
				return c.abort(NewError(instr, ErrInputStarvation, "input closed"))
			}
			return ErrWaitInput
		}
		input = v
	}

	c.trace(instr)
	c.cycles++

	next := c.ip + 1 + int64(arch.Argc(instr.Opcode))

	switch instr.Opcode {
	case arch.ADD:
		if err := c.store(args[2].Address, args[0].Value+args[1].Value); err != nil {
			return err
		}
	case arch.MUL:
		if err := c.store(args[2].Address, args[0].Value*args[1].Value); err != nil {
			return err
		}
	case arch.IN:
		if err := c.store(args[0].Address, input); err != nil {
			return err
		}
	case arch.OUT:
		c.out.Push(args[0].Value)

	case arch.JNZ:
		if args[0].Value != 0 {
			next = args[1].Value
		}
	case arch.JEZ:
		if args[0].Value == 0 {
			next = args[1].Value
		}

	case arch.CLT:
		if err := c.store(args[2].Address, _bool(args[0].Value < args[1].Value)); err != nil {
			return err
		}
	case arch.CEQ:
		if err := c.store(args[2].Address, _bool(args[0].Value == args[1].Value)); err != nil {
			return err
		}

	case arch.ARB:
		c.rb += args[0].Value

	case arch.HALT:
		c.halted = true
		return io.EOF
	}

	c.ip = next
	return nil
}

// Run executes instructions until the program halts, suspends on input
// or faults. Returns nil on halt and ErrWaitInput on suspension.
func (c *CPU) Run() error {
	return c.RunContext(context.Background())
}

// RunContext is like Run but stops early, returning ctx.Err(), once ctx
// is done. The machine state remains consistent and execution may be
// resumed later.
func (c *CPU) RunContext(ctx context.Context) error {
	for n := 0; ; n++ {
		if n%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		if err := c.Step(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// Exec runs the program to completion in batch mode: the given values
// are queued, the input is closed and whatever the program emitted is
// returned. A program that asks for more input than supplied fails with
// ErrInputStarvation instead of suspending.
func (c *CPU) Exec(input ...int64) ([]int64, error) {
	c.in.Push(input...)
	c.in.Close()

	err := c.Run()
	return c.out.Drain(), err
}

// Serve runs the program with its connected peripherals. Devices are
// interrupted whenever the cpu suspends on input and once more when it
// stops. Serve returns when the program halts, faults or ctx is done.
func (c *CPU) Serve(ctx context.Context) (err error) {
	if err := c.devices.Startup(); err != nil {
		return err
	}

	defer func() {
		if serr := c.devices.Shutdown(); err == nil {
			err = serr
		}
	}()

	for {
		err := c.RunContext(ctx)
		if err != ErrWaitInput {
			if ierr := c.devices.Int(&devices.Request{Output: c.out.Drain()}); err == nil {
				err = ierr
			}
			return err
		}

		if err := c.devices.Int(&devices.Request{Output: c.out.Drain(), Input: c.in}); err != nil {
			return err
		}

		// Nobody answered: let the next IN report starvation.
		if c.in.Len() == 0 {
			c.in.Close()
		}
	}
}

// Clone returns an independent copy of the cpu, including pending queue
// contents. Connected devices are not carried over.
func (c *CPU) Clone() *CPU {
	d := &CPU{
		trace:   c.trace,
		program: c.program,
		memory:  Memory(arch.Program(c.memory).Clone()),
		in:      NewQueue(c.in.Values()...),
		out:     NewQueue(c.out.Values()...),
		ip:      c.ip,
		rb:      c.rb,
		cycles:  c.cycles,
		halted:  c.halted,
		fault:   c.fault,
	}

	if c.in.Closed() {
		d.in.Close()
	}
	return d
}

// store writes value to addr on behalf of the current instruction.
func (c *CPU) store(addr, value int64) error {
	if err := c.memory.Write(addr, value); err != nil {
		return c.abort(NewError(&c.instr, err, "store"))
	}
	return nil
}

// abort records err as the fault that ended execution.
func (c *CPU) abort(err error) error {
	c.fault = err
	return err
}

func _bool(v bool) int64 {
	if v {
		return 1
	}
	return 0
}
