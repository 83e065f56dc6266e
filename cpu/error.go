package cpu

import (
	"fmt"

	"github.com/pkg/errors"
)

// Known fault kinds. A runtime error wraps exactly one of these.
var (
	ErrAddress         = errors.New("invalid address")
	ErrInvalidOpcode   = errors.New("invalid opcode")
	ErrInvalidMode     = errors.New("invalid address mode")
	ErrInputStarvation = errors.New("input starvation")
)

// ErrWaitInput is returned when the CPU suspends on an empty input queue.
// It is not a fault: execution resumes once a value is pushed.
var ErrWaitInput = errors.New("waiting for input")

// Error defines a runtime error.
type Error struct {
	Instruction
	Err error // Fault kind, possibly annotated.
	Msg string
}

// NewError creates a new, formatted error message for the given instruction.
func NewError(instr *Instruction, err error, f string, argv ...interface{}) *Error {
	return &Error{
		Instruction: *instr,
		Err:         err,
		Msg:         fmt.Sprintf(f, argv...),
	}
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%04d: %v", e.IP, e.Err)
	}
	return fmt.Sprintf("%04d: %v: %s", e.IP, e.Err, e.Msg)
}

// Unwrap yields the fault kind.
func (e *Error) Unwrap() error {
	return e.Err
}
