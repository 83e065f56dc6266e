package cpu

import (
	"github.com/pkg/errors"

	"github.com/hexaflex/intcode/arch"
)

// Instruction defines decoded instruction data.
type Instruction struct {
	IP     int64      // Instruction address.
	Word   int64      // Raw instruction word.
	Opcode int        // Instruction opcode.
	Args   [3]Operand // Operand A, B and C.
}

// Decode decodes the instruction at ip from the given memory bank.
// rb is the relative base used to resolve relative operands.
func (i *Instruction) Decode(m *Memory, ip, rb int64) error {
	i.IP = ip
	i.Opcode = 0

	word, err := m.Read(ip)
	if err != nil {
		return NewError(i, err, "fetch")
	}

	var modes [3]arch.AddressMode
	i.Word = word
	i.Opcode, modes = arch.Split(word)

	argc := arch.Argc(i.Opcode)
	if argc < 0 {
		return NewError(i, ErrInvalidOpcode, "word %d", word)
	}

	for j := 0; j < argc; j++ {
		raw, err := m.Read(ip + 1 + int64(j))
		if err != nil {
			return NewError(i, err, "operand %d", j+1)
		}

		op := &i.Args[j]
		op.Raw = raw
		op.Mode = modes[j]

		if err := op.resolve(m, rb, arch.Writes(i.Opcode, j)); err != nil {
			return NewError(i, err, "operand %d", j+1)
		}
	}

	return nil
}

// Operand defines decoded instruction operand data.
type Operand struct {
	Raw     int64            // Operand word as stored in memory.
	Address int64            // Resolved address. Same as Raw for immediate operands.
	Value   int64            // Dereferenced value behind the address. Unset for destinations.
	Mode    arch.AddressMode // Address mode.
}

// resolve computes the operand's address and, unless it is a
// destination, the value it refers to.
func (op *Operand) resolve(m *Memory, rb int64, dst bool) error {
	switch op.Mode {
	case arch.Immediate:
		if dst {
			return errors.WithMessage(ErrInvalidMode, "immediate destination")
		}
		op.Address = op.Raw
		op.Value = op.Raw
		return nil

	case arch.Position:
		op.Address = op.Raw

	case arch.Relative:
		op.Address = rb + op.Raw

	default:
		return errors.WithMessagef(ErrInvalidMode, "mode %d", op.Mode)
	}

	op.Value = 0
	if dst {
		if op.Address < 0 {
			return errors.WithMessagef(ErrAddress, "address %d", op.Address)
		}
		return nil
	}

	var err error
	op.Value, err = m.Read(op.Address)
	return err
}
