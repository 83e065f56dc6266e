package image

import (
	"fmt"
	"io"
	"strings"

	"github.com/hexaflex/intcode/arch"
)

// Dump writes a disassembly listing of prog to w. One line is written
// per instruction. Cells which do not hold a valid instruction, or whose
// operands run past the end of the program, are listed as data.
func Dump(w io.Writer, prog arch.Program) error {
	for ip := 0; ip < len(prog); {
		line, size := disassemble(prog, ip)
		if _, err := fmt.Fprintf(w, "%04d: %s\n", ip, line); err != nil {
			return err
		}
		ip += size
	}
	return nil
}

// disassemble returns the listing for the instruction at ip and the
// number of cells it occupies.
func disassemble(prog arch.Program, ip int) (string, int) {
	word := prog[ip]
	opcode, modes := arch.Split(word)

	name, ok := arch.Name(opcode)
	argc := arch.Argc(opcode)
	if !ok || ip+argc >= len(prog) {
		return fmt.Sprintf("DATA %d", word), 1
	}

	var sb strings.Builder
	sb.WriteString(name)

	for i := 0; i < argc; i++ {
		mode := modes[i]
		if !mode.Valid() || (mode == arch.Immediate && arch.Writes(opcode, i)) {
			return fmt.Sprintf("DATA %d", word), 1
		}

		if i == 0 {
			sb.WriteByte(' ')
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(mode.Format(prog[ip+1+i]))
	}

	return sb.String(), argc + 1
}
