// Package arch defines the system's instruction set along with
// some related helper functions.
package arch

// Known opcodes.
const (
	ADD  = 1  // dst = a + b
	MUL  = 2  // dst = a * b
	IN   = 3  // dst = next input value
	OUT  = 4  // emit a
	JNZ  = 5  // jump to b if a != 0
	JEZ  = 6  // jump to b if a == 0
	CLT  = 7  // dst = a < b
	CEQ  = 8  // dst = a == b
	ARB  = 9  // relative base += a
	HALT = 99 // stop execution
)

// Name returns the name for the given opcode.
// Returns false if the opcode is not recognized.
func Name(opcode int) (string, bool) {
	switch opcode {
	case ADD:
		return "ADD", true
	case MUL:
		return "MUL", true
	case IN:
		return "IN", true
	case OUT:
		return "OUT", true
	case JNZ:
		return "JNZ", true
	case JEZ:
		return "JEZ", true
	case CLT:
		return "CLT", true
	case CEQ:
		return "CEQ", true
	case ARB:
		return "ARB", true
	case HALT:
		return "HALT", true
	}

	return "", false
}

// Argc returns the number of arguments the given instruction requires.
// Returns -1 if the opcode is not recognized.
func Argc(opcode int) int {
	switch opcode {
	case ADD, MUL, CLT, CEQ:
		return 3
	case JNZ, JEZ:
		return 2
	case IN, OUT, ARB:
		return 1
	case HALT:
		return 0
	}
	return -1
}

// Writes returns true if argument n (zero-based) of the given instruction
// is a destination address rather than a value.
func Writes(opcode, n int) bool {
	switch opcode {
	case ADD, MUL, CLT, CEQ:
		return n == 2
	case IN:
		return n == 0
	}
	return false
}

// Split separates an instruction word into its opcode and the address
// modes of its three possible arguments. Mode digits that are absent
// from the word are zero.
func Split(word int64) (int, [3]AddressMode) {
	var modes [3]AddressMode

	digits := word / 100
	for i := range modes {
		modes[i] = AddressMode(digits % 10)
		digits /= 10
	}

	return int(word % 100), modes
}
