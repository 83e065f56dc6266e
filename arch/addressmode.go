package arch

import "strconv"

// AddressMode defines instruction operand address modes.
type AddressMode int8

// Known address modes.
const (
	Position  AddressMode = 0 // x = mem[123]
	Immediate AddressMode = 1 // x = 123
	Relative  AddressMode = 2 // x = mem[rb+123]
)

// Valid returns true if m is a known address mode.
func (m AddressMode) Valid() bool {
	return m == Position || m == Immediate || m == Relative
}

// Format returns the operand v, written the way a listing shows it
// under address mode m.
func (m AddressMode) Format(v int64) string {
	switch m {
	case Position:
		return "[" + strconv.FormatInt(v, 10) + "]"
	case Immediate:
		return "$" + strconv.FormatInt(v, 10)
	case Relative:
		if v < 0 {
			return "[rb" + strconv.FormatInt(v, 10) + "]"
		}
		return "[rb+" + strconv.FormatInt(v, 10) + "]"
	}
	return "?" + strconv.FormatInt(v, 10)
}

func (m AddressMode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}
