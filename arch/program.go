package arch

import (
	"strconv"
	"strings"
)

// Program is the initial memory image of a machine.
type Program []int64

// Clone returns a copy of p which shares no storage with it.
func (p Program) Clone() Program {
	out := make(Program, len(p))
	copy(out, p)
	return out
}

// String returns p in its comma separated source form.
func (p Program) String() string {
	var sb strings.Builder
	for i, v := range p {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(v, 10))
	}
	return sb.String()
}
