package cpu

import "github.com/pkg/errors"

// MemoryLimit is the largest number of cells a memory bank may grow to.
// A value of zero or less removes the limit. Set it before any cpu runs.
var MemoryLimit int64 = 1 << 26

// Memory defines the system's memory bank. It grows with zero-valued
// cells whenever an address beyond its current extent is accessed.
type Memory []int64

// Len returns the current extent of the memory bank.
func (m Memory) Len() int {
	return len(m)
}

// Read returns the value at the given address.
func (m *Memory) Read(addr int64) (int64, error) {
	if err := m.grow(addr); err != nil {
		return 0, err
	}
	return (*m)[addr], nil
}

// Write sets the value at the given address.
func (m *Memory) Write(addr, value int64) error {
	if err := m.grow(addr); err != nil {
		return err
	}
	(*m)[addr] = value
	return nil
}

// Reserve appends n zero-valued cells to the memory bank.
func (m *Memory) Reserve(n int) error {
	if n <= 0 {
		return nil
	}
	return m.grow(int64(len(*m) + n - 1))
}

// grow ensures addr lies within the memory bank.
func (m *Memory) grow(addr int64) error {
	switch {
	case addr < 0:
		return errors.WithMessagef(ErrAddress, "address %d", addr)
	case MemoryLimit > 0 && addr >= MemoryLimit:
		return errors.WithMessagef(ErrAddress, "address %d beyond memory limit", addr)
	case addr < int64(len(*m)):
		return nil
	}

	*m = append(*m, make([]int64, addr+1-int64(len(*m)))...)
	return nil
}
