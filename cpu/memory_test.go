package cpu

import (
	"testing"

	"github.com/pkg/errors"
)

func TestMemoryGrow(t *testing.T) {
	m := Memory{1, 2, 3}

	v, err := m.Read(9)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0 {
		t.Fatalf("want 0 beyond extent; have %d", v)
	}
	if m.Len() != 10 {
		t.Fatalf("want extent 10 after read; have %d", m.Len())
	}

	if err := m.Write(20, -7); err != nil {
		t.Fatal(err)
	}
	if m.Len() != 21 {
		t.Fatalf("want extent 21 after write; have %d", m.Len())
	}

	for addr := int64(3); addr < 20; addr++ {
		if v, _ := m.Read(addr); v != 0 {
			t.Fatalf("cell %d not zero filled: %d", addr, v)
		}
	}
	if v, _ := m.Read(20); v != -7 {
		t.Fatalf("want -7; have %d", v)
	}
	if v, _ := m.Read(0); v != 1 {
		t.Fatalf("existing cell changed: %d", v)
	}
}

func TestMemoryNegative(t *testing.T) {
	var m Memory

	if _, err := m.Read(-1); !errors.Is(err, ErrAddress) {
		t.Fatalf("read: want %v; have %v", ErrAddress, err)
	}
	if err := m.Write(-1, 5); !errors.Is(err, ErrAddress) {
		t.Fatalf("write: want %v; have %v", ErrAddress, err)
	}
	if m.Len() != 0 {
		t.Fatalf("faulted access grew memory to %d", m.Len())
	}
}

func TestMemoryReserve(t *testing.T) {
	m := Memory{99}
	if err := m.Reserve(0); err != nil || m.Len() != 1 {
		t.Fatalf("empty reservation changed extent to %d (%v)", m.Len(), err)
	}
	if err := m.Reserve(5); err != nil {
		t.Fatal(err)
	}
	if m.Len() != 6 {
		t.Fatalf("want extent 6; have %d", m.Len())
	}
}

func TestMemoryLimit(t *testing.T) {
	defer func(v int64) { MemoryLimit = v }(MemoryLimit)

	MemoryLimit = 8

	var m Memory
	if err := m.Write(7, 1); err != nil {
		t.Fatal(err)
	}
	if err := m.Write(8, 1); !errors.Is(err, ErrAddress) {
		t.Fatalf("want %v; have %v", ErrAddress, err)
	}

	MemoryLimit = 0

	if err := m.Write(1<<20, 1); err != nil {
		t.Fatalf("unlimited memory refused a write: %v", err)
	}
	if m.Len() != 1<<20+1 {
		t.Fatalf("want extent %d; have %d", 1<<20+1, m.Len())
	}
}
