package arch

import "testing"

func TestSplit(t *testing.T) {
	tests := []struct {
		word   int64
		opcode int
		modes  [3]AddressMode
	}{
		{1, ADD, [3]AddressMode{Position, Position, Position}},
		{1002, MUL, [3]AddressMode{Position, Immediate, Position}},
		{1105, JNZ, [3]AddressMode{Immediate, Immediate, Position}},
		{21101, ADD, [3]AddressMode{Immediate, Immediate, Relative}},
		{204, OUT, [3]AddressMode{Relative, Position, Position}},
		{99, HALT, [3]AddressMode{Position, Position, Position}},
	}

	for _, tt := range tests {
		opcode, modes := Split(tt.word)
		if opcode != tt.opcode {
			t.Fatalf("%d: opcode mismatch; want %d, have %d", tt.word, tt.opcode, opcode)
		}
		if modes != tt.modes {
			t.Fatalf("%d: mode mismatch; want %v, have %v", tt.word, tt.modes, modes)
		}
	}
}

func TestSplitNegative(t *testing.T) {
	opcode, _ := Split(-1)
	if Argc(opcode) != -1 {
		t.Fatalf("negative word decoded as opcode %d", opcode)
	}
}

func TestArgc(t *testing.T) {
	want := map[int]int{
		ADD: 3, MUL: 3, IN: 1, OUT: 1, JNZ: 2,
		JEZ: 2, CLT: 3, CEQ: 3, ARB: 1, HALT: 0,
	}

	for opcode, argc := range want {
		if have := Argc(opcode); have != argc {
			t.Fatalf("Argc(%d): want %d, have %d", opcode, argc, have)
		}
		if _, ok := Name(opcode); !ok {
			t.Fatalf("Name(%d): opcode has no name", opcode)
		}
	}

	for _, opcode := range []int{0, 10, 42, 98} {
		if Argc(opcode) != -1 {
			t.Fatalf("Argc(%d): expected unknown opcode", opcode)
		}
	}
}

func TestWrites(t *testing.T) {
	if !Writes(ADD, 2) || Writes(ADD, 0) || Writes(ADD, 1) {
		t.Fatal("ADD must write its third argument only")
	}
	if !Writes(IN, 0) {
		t.Fatal("IN must write its only argument")
	}
	if Writes(JNZ, 1) || Writes(JEZ, 1) {
		t.Fatal("jump targets are values, not destinations")
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		mode AddressMode
		v    int64
		want string
	}{
		{Position, 4, "[4]"},
		{Immediate, -3, "$-3"},
		{Relative, 7, "[rb+7]"},
		{Relative, -1, "[rb-1]"},
	}

	for _, tt := range tests {
		if have := tt.mode.Format(tt.v); have != tt.want {
			t.Fatalf("want %q, have %q", tt.want, have)
		}
	}
}

func TestProgramString(t *testing.T) {
	p := Program{1, -2, 99}
	if have := p.String(); have != "1,-2,99" {
		t.Fatalf("want %q, have %q", "1,-2,99", have)
	}

	q := p.Clone()
	q[0] = 2
	if p[0] != 1 {
		t.Fatal("clone shares storage with its source")
	}
}
