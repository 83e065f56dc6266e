package stream

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/hexaflex/intcode/arch"
	"github.com/hexaflex/intcode/cpu"
)

// Echo every input until a zero arrives.
var echo = arch.Program{3, 20, 1006, 20, 10, 4, 20, 1105, 1, 0, 99}

func TestEcho(t *testing.T) {
	var out bytes.Buffer

	c := cpu.New(echo, nil)
	c.Connect(New(strings.NewReader("5\n\n-6, 7\n0\n"), &out))

	if err := c.Serve(context.Background()); err != nil {
		t.Fatal(err)
	}

	if have, want := out.String(), "5\n-6\n7\n"; have != want {
		t.Fatalf("want %q; have %q", want, have)
	}
}

func TestEOF(t *testing.T) {
	var out bytes.Buffer

	c := cpu.New(echo, nil)
	c.Connect(New(strings.NewReader("1\n2"), &out))

	err := c.Serve(context.Background())
	if !errors.Is(err, cpu.ErrInputStarvation) {
		t.Fatalf("want %v; have %v", cpu.ErrInputStarvation, err)
	}

	if have, want := out.String(), "1\n2\n"; have != want {
		t.Fatalf("want %q; have %q", want, have)
	}
}

func TestInvalidInput(t *testing.T) {
	c := cpu.New(echo, nil)
	c.Connect(New(strings.NewReader("1\nabc\n"), &bytes.Buffer{}))

	err := c.Serve(context.Background())
	if err == nil || !strings.Contains(err.Error(), "input line 2") {
		t.Fatalf("expected an input line error; have %v", err)
	}
}

func TestOutputOnly(t *testing.T) {
	var out bytes.Buffer

	// The quine emits its own program and halts.
	quine := arch.Program{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99}
	c := cpu.New(quine, nil)
	c.Connect(New(strings.NewReader(""), &out))

	if err := c.Serve(context.Background()); err != nil {
		t.Fatal(err)
	}

	want := strings.ReplaceAll(quine.String(), ",", "\n") + "\n"
	if have := out.String(); have != want {
		t.Fatalf("want %q; have %q", want, have)
	}
}
