package devices

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
)

type testDevice struct {
	id       ID
	startErr error
	seen     []int64
	started  bool
	silent   bool // Never answers input requests.
	asked    bool // Has an input request been seen?
}

func (d *testDevice) ID() ID { return d.id }

func (d *testDevice) Startup() error {
	d.started = true
	return d.startErr
}

func (d *testDevice) Shutdown() error {
	d.started = false
	return nil
}

func (d *testDevice) Int(req *Request) error {
	d.seen = append(d.seen, req.Output...)
	if req.Input == nil {
		return nil
	}

	d.asked = true
	if !d.silent {
		req.Input.Push(int64(len(d.seen)))
	}
	return nil
}

type testSink struct {
	values []int64
	closed bool
}

func (s *testSink) Push(values ...int64) { s.values = append(s.values, values...) }
func (s *testSink) Close()               { s.closed = true }

func TestConnect(t *testing.T) {
	var dm Map

	a := &testDevice{id: NewID(Vendor, 1)}
	b := &testDevice{id: NewID(Vendor, 2)}

	if !dm.Connect(a) || !dm.Connect(b) {
		t.Fatal("failed to connect distinct devices")
	}
	if dm.Connect(&testDevice{id: a.id}) {
		t.Fatal("connected a duplicate device class")
	}
	if dm.Find(b.id) != 1 {
		t.Fatalf("device %s not found at index 1", b.id)
	}
	if dm.Find(NewID(Vendor, 3)) != -1 {
		t.Fatal("found a device that was never connected")
	}
}

func TestInt(t *testing.T) {
	a := &testDevice{id: NewID(Vendor, 1)}
	b := &testDevice{id: NewID(Vendor, 2)}
	dm := Map{a, b}

	var sink testSink
	if err := dm.Int(&Request{Output: []int64{7, 8}, Input: &sink}); err != nil {
		t.Fatal(err)
	}

	if len(a.seen) != 2 || len(b.seen) != 2 {
		t.Fatalf("every device must observe the output; have %v and %v", a.seen, b.seen)
	}
	if len(sink.values) != 1 || sink.values[0] != 2 {
		t.Fatalf("expected only the first device to answer; have %v", sink.values)
	}
	if b.asked {
		t.Fatal("second device was offered an answered input")
	}
}

func TestIntHalted(t *testing.T) {
	a := &testDevice{id: NewID(Vendor, 1)}
	dm := Map{a}

	if err := dm.Int(&Request{Output: []int64{1}}); err != nil {
		t.Fatal(err)
	}
	if a.asked || len(a.seen) != 1 {
		t.Fatalf("halted cpu must not request input; asked %v, seen %v", a.asked, a.seen)
	}
}

func TestIntSilentDevice(t *testing.T) {
	// A device which only watches output leaves the input to the next one.
	a := &testDevice{id: NewID(Vendor, 1), silent: true}
	b := &testDevice{id: NewID(Vendor, 2)}
	dm := Map{a, b}

	var sink testSink
	if err := dm.Int(&Request{Output: []int64{5}, Input: &sink}); err != nil {
		t.Fatal(err)
	}

	if !a.asked || !b.asked {
		t.Fatalf("both devices should be offered the input; asked %v and %v", a.asked, b.asked)
	}
	if len(sink.values) != 1 || sink.values[0] != 1 {
		t.Fatalf("expected the second device to answer; have %v", sink.values)
	}
}

func TestStartupErrorSet(t *testing.T) {
	dm := Map{
		&testDevice{id: NewID(Vendor, 1), startErr: errors.New("no media")},
		&testDevice{id: NewID(Vendor, 2)},
		&testDevice{id: NewID(Vendor, 3), startErr: errors.New("jammed")},
	}

	err := dm.Startup()
	set, ok := err.(ErrorSet)
	if !ok {
		t.Fatalf("expected an ErrorSet; have %T", err)
	}
	if set.Len() != 2 {
		t.Fatalf("expected 2 errors; have %d", set.Len())
	}
	if !strings.Contains(set.Error(), "1c0d:0003: jammed") {
		t.Fatalf("error text lacks device context: %q", set.Error())
	}

	if err := dm.Shutdown(); err != nil {
		t.Fatal(err)
	}
}

func TestID(t *testing.T) {
	id := NewID(Vendor, 0x42)
	if id.Vendor() != Vendor || id.Class() != 0x42 {
		t.Fatalf("component mismatch: %s", id)
	}
	if id.String() != "1c0d:0042" {
		t.Fatalf("unexpected string form %q", id.String())
	}
}
