// Package devices defines the peripherals which drive a CPU through
// its input and output queues.
package devices

import (
	"log/slog"

	"github.com/pkg/errors"
)

// Sink receives values on behalf of a suspended CPU.
type Sink interface {
	// Push appends values to the CPU's input queue.
	Push(values ...int64)

	// Close signals that no further input will be supplied.
	Close()
}

// Request describes the CPU state at the time of an interrupt.
type Request struct {
	Output []int64 // Values emitted since the previous interrupt.
	Input  Sink    // Input queue of the suspended CPU. Nil if the CPU has stopped.
}

// Device represents a peripheral device.
// It interacts with a program through its input and output streams.
type Device interface {
	// ID yields the manufacturer and serial number for the device.
	ID() ID

	// Startup initializes internal resources.
	Startup() error

	// Shutdown cleans up internal resources.
	Shutdown() error

	// Int is called whenever the CPU suspends on an empty input queue
	// and once more after it stops. A device servicing a suspension is
	// expected to push at least one value or close the input.
	Int(*Request) error
}

// Map contains a list of registered peripherals.
type Map []Device

// Connect adds the given device to the device map.
// Returns false if the device type is already present in the set.
func (dm *Map) Connect(dev Device) bool {
	if (*dm).Find(dev.ID()) > -1 {
		return false
	}

	*dm = append(*dm, dev)
	return true
}

// Int hands the interrupt to every connected device, in connection order.
// Every device observes the output. Only the first device to push a
// value or close the input answers a suspension; the ones after it see
// a request without an input.
func (dm Map) Int(req *Request) error {
	var in *answer
	if req.Input != nil {
		in = &answer{Sink: req.Input}
	}

	for _, dev := range dm {
		r := &Request{Output: req.Output}
		if in != nil && !in.done {
			r.Input = in
		}

		if err := dev.Int(r); err != nil {
			return errors.Wrapf(err, "%s", dev.ID())
		}
	}
	return nil
}

// answer records whether a device has responded to a suspension.
type answer struct {
	Sink
	done bool
}

func (a *answer) Push(values ...int64) {
	if len(values) > 0 {
		a.done = true
	}
	a.Sink.Push(values...)
}

func (a *answer) Close() {
	a.done = true
	a.Sink.Close()
}

// Startup initializes internal resources.
func (dm Map) Startup() error {
	var errorset ErrorSet

	for _, dev := range dm {
		slog.Debug("device startup", "id", dev.ID())
		if err := dev.Startup(); err != nil {
			errorset.Append(errors.Wrapf(err, "%s", dev.ID()))
		}
	}

	if errorset.Len() == 0 {
		return nil
	}

	return errorset
}

// Shutdown cleans up internal resources.
func (dm Map) Shutdown() error {
	var errorset ErrorSet

	for _, dev := range dm {
		slog.Debug("device shutdown", "id", dev.ID())
		if err := dev.Shutdown(); err != nil {
			errorset.Append(errors.Wrapf(err, "%s", dev.ID()))
		}
	}

	if errorset.Len() == 0 {
		return nil
	}

	return errorset
}

// Find returns the index for the device with the given id.
// Returns -1 if it can't be found.
func (dm Map) Find(id ID) int {
	for i, dev := range dm {
		if dev.ID() == id {
			return i
		}
	}
	return -1
}
