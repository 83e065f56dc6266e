// Package stream implements a line oriented integer terminal.
//
// Every value the program emits is written on its own line. Whenever the
// program waits for input, the next non-blank line is read and the
// integers it holds are queued. The end of the input stream closes the
// program's input.
package stream

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/hexaflex/intcode/devices"
)

// Device defines the terminal state.
type Device struct {
	r    *bufio.Reader
	w    *bufio.Writer
	line int // Number of input lines consumed.
}

var _ devices.Device = &Device{}

// New creates a terminal reading from r and writing to w.
func New(r io.Reader, w io.Writer) *Device {
	return &Device{
		r: bufio.NewReader(r),
		w: bufio.NewWriter(w),
	}
}

func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Vendor, 0x0002)
}

func (d *Device) Startup() error {
	d.line = 0
	return nil
}

func (d *Device) Shutdown() error {
	return d.w.Flush()
}

// Int writes pending output and, if the program is waiting, reads its
// next input line.
func (d *Device) Int(req *devices.Request) error {
	for _, v := range req.Output {
		d.w.WriteString(strconv.FormatInt(v, 10))
		d.w.WriteByte('\n')
	}

	if err := d.w.Flush(); err != nil {
		return err
	}

	if req.Input == nil {
		return nil
	}

	values, err := d.next()
	if err == io.EOF {
		req.Input.Close()
		return nil
	}

	if err != nil {
		return err
	}

	req.Input.Push(values...)
	return nil
}

// next returns the values on the next non-blank input line.
func (d *Device) next() ([]int64, error) {
	for {
		text, err := d.r.ReadString('\n')
		if len(text) == 0 && err != nil {
			return nil, err
		}

		d.line++

		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})

		if len(fields) == 0 {
			if err != nil {
				return nil, err
			}
			continue
		}

		values := make([]int64, len(fields))
		for i, f := range fields {
			v, perr := strconv.ParseInt(f, 10, 64)
			if perr != nil {
				return nil, errors.Errorf("input line %d: invalid integer %q", d.line, f)
			}
			values[i] = v
		}
		return values, nil
	}
}
