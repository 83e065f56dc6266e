// Package ascii implements a text console.
//
// Output values in the ASCII range are written as characters. Anything
// else is written as a decimal number on a line of its own. Input is
// read a line at a time and queued as character codes, terminated by a
// newline.
package ascii

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/hexaflex/intcode/devices"
)

// MaxChar is the largest value written as a character.
const MaxChar = 127

// Device defines the console state.
type Device struct {
	r      *bufio.Reader
	w      *bufio.Writer
	column int // Characters written since the last newline.
}

var _ devices.Device = &Device{}

// New creates a console reading from r and writing to w.
func New(r io.Reader, w io.Writer) *Device {
	return &Device{
		r: bufio.NewReader(r),
		w: bufio.NewWriter(w),
	}
}

func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Vendor, 0x0003)
}

func (d *Device) Startup() error {
	d.column = 0
	return nil
}

func (d *Device) Shutdown() error {
	return d.w.Flush()
}

// Int writes pending output and, if the program is waiting, reads the
// next line of text.
func (d *Device) Int(req *devices.Request) error {
	for _, v := range req.Output {
		d.write(v)
	}

	if err := d.w.Flush(); err != nil {
		return err
	}

	if req.Input == nil {
		return nil
	}

	text, err := d.r.ReadString('\n')
	if len(text) == 0 {
		if err == io.EOF {
			req.Input.Close()
			return nil
		}
		return err
	}

	text = strings.TrimRight(text, "\r\n")

	values := make([]int64, 0, len(text)+1)
	for i := 0; i < len(text); i++ {
		values = append(values, int64(text[i]))
	}

	req.Input.Push(append(values, '\n')...)
	return nil
}

func (d *Device) write(v int64) {
	if v >= 0 && v <= MaxChar {
		d.w.WriteByte(byte(v))
		if v == '\n' {
			d.column = 0
		} else {
			d.column++
		}
		return
	}

	if d.column > 0 {
		d.w.WriteByte('\n')
	}

	d.w.WriteString(strconv.FormatInt(v, 10))
	d.w.WriteByte('\n')
	d.column = 0
}
