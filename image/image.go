// Package image reads and writes program images and cpu snapshots.
//
// A program image is a list of signed decimal integers separated by
// commas and/or whitespace. Image files may optionally be gzip
// compressed; this is detected from the file's contents.
package image

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/hexaflex/intcode/arch"
)

// gzip stream header.
var magic = []byte{0x1f, 0x8b}

// Parse reads a program image from r.
func Parse(r io.Reader) (arch.Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "image")
	}

	fields := strings.FieldsFunc(string(data), func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	prog := make(arch.Program, 0, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, errors.Errorf("image: cell %d: invalid integer %q", i, f)
		}
		prog = append(prog, v)
	}

	return prog, nil
}

// ParseString reads a program image from s.
func ParseString(s string) (arch.Program, error) {
	return Parse(strings.NewReader(s))
}

// Load reads a program image from the given file.
func Load(file string) (arch.Program, error) {
	fd, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer fd.Close()

	r, err := decompress(fd)
	if err != nil {
		return nil, errors.Wrapf(err, "image: %s", file)
	}

	prog, err := Parse(r)
	if err != nil {
		return nil, errors.WithMessage(err, file)
	}
	return prog, nil
}

// decompress returns a reader yielding the uncompressed contents of r.
func decompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(len(magic))
	if err != nil || head[0] != magic[0] || head[1] != magic[1] {
		return br, nil
	}

	return gzip.NewReader(br)
}

// Save writes prog to w in its textual form, optionally gzip compressed.
func Save(w io.Writer, prog arch.Program, compress bool) (err error) {
	if compress {
		gz := gzip.NewWriter(w)
		defer func() {
			if cerr := gz.Close(); err == nil {
				err = cerr
			}
		}()
		w = gz
	}

	_, err = io.WriteString(w, prog.String()+"\n")
	return
}
