package image

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"

	"github.com/hexaflex/intcode/cpu"
)

// Snapshots are encoded canonically, so equal states yield equal files.
var encMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("image: failed to create CBOR enc mode: %v", err))
	}
	encMode = em
}

// SaveState writes a gzip compressed snapshot of s to w.
func SaveState(w io.Writer, s *cpu.State) (err error) {
	gz := gzip.NewWriter(w)
	defer func() {
		if cerr := gz.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "image: save state")
		}
	}()

	data, err := encMode.Marshal(s)
	if err != nil {
		return errors.Wrapf(err, "image: encode state")
	}

	if _, err = gz.Write(data); err != nil {
		return errors.Wrapf(err, "image: save state")
	}
	return nil
}

// LoadState reads a snapshot written by SaveState.
func LoadState(r io.Reader) (*cpu.State, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, errors.Wrapf(err, "image: invalid snapshot format")
	}

	defer gz.Close()

	var s cpu.State
	if err := cbor.NewDecoder(gz).Decode(&s); err != nil {
		return nil, errors.Wrapf(err, "image: decode state")
	}
	return &s, nil
}

// WriteStateFile writes a snapshot of s to the given file.
func WriteStateFile(file string, s *cpu.State) error {
	fd, err := os.Create(file)
	if err != nil {
		return err
	}

	if err := SaveState(fd, s); err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}

// ReadStateFile reads a snapshot from the given file.
func ReadStateFile(file string) (*cpu.State, error) {
	fd, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer fd.Close()
	return LoadState(fd)
}
