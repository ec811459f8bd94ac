package report

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/golang/snappy"
)

// Sink is the output file, optionally written through a snappy framed stream.
type Sink struct {
	path   string
	file   *os.File
	zw     *snappy.Writer
	w      io.Writer
	closed bool
}

// Create creates or truncates path. With compress set, bytes written to the
// sink are snappy-framed.
func Create(path string, compress bool) (*Sink, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output %s: %w", path, err)
	}

	s := &Sink{path: path, file: file, w: file}
	if compress {
		s.zw = snappy.NewBufferedWriter(file)
		s.w = s.zw
	}
	return s, nil
}

// Path returns the output path.
func (s *Sink) Path() string { return s.path }

// Compressed reports whether output is snappy-framed.
func (s *Sink) Compressed() bool { return s.zw != nil }

func (s *Sink) Write(p []byte) (int, error) {
	if s.closed {
		return 0, os.ErrClosed
	}
	return s.w.Write(p)
}

// Close flushes the compressor, if any, and closes the file. Later calls return nil.
func (s *Sink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if s.zw != nil {
		if err := s.zw.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to flush compressed output: %w", err))
		}
	}
	if err := s.file.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close output %s: %w", s.path, err))
	}
	return errors.Join(errs...)
}
