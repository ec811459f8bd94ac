// Package source provides line-oriented readers over input files.
package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Kind selects how an input file is read.
type Kind string

const (
	KindBuffered Kind = "buffered"
	KindMapped   Kind = "mmap"
)

// ParseKind parses a reader kind name. The empty string selects KindBuffered.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "", KindBuffered:
		return KindBuffered, nil
	case KindMapped:
		return KindMapped, nil
	default:
		return "", fmt.Errorf("unknown reader kind: %q", s)
	}
}

// LineSource yields the lines of an input without their terminators.
type LineSource interface {
	Scan() bool
	Text() string
	Err() error
	Close() error
}

// Open opens path as a line source of the given kind.
func Open(path string, kind Kind) (LineSource, error) {
	var (
		src LineSource
		err error
	)
	switch kind {
	case KindBuffered, "":
		src, err = OpenBuffered(path)
	case KindMapped:
		src, err = OpenMapped(path)
	default:
		return nil, fmt.Errorf("unknown reader kind: %q", kind)
	}
	if err != nil {
		return nil, err
	}
	return src, nil
}

// trimEOL strips a trailing "\n" or "\r\n".
func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// Buffered reads lines of unbounded length from an io.Reader.
type Buffered struct {
	r      *bufio.Reader
	closer io.Closer
	line   string
	err    error
	done   bool
}

// NewBuffered wraps r. If r is an io.Closer, Close closes it.
func NewBuffered(r io.Reader) *Buffered {
	b := &Buffered{r: bufio.NewReader(r)}
	if c, ok := r.(io.Closer); ok {
		b.closer = c
	}
	return b
}

// Scan advances to the next line.
func (b *Buffered) Scan() bool {
	if b.done {
		return false
	}

	line, err := b.r.ReadString('\n')
	if err != nil {
		b.done = true
		if !errors.Is(err, io.EOF) {
			b.err = err
			return false
		}
		if line == "" {
			return false
		}
	}

	b.line = trimEOL(line)
	return true
}

// Text returns the current line.
func (b *Buffered) Text() string { return b.line }

// Err returns the first non-EOF read error.
func (b *Buffered) Err() error { return b.err }

// Close closes the underlying reader if it is closable.
func (b *Buffered) Close() error {
	b.done = true
	if b.closer == nil {
		return nil
	}
	c := b.closer
	b.closer = nil
	return c.Close()
}
