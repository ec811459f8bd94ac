package source

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// OpenBuffered opens path for buffered line reading.
func OpenBuffered(path string) (*Buffered, error) {
	file, _, err := openFile(path)
	if err != nil {
		return nil, err
	}
	return NewBuffered(file), nil
}

// openFile opens a regular input file and returns its info. Directories are
// rejected here so no reader ever gets past Open on one.
func openFile(path string) (*os.File, os.FileInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input %s: %w", path, err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("failed to stat input %s: %w", path, err)
	}
	if stat.IsDir() {
		file.Close()
		return nil, nil, fmt.Errorf("input %s is a directory", path)
	}
	return file, stat, nil
}

// Mapped reads lines straight out of a read-only memory mapping of a file.
type Mapped struct {
	path string
	file *os.File
	data mmap.MMap
	pos  int
	line string
}

// OpenMapped maps path into memory. Empty files are not mapped and yield no lines.
func OpenMapped(path string) (*Mapped, error) {
	file, stat, err := openFile(path)
	if err != nil {
		return nil, err
	}

	m := &Mapped{path: path, file: file}
	if stat.Size() == 0 {
		return m, nil
	}

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to mmap input %s: %w", path, err)
	}
	m.data = data

	return m, nil
}

// Scan advances to the next line.
func (m *Mapped) Scan() bool {
	if m.pos >= len(m.data) {
		return false
	}

	rest := m.data[m.pos:]
	end := bytes.IndexByte(rest, '\n')
	if end < 0 {
		m.line = trimEOL(string(rest))
		m.pos = len(m.data)
		return true
	}

	m.line = trimEOL(string(rest[:end]))
	m.pos += end + 1
	return true
}

// Text returns the current line. The string is a copy and outlives Close.
func (m *Mapped) Text() string { return m.line }

// Err always returns nil; a mapped file has no read errors past Open.
func (m *Mapped) Err() error { return nil }

// Close unmaps the data and closes the file.
func (m *Mapped) Close() error {
	var errs []error
	if m.data != nil {
		if err := m.data.Unmap(); err != nil {
			errs = append(errs, fmt.Errorf("failed to unmap %s: %w", m.path, err))
		}
		m.data = nil
	}
	if m.file != nil {
		if err := m.file.Close(); err != nil {
			errs = append(errs, err)
		}
		m.file = nil
	}
	m.pos = 0
	return errors.Join(errs...)
}
