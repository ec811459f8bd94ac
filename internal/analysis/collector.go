package analysis

import (
	"fmt"
)

// LineScanner yields lines one at a time. *bufio.Scanner satisfies it.
type LineScanner interface {
	Scan() bool
	Text() string
	Err() error
}

// Collect tokenizes every line of src and returns its words in encounter order,
// duplicates included. Lines are tokenized independently.
func Collect(src LineScanner, seps *Separators) ([]string, error) {
	a := NewSimple(seps)

	var words []string
	for src.Scan() {
		words = append(words, a.Words(src.Text())...)
	}
	if err := src.Err(); err != nil {
		return words, fmt.Errorf("failed to read input: %w", err)
	}

	return words, nil
}
