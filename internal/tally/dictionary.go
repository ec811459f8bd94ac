package tally

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/couchbase/vellum"
)

// Dictionary is an immutable in-memory FST from distinct words to their counts.
type Dictionary struct {
	fst   *vellum.FST
	total int
}

// NewDictionary builds a dictionary from entries. Entries need not be in any order
// but words must be distinct.
func NewDictionary(entries []Entry) (*Dictionary, error) {
	d := &Dictionary{total: Total(entries)}
	if len(entries) == 0 {
		return d, nil
	}

	// FST keys must be inserted in byte order.
	keys := make([]Entry, len(entries))
	copy(keys, entries)
	slices.SortFunc(keys, func(a, b Entry) int {
		return strings.Compare(a.Word, b.Word)
	})

	var buf bytes.Buffer
	builder, err := vellum.New(&buf, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create fst builder: %w", err)
	}
	for _, e := range keys {
		if err := builder.Insert([]byte(e.Word), uint64(e.Count)); err != nil {
			return nil, fmt.Errorf("failed to insert %q: %w", e.Word, err)
		}
	}
	if err := builder.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish fst: %w", err)
	}

	fst, err := vellum.Load(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to load fst: %w", err)
	}
	d.fst = fst

	return d, nil
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int {
	if d.fst == nil {
		return 0
	}
	return d.fst.Len()
}

// Total returns the number of word occurrences across all entries.
func (d *Dictionary) Total() int { return d.total }

// Count returns how many times word occurred. Lookup is case-sensitive.
func (d *Dictionary) Count(word string) (int, bool, error) {
	if d.fst == nil {
		return 0, false, nil
	}
	val, exists, err := d.fst.Get([]byte(word))
	if err != nil {
		return 0, false, err
	}
	return int(val), exists, nil
}

// Prefix returns the entries whose word starts with prefix, in listing order.
// An empty prefix returns every entry.
func (d *Dictionary) Prefix(prefix string) ([]Entry, error) {
	if d.fst == nil {
		return nil, nil
	}

	var start, end []byte
	if prefix != "" {
		start = []byte(prefix)
		end = prefixSuccessor(start)
	}

	iter, err := d.fst.Iterator(start, end)
	var entries []Entry
	for err == nil {
		key, val := iter.Current()
		entries = append(entries, Entry{Word: string(key), Count: int(val)})
		err = iter.Next()
	}
	if !errors.Is(err, vellum.ErrIteratorDone) {
		return nil, fmt.Errorf("failed to iterate fst: %w", err)
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return Compare(a.Word, b.Word)
	})
	return entries, nil
}

// prefixSuccessor returns the lexicographically next prefix after the given one.
func prefixSuccessor(prefix []byte) []byte {
	if len(prefix) == 0 {
		return nil
	}

	succ := bytes.Clone(prefix)

	for i := len(succ) - 1; i >= 0; i-- {
		if succ[i] < 0xff {
			succ[i]++
			return succ[:i+1]
		}
	}

	return nil
}
