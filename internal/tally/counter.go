package tally

import (
	"cmp"
	"slices"
)

// Entry is a distinct word and the number of times it occurred.
type Entry struct {
	Word  string
	Count int
}

// Collapse groups runs of equal adjacent words into entries. words must
// already be sorted; this is not checked.
func Collapse(words []string) []Entry {
	entries := make([]Entry, 0, len(words))
	for i := 0; i < len(words); {
		j := i + 1
		for j < len(words) && words[j] == words[i] {
			j++
		}
		entries = append(entries, Entry{Word: words[i], Count: j - i})
		i = j
	}
	return entries
}

// Total returns the sum of all entry counts.
func Total(entries []Entry) int {
	var total int
	for _, e := range entries {
		total += e.Count
	}
	return total
}

// Top returns up to n entries with the highest counts, ties in word order.
func Top(entries []Entry, n int) []Entry {
	if n <= 0 {
		return nil
	}
	ranked := slices.Clone(entries)
	slices.SortStableFunc(ranked, func(a, b Entry) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return Compare(a.Word, b.Word)
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
