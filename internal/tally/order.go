// Package tally orders collected words and counts their occurrences.
package tally

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CompareFold compares a and b case-insensitively, rune by rune. Each differing
// pair of runes is compared after mapping to upper case and then to lower case.
func CompareFold(a, b string) int {
	for a != "" && b != "" {
		ra, na := utf8.DecodeRuneInString(a)
		rb, nb := utf8.DecodeRuneInString(b)
		a, b = a[na:], b[nb:]

		if ra == rb {
			continue
		}
		ra, rb = unicode.ToUpper(ra), unicode.ToUpper(rb)
		if ra == rb {
			continue
		}
		ra, rb = unicode.ToLower(ra), unicode.ToLower(rb)
		if ra != rb {
			if ra < rb {
				return -1
			}
			return 1
		}
	}

	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	default:
		return 1
	}
}

// Compare is the total order used for word listings: case-insensitive first,
// then byte-wise so that words differing only in case still have a fixed order.
func Compare(a, b string) int {
	if c := CompareFold(a, b); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// Sort orders words in place by Compare.
func Sort(words []string) {
	slices.SortFunc(words, Compare)
}

// IsSorted reports whether words are ordered by Compare.
func IsSorted(words []string) bool {
	return slices.IsSortedFunc(words, Compare)
}
