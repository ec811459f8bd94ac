package analysis

import (
	"fmt"
	"unicode/utf8"
)

// NextWordOrSeparator returns the maximal run of runes starting at byte offset pos
// whose runes are all separators or all non-separators, matching the class of
// the rune at pos.
//
// pos must satisfy 0 <= pos < len(text) and lie on a rune boundary.
func NextWordOrSeparator(text string, pos int, seps *Separators) string {
	if pos < 0 || pos >= len(text) {
		panic(fmt.Sprintf("analysis: position %d out of range [0, %d)", pos, len(text)))
	}

	first, size := utf8.DecodeRuneInString(text[pos:])
	isSep := seps.Contains(first)

	end := pos + size
	for end < len(text) {
		r, n := utf8.DecodeRuneInString(text[end:])
		if seps.Contains(r) != isSep {
			break
		}
		end += n
	}

	return text[pos:end]
}
