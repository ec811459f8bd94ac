package analysis

import (
	"github.com/RoaringBitmap/roaring"
)

// DefaultSeparatorChars lists every rune that separates words.
const DefaultSeparatorChars = " \t\n\r,-.!?[]';:/()"

// Separators is a read-only set of separator runes backed by a bitmap of code points.
type Separators struct {
	bm *roaring.Bitmap
}

var defaultSeparators = NewSeparators(DefaultSeparatorChars)

// DefaultSeparators returns the fixed separator set used for word counting.
func DefaultSeparators() *Separators {
	return defaultSeparators
}

// NewSeparators builds a separator set from the runes of chars.
func NewSeparators(chars string) *Separators {
	bm := roaring.New()
	for _, r := range chars {
		bm.Add(uint32(r))
	}
	bm.RunOptimize()
	return &Separators{bm: bm}
}

// Contains reports whether r is a separator.
func (s *Separators) Contains(r rune) bool {
	if r < 0 {
		return false
	}
	return s.bm.Contains(uint32(r))
}

// Len returns the number of distinct separator runes.
func (s *Separators) Len() int {
	return int(s.bm.GetCardinality())
}

// Runes returns the separator runes in code point order.
func (s *Separators) Runes() []rune {
	codes := s.bm.ToArray()
	out := make([]rune, len(codes))
	for i, c := range codes {
		out[i] = rune(c)
	}
	return out
}
