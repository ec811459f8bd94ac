package tally

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCompareFold(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"apple", "APPLE", 0},
		{"apple", "Banana", -1},
		{"Zebra", "apple", 1},
		{"app", "apple", -1},
		{"Ábc", "ábc", 0},
		{"straße", "STRASSE", 1}, // ß has no single-rune upper case
	}

	for _, tt := range tests {
		got := CompareFold(tt.a, tt.b)
		if sign(got) != tt.expected {
			t.Errorf("CompareFold(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestCompare_TieBreak(t *testing.T) {
	assert.Negative(t, Compare("Apple", "apple"))
	assert.Positive(t, Compare("apple", "Apple"))
	assert.Zero(t, Compare("apple", "apple"))
	assert.Negative(t, Compare("apple", "Apples"))
}

func TestSort_RoundTripScenario(t *testing.T) {
	words := []string{"the", "quick", "brown", "fox", "the", "Fox", "jumps"}
	Sort(words)

	assert.Equal(t, []string{"brown", "Fox", "fox", "jumps", "quick", "the", "the"}, words)
	assert.True(t, IsSorted(words))
}

func TestCollapse(t *testing.T) {
	entries := Collapse([]string{"brown", "Fox", "fox", "jumps", "quick", "the", "the"})

	expected := []Entry{
		{"brown", 1}, {"Fox", 1}, {"fox", 1}, {"jumps", 1}, {"quick", 1}, {"the", 2},
	}
	assert.Equal(t, expected, entries)
}

func TestCollapse_Empty(t *testing.T) {
	assert.Empty(t, Collapse(nil))
}

func TestTop(t *testing.T) {
	entries := []Entry{{"a", 1}, {"B", 3}, {"c", 3}, {"d", 2}}

	assert.Equal(t, []Entry{{"B", 3}, {"c", 3}}, Top(entries, 2))
	assert.Len(t, Top(entries, 10), 4)
	assert.Nil(t, Top(entries, 0))
	// input is left untouched
	assert.Equal(t, "a", entries[0].Word)
}

var wordGen = rapid.StringOfN(rapid.RuneFrom([]rune("aAbBzZéÉß")), 0, 6, -1)

func TestCompare_TotalOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := wordGen.Draw(t, "a")
		b := wordGen.Draw(t, "b")
		c := wordGen.Draw(t, "c")

		if sign(Compare(a, b)) != -sign(Compare(b, a)) {
			t.Fatalf("antisymmetry broken for %q, %q", a, b)
		}
		if (Compare(a, b) == 0) != (a == b) {
			t.Fatalf("Compare(%q, %q) = 0 for distinct words", a, b)
		}
		if Compare(a, b) <= 0 && Compare(b, c) <= 0 && Compare(a, c) > 0 {
			t.Fatalf("transitivity broken for %q, %q, %q", a, b, c)
		}
	})
}

func TestSort_AdjacentInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		words := rapid.SliceOf(wordGen).Draw(t, "words")
		Sort(words)

		for i := 1; i < len(words); i++ {
			a, b := words[i-1], words[i]
			f := CompareFold(a, b)
			if f > 0 || (f == 0 && a > b) {
				t.Fatalf("%q before %q", a, b)
			}
		}
	})
}

func TestCollapse_ConservesCount(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		words := rapid.SliceOf(wordGen).Draw(t, "words")
		Sort(words)
		entries := Collapse(words)

		if Total(entries) != len(words) {
			t.Fatalf("total %d, want %d", Total(entries), len(words))
		}
		for i, e := range entries {
			if e.Count < 1 {
				t.Fatalf("entry %q has count %d", e.Word, e.Count)
			}
			if i > 0 && entries[i-1].Word == e.Word {
				t.Fatalf("word %q listed twice", e.Word)
			}
		}
	})
}

func TestDictionary(t *testing.T) {
	entries := []Entry{{"brown", 1}, {"Fox", 1}, {"fox", 2}, {"foxes", 1}, {"the", 4}}
	d, err := NewDictionary(entries)
	require.NoError(t, err)

	assert.Equal(t, 5, d.Len())
	assert.Equal(t, 9, d.Total())

	count, ok, err := d.Count("fox")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, count)

	_, ok, err = d.Count("FOX")
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := d.Prefix("fox")
	require.NoError(t, err)
	assert.Equal(t, []Entry{{"fox", 2}, {"foxes", 1}}, got)

	all, err := d.Prefix("")
	require.NoError(t, err)
	assert.Equal(t, []Entry{{"brown", 1}, {"Fox", 1}, {"fox", 2}, {"foxes", 1}, {"the", 4}}, all)

	none, err := d.Prefix("zz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDictionary_Empty(t *testing.T) {
	d, err := NewDictionary(nil)
	require.NoError(t, err)

	assert.Zero(t, d.Len())
	_, ok, err := d.Count("x")
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := d.Prefix("")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPrefixSuccessor(t *testing.T) {
	assert.Nil(t, prefixSuccessor(nil))
	assert.Equal(t, []byte("ab"), prefixSuccessor([]byte("aa")))
	assert.Equal(t, []byte("b"), prefixSuccessor([]byte{'a', 0xff}))
	assert.Nil(t, prefixSuccessor([]byte{0xff, 0xff}))
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
