package analysis

import (
	"unicode/utf8"
)

// Token is a maximal run of separator or non-separator runes within a line.
type Token struct {
	Text      string
	Offset    int // byte offset within the line
	Separator bool
}

// Analyzer defines the interface for line analysis.
type Analyzer interface {
	Analyze(line string) []Token
}

var _ Analyzer = (*Simple)(nil)

// Simple splits lines on a separator set without altering case.
type Simple struct {
	seps *Separators
}

// NewSimple returns an analyzer over seps, or the default separators when seps is nil.
func NewSimple(seps *Separators) *Simple {
	if seps == nil {
		seps = DefaultSeparators()
	}
	return &Simple{seps: seps}
}

// Analyze returns every token of line in order, separator runs included.
func (a *Simple) Analyze(line string) []Token {
	var tokens []Token
	for pos := 0; pos < len(line); {
		text := NextWordOrSeparator(line, pos, a.seps)
		r, _ := utf8.DecodeRuneInString(text)
		tokens = append(tokens, Token{
			Text:      text,
			Offset:    pos,
			Separator: a.seps.Contains(r),
		})
		pos += len(text)
	}
	return tokens
}

// Words returns only the non-separator tokens of line.
func (a *Simple) Words(line string) []string {
	var words []string
	for _, tok := range a.Analyze(line) {
		if !tok.Separator {
			words = append(words, tok.Text)
		}
	}
	return words
}
