// Package tokenize splits text into alternating separator and word-slot
// tokens. Word slots hold words, numbers, URLs and the punctuation runs
// that may end a sentence; separators hold everything between them.
package tokenize

import (
	"strings"
	"unicode/utf8"
)

// A matcher reports the byte length of the token starting at s[0:], or 0
// if it does not apply.
type matcher func(s string) int

// matchers are tried in order at each position; the first that matches
// wins.
var matchers = []matcher{
	matchURL,
	matchWord,
	matchNumber,
	matchBangRun,
	matchDots,
}

// Tokens is a token stream. Even indices are separators (possibly empty),
// odd indices are word slots. A non-empty stream always has odd length.
type Tokens []string

// Split tokenizes text. Joining the result reproduces text exactly.
func Split(text string) Tokens {
	toks := Tokens{}
	sepStart := 0
	i := 0
	for i < len(text) {
		n := matchAt(text[i:])
		if n == 0 {
			_, size := utf8.DecodeRuneInString(text[i:])
			i += size
			continue
		}
		toks = append(toks, text[sepStart:i], text[i:i+n])
		i += n
		sepStart = i
	}
	return append(toks, text[sepStart:])
}

func matchAt(s string) int {
	for _, m := range matchers {
		if n := m(s); n > 0 {
			return n
		}
	}
	return 0
}

// Words returns the word-slot tokens.
func (t Tokens) Words() []string {
	out := make([]string, 0, len(t)/2)
	for k := 1; k < len(t); k += 2 {
		out = append(out, t[k])
	}
	return out
}

// Separators returns the separator tokens.
func (t Tokens) Separators() []string {
	out := make([]string, 0, len(t)/2+1)
	for k := 0; k < len(t); k += 2 {
		out = append(out, t[k])
	}
	return out
}

// String joins the tokens back into source text.
func (t Tokens) String() string {
	return strings.Join(t, "")
}
