// Package sentence groups a token stream into sentences. Terminal
// punctuation is resolved without a parser: "!" and "?" always end a
// sentence, and a dot ends one unless the surrounding tokens say it closes
// a number, an ellipsis, a possessive or an abbreviation.
package sentence

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rcliao/readability/internal/tokenize"
)

// ErrInvariant is wrapped by every InvariantError.
var ErrInvariant = errors.New("sentence: token stream invariant violated")

// InvariantError reports a malformed token stream or sentence. It points
// at a bug in the tokenizer or detector, never at bad input text.
type InvariantError struct {
	Offset int // byte offset in the source text
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("sentence: %s at byte %d", e.Reason, e.Offset)
}

func (e *InvariantError) Unwrap() error { return ErrInvariant }

// Sentence is a run of tokens that starts and ends with a separator, so it
// always has odd length. Odd indices hold word-slot tokens.
type Sentence []string

// String joins the tokens back into source text.
func (s Sentence) String() string { return strings.Join(s, "") }

// Words returns the word-slot tokens.
func (s Sentence) Words() []string { return tokenize.Tokens(s).Words() }

// Detector splits token streams into sentences.
type Detector struct {
	abbr *Abbreviations
}

// NewDetector returns a Detector using abbr, or the built-in tables when
// abbr is nil.
func NewDetector(abbr *Abbreviations) *Detector {
	if abbr == nil {
		abbr = DefaultAbbreviations()
	}
	return &Detector{abbr: abbr}
}

// Split tokenizes text and splits it with the built-in tables.
func Split(text string) ([]Sentence, error) {
	return NewDetector(nil).Split(tokenize.Split(text))
}

// verdict is the detector's state after reading a word-slot token.
type verdict int

const (
	continues  verdict = iota // keep scanning the current sentence
	ends                      // close the current sentence
	pendingDot                // a lone dot; decide from its window
)

// window is the four-token neighbourhood of a lone dot: the word and
// separator before it, and the separator and word after it joined.
type window struct {
	prevWord string
	prevSep  string
	hasPrev  bool
	next     string
}

// Split partitions toks into sentences. Every word-slot token lands in
// exactly one sentence, and joining all sentences reproduces the text.
func (d *Detector) Split(toks tokenize.Tokens) ([]Sentence, error) {
	n := len(toks)
	if n == 0 {
		return nil, &InvariantError{Reason: "empty token stream"}
	}
	if n%2 == 0 {
		return nil, &InvariantError{Offset: len(toks.String()), Reason: "even token count"}
	}

	var sentences []Sentence
	var cur Sentence
	for k := 1; k < n; k += 2 {
		cur = append(cur, toks[k-1], toks[k])
		last := k+2 >= n

		v := terminal(toks[k], last)
		if v == pendingDot {
			v = d.resolveDot(windowAt(toks, k))
		}
		if v == continues && !last {
			continue
		}
		sentences = append(sentences, append(cur, ""))
		cur = nil
	}

	// The final separator belongs to the last sentence.
	if len(sentences) == 0 {
		sentences = []Sentence{{toks[n-1]}}
	} else {
		s := sentences[len(sentences)-1]
		s[len(s)-1] = toks[n-1]
	}

	rehomeWhitespace(sentences)
	if err := check(sentences); err != nil {
		return nil, err
	}
	return sentences, nil
}

// windowAt builds the window around the dot at toks[k], which is never
// the last token.
func windowAt(toks tokenize.Tokens, k int) window {
	w := window{prevSep: toks[k-1], next: toks[k+1] + toks[k+2]}
	if k >= 3 {
		w.prevWord = toks[k-2]
		w.hasPrev = true
	}
	return w
}

// terminal classifies a word-slot token on its own.
func terminal(tok string, last bool) verdict {
	switch {
	case tok == "" || !strings.ContainsRune("!?.", rune(tok[0])):
		return continues
	case last:
		return ends
	case tok[0] != '.':
		return ends
	case len(tok) > 1 && '0' <= tok[1] && tok[1] <= '9':
		return continues
	case strings.HasPrefix(tok, "..."):
		return continues
	case tok == "..":
		return ends
	case strings.HasPrefix(tok, ".'") || strings.HasPrefix(tok, ".’"):
		return continues
	case tok == "." || tok == ".)":
		return pendingDot
	}
	return ends
}

// resolveDot decides a lone dot by looking one token pair either side.
func (d *Detector) resolveDot(w window) verdict {
	if !startsWith(w.next, unicode.IsSpace) {
		return continues
	}
	next := strings.TrimLeftFunc(w.next, unicode.IsSpace)
	r, _ := utf8.DecodeRuneInString(next)
	switch {
	case unicode.IsLower(r):
		return continues
	case !unicode.IsUpper(r) && !unicode.IsDigit(r):
		return ends
	case !w.hasPrev:
		return ends
	case w.prevSep != "":
		return ends
	case d.abbr.IsAbbreviation(w.prevWord, next):
		return continues
	}
	return ends
}

// rehomeWhitespace moves whitespace that opens a sentence onto the end of
// the one before, so sentences after the first start with their text.
func rehomeWhitespace(sentences []Sentence) {
	for i := 0; i+1 < len(sentences); i++ {
		next := sentences[i+1]
		cut := lastSpaceEnd(next[0])
		if cut < 0 {
			continue
		}
		cur := sentences[i]
		cur[len(cur)-1] += next[0][:cut]
		next[0] = next[0][cut:]
	}
}

// lastSpaceEnd returns the byte offset just past the last whitespace rune
// in s, or -1 if s has none.
func lastSpaceEnd(s string) int {
	end := -1
	for i, r := range s {
		if unicode.IsSpace(r) {
			end = i + utf8.RuneLen(r)
		}
	}
	return end
}

func check(sentences []Sentence) error {
	offset := 0
	for i, s := range sentences {
		if len(s)%2 == 0 {
			return &InvariantError{Offset: offset, Reason: fmt.Sprintf("sentence %d has even length %d", i, len(s))}
		}
		offset += len(s.String())
	}
	return nil
}
