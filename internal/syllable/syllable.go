// Package syllable estimates syllable counts for English and Spanish words.
package syllable

import (
	"strings"
	"unicode"

	"github.com/rcliao/readability/internal/bloom"
)

// Language selects a syllable heuristic.
type Language string

const (
	English Language = "eng"
	Spanish Language = "spa"
)

// ParseLanguage accepts "eng"/"english"/"en" and "spa"/"spanish"/"es".
func ParseLanguage(s string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "eng", "english", "en":
		return English, true
	case "spa", "spanish", "es":
		return Spanish, true
	}
	return "", false
}

// Estimator counts syllables in a single word-slot token.
type Estimator interface {
	Count(word string) int
}

// Counter is an Estimator for one language, optionally corrected by a
// pair of filters. It holds no mutable state and may be shared.
type Counter struct {
	lang    Language
	filters *bloom.Set
}

// NewCounter returns a Counter for lang. filters may be nil, in which case
// the heuristic count is returned uncorrected.
func NewCounter(lang Language, filters *bloom.Set) *Counter {
	return &Counter{lang: lang, filters: filters}
}

// Language returns the heuristic the counter applies.
func (c *Counter) Language() Language { return c.lang }

// Count returns 0 for tokens with no letters or digits (sentence
// terminators, stray punctuation) and at least 1 for everything else.
func (c *Counter) Count(word string) int {
	if !hasAlnum(word) {
		return 0
	}
	n := Correct(word, c.lang.heuristic(word), c.filters)
	if n < 1 {
		n = 1
	}
	return n
}

// Correct applies the filter correction to a heuristic count n: one more
// syllable for undercount members, otherwise one fewer for overcount
// members, never below 1.
func Correct(word string, n int, filters *bloom.Set) int {
	if filters == nil {
		return n
	}
	key := strings.ToLower(word)
	if filters.Undercount.Contains(key) {
		n++
	} else if filters.Overcount.Contains(key) {
		n--
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (l Language) heuristic(word string) int {
	if l == Spanish {
		return CountSpanish(word)
	}
	return CountEnglish(word)
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
