package syllable

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	silentU    = regexp.MustCompile(`([gq])u([ei])`)
	consonants = regexp.MustCompile(`ch|ll|rr|[bcdfgjklmnpqrstvwxzñÑ]`)
)

const (
	strong         = "aeo"
	strongAccented = "aeoáéó"
	weakAccented   = "íú"
)

// CountSpanish splits the word on consonants (ch, ll and rr count as one)
// and scores each vowel run between them: one vowel is one syllable, two
// vowels are one syllable when they form a diphthong and two when they
// form a hiatus, and three or more vowels are two syllables. "h" is
// silent and the "u" of gue/gui/que/qui is dropped.
func CountSpanish(word string) int {
	w := strings.ReplaceAll(strings.ToLower(word), "h", "")
	w = silentU.ReplaceAllString(w, "$1$2")

	n := 0
	prev := 0
	for _, loc := range consonants.FindAllStringIndex(w, -1) {
		n += vowelRunSyllables(w[prev:loc[0]])
		prev = loc[1]
	}
	n += vowelRunSyllables(w[prev:])
	return n
}

func vowelRunSyllables(v string) int {
	switch utf8.RuneCountInString(v) {
	case 0:
		return 0
	case 1:
		return 1
	case 2:
		v0, size := utf8.DecodeRuneInString(v)
		v1, _ := utf8.DecodeRuneInString(v[size:])
		if hiatus(v0, v1) {
			return 2
		}
		return 1
	default:
		return 2
	}
}

// hiatus reports whether two adjacent vowels are pronounced separately:
// two strong vowels, or a strong vowel next to an accented weak one.
func hiatus(a, b rune) bool {
	in := func(set string, r rune) bool { return strings.ContainsRune(set, r) }
	if in(strongAccented, a) && in(strongAccented, b) {
		return true
	}
	return (in(strong, a) && in(weakAccented, b)) || (in(weakAccented, a) && in(strong, b))
}
