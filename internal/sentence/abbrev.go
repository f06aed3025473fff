package sentence

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// abbrevPattern matches initials ("J", "U.S", "e.g") and capitalised
// vowel-less words ("Dr", "Mr", "Jr").
var abbrevPattern = regexp.MustCompile(`^(?:[A-Za-z](?:\.[A-Za-z0-9])*|[A-Z][bcdfghj-np-tvwxz]+)$`)

var defaultKnown = []string{
	"etc", "Fig", "No", "Co", "Sen", "Gen", "Rev", "Gov", "lb", "Sec", "vs",
	"fig", "Rep", "Ave", "cm", "Corp", "mg", "mm", "Figs", "gm", "ft",
	"figs", "Col", "cf", "lbs", "Capt", "cu", "Atty", "Prof", "pp", "sq",
	"dia", "cc", "yrs", "Hon", "Stat", "Ref", "hr", "Dist", "Messrs",
	"Dept", "sec", "eqn", "Reps", "Supt", "dept", "Rte", "oz", "Vol", "ca",
	"kc", "hp", "Prop", "Mmes", "Brig", "USN", "Cir", "Bros", "msec", "viz",
	"var", "seq", "prop", "nos", "ml", "eqns", "yd", "Spec", "Maj",
	"Sr", "Sra", "Srta",
}

var defaultMonths = []string{
	"Jan", "Feb", "Mar", "Apr", "Jun", "Jul", "Aug", "Sep", "Sept",
	"Oct", "Nov", "Dec",
}

// Words that look like abbreviations but usually are not.
var defaultExceptions = []string{"Act", "Arts", "End", "Inn"}

type wordSet map[string]struct{}

func newWordSet(words ...[]string) wordSet {
	s := wordSet{}
	for _, list := range words {
		for _, w := range list {
			s[w] = struct{}{}
		}
	}
	return s
}

func (s wordSet) has(w string) bool {
	_, ok := s[w]
	return ok
}

// Abbreviations holds the word tables used to decide whether a dot ends
// an abbreviation rather than a sentence. Lookups are case-sensitive.
type Abbreviations struct {
	known      wordSet
	months     wordSet
	exceptions wordSet
}

// DefaultAbbreviations returns the built-in tables, tuned on English
// prose with a few Spanish forms of address.
func DefaultAbbreviations() *Abbreviations {
	return NewAbbreviations(defaultKnown, defaultMonths, defaultExceptions)
}

// NewAbbreviations builds tables from explicit word lists.
func NewAbbreviations(known, months, exceptions []string) *Abbreviations {
	return &Abbreviations{
		known:      newWordSet(known),
		months:     newWordSet(months),
		exceptions: newWordSet(exceptions),
	}
}

// Extend returns a copy of a with the given words added.
func (a *Abbreviations) Extend(known, months, exceptions []string) *Abbreviations {
	return &Abbreviations{
		known:      newWordSet(a.known.list(), known),
		months:     newWordSet(a.months.list(), months),
		exceptions: newWordSet(a.exceptions.list(), exceptions),
	}
}

func (s wordSet) list() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	return out
}

// IsAbbreviation reports whether word, followed by a dot and then next
// (leading whitespace already removed), is an abbreviation. A month only
// counts when a digit follows it ("Jan. 5").
func (a *Abbreviations) IsAbbreviation(word, next string) bool {
	if a.months.has(word) && startsWith(next, unicode.IsDigit) {
		return true
	}
	if a.exceptions.has(word) {
		return false
	}
	return abbrevPattern.MatchString(word) || a.known.has(word)
}

func startsWith(s string, ok func(rune) bool) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size > 0 && ok(r)
}
