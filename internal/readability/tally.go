package readability

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tally counts occurrences of word-slot and separator tokens. A nil
// *Tally ignores everything added to it.
type Tally struct {
	Words      map[string]int `json:"words"`
	Separators map[string]int `json:"separators"`
}

// NewTally returns an empty Tally.
func NewTally() *Tally {
	return &Tally{Words: map[string]int{}, Separators: map[string]int{}}
}

// AddWord counts a word-slot token.
func (t *Tally) AddWord(tok string) {
	if t != nil {
		t.Words[tok]++
	}
}

// AddSeparator counts a separator token.
func (t *Tally) AddSeparator(tok string) {
	if t != nil {
		t.Separators[tok]++
	}
}

// Category is a coarse shape class of a word-slot token.
type Category string

const (
	CategoryLower       Category = "lower"
	CategoryUpper       Category = "upper"
	CategoryCap         Category = "cap"
	CategoryApostrophed Category = "apostrophed"
	CategoryHyphenated  Category = "hyphenated"
	CategoryAlpha       Category = "alpha"
	CategoryNumber      Category = "number"
	CategoryNumberPlus  Category = "number+"
	CategoryURL         Category = "URL"
	CategoryEndsDot     Category = "ends_dot"
	CategoryLeftovers   Category = "leftovers"
)

// Categories lists every Category in the order Classify tests them.
var Categories = []Category{
	CategoryLower, CategoryUpper, CategoryCap, CategoryApostrophed,
	CategoryHyphenated, CategoryAlpha, CategoryNumber, CategoryNumberPlus,
	CategoryURL, CategoryEndsDot, CategoryLeftovers,
}

// Classify returns the first category tok belongs to.
func Classify(tok string) Category {
	switch {
	case isAlpha(tok) && isLower(tok):
		return CategoryLower
	case isAlpha(tok) && isUpper(tok):
		return CategoryUpper
	case isCapitalized(tok):
		return CategoryCap
	case strings.Contains(tok, "'") && isAlpha(strings.Replace(tok, "'", "", 1)):
		return CategoryApostrophed
	case strings.Contains(tok, "-") && isAlpha(strings.ReplaceAll(tok, "-", "")):
		return CategoryHyphenated
	case isAlpha(tok):
		return CategoryAlpha
	case isDigits(tok):
		return CategoryNumber
	case startsWithDigit(tok) || (strings.HasPrefix(tok, ".") && startsWithDigit(tok[1:])):
		return CategoryNumberPlus
	case strings.HasPrefix(tok, "http:") || strings.HasPrefix(tok, "https:"):
		return CategoryURL
	case strings.HasSuffix(tok, "."):
		return CategoryEndsDot
	}
	return CategoryLeftovers
}

// Entry is one token and how often it occurred.
type Entry struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// Group is the entries of one category.
type Group struct {
	Category Category `json:"category"`
	Entries  []Entry  `json:"entries"`
}

// WordReport groups the tallied words by Category, in Categories order.
// Entries are sorted by descending count, then case-insensitively.
func (t *Tally) WordReport() []Group {
	byCat := map[Category][]Entry{}
	for tok, n := range t.Words {
		c := Classify(tok)
		byCat[c] = append(byCat[c], Entry{Text: tok, Count: n})
	}
	groups := make([]Group, 0, len(Categories))
	for _, c := range Categories {
		entries := byCat[c]
		slices.SortFunc(entries, func(a, b Entry) int {
			return cmp.Or(
				cmp.Compare(b.Count, a.Count),
				cmp.Compare(strings.ToLower(a.Text), strings.ToLower(b.Text)),
				cmp.Compare(a.Text, b.Text),
			)
		})
		groups = append(groups, Group{Category: c, Entries: entries})
	}
	return groups
}

// SeparatorReport lists the tallied separators by descending count.
func (t *Tally) SeparatorReport() []Entry {
	entries := make([]Entry, 0, len(t.Separators))
	for tok, n := range t.Separators {
		entries = append(entries, Entry{Text: tok, Count: n})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), cmp.Compare(a.Text, b.Text))
	})
	return entries
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// isLower reports whether s has a cased rune and no upper or title case
// runes.
func isLower(s string) bool {
	cased := false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			return false
		case unicode.IsLower(r):
			cased = true
		}
	}
	return cased
}

// isUpper reports whether s has a cased rune and no lower case runes.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		switch {
		case unicode.IsLower(r) || unicode.IsTitle(r):
			return false
		case unicode.IsUpper(r):
			cased = true
		}
	}
	return cased
}

func isCapitalized(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return isAlpha(s) && len(s) > size && unicode.IsUpper(r) && isLower(s[size:])
}

func startsWithDigit(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size > 0 && unicode.IsDigit(r)
}
