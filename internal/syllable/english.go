package syllable

import (
	"regexp"
	"strings"
)

// Patterns that indicate the vowel-cluster count is one too high.
var decrementPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[cfhklmnprsvwxz]ed$`),
	regexp.MustCompile(`[ct]ia[ln]`),
	regexp.MustCompile(`[tvrd]es$`),
}

// Patterns that indicate a vowel cluster splits into two syllables, or a
// syllable with no written vowel.
var incrementPatterns = []*regexp.Regexp{
	regexp.MustCompile(`.yi[^aeiou]`),
	regexp.MustCompile(`[bgpt]led$`),
	regexp.MustCompile(`[bgpt]l$`),
	regexp.MustCompile(`ia`),
	regexp.MustCompile(`ios?$`),
	regexp.MustCompile(`isms?$`),
	regexp.MustCompile(`[ntdlrhxco]ua`),
	regexp.MustCompile(`[erl]ier`),
	regexp.MustCompile(`quie`),
	regexp.MustCompile(`[lrngdhtmpfs]eo`),
	regexp.MustCompile(`^mc`),
}

var vowelRuns = regexp.MustCompile(`[aeiouy]+`)

var apostrophes = strings.NewReplacer("'", "", "’", "")

// CountEnglish is the uncorrected English heuristic: vowel clusters after
// dropping apostrophes and one trailing "e", adjusted by the decrement and
// increment patterns, with a floor of 1.
func CountEnglish(word string) int {
	w := apostrophes.Replace(strings.ToLower(word))
	w = strings.TrimSuffix(w, "e")
	n := len(vowelRuns.FindAllStringIndex(w, -1))
	for _, rx := range decrementPatterns {
		if rx.MatchString(w) {
			n--
		}
	}
	for _, rx := range incrementPatterns {
		if rx.MatchString(w) {
			n++
		}
	}
	if n <= 0 {
		n = 1
	}
	return n
}
