package readability

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultAnnotation renders a word followed by its syllable count in
// braces, e.g. "syllable{3}".
const DefaultAnnotation = "%s{%d}"

// annotator rewrites a word token to embed its syllable count.
type annotator func(word string, count int) string

// newAnnotator parses an annotation template. A template containing both
// {word} and {count} is expanded by name; anything else is a printf
// format taking the word then the count.
func newAnnotator(tmpl string) annotator {
	if tmpl == "" {
		tmpl = DefaultAnnotation
	}
	if strings.Contains(tmpl, "{word}") && strings.Contains(tmpl, "{count}") {
		return func(word string, count int) string {
			return strings.NewReplacer("{word}", word, "{count}", strconv.Itoa(count)).Replace(tmpl)
		}
	}
	return func(word string, count int) string {
		return fmt.Sprintf(tmpl, word, count)
	}
}
