package sentence

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/rcliao/readability/internal/tokenize"
)

func equalSentences(a []Sentence, b [][]string) bool {
	return slices.EqualFunc(a, b, func(s Sentence, t []string) bool {
		return slices.Equal(s, t)
	})
}

func TestSplit(t *testing.T) {
	tests := []struct {
		text string
		want [][]string
	}{
		{"", [][]string{{""}}},
		{"  ", [][]string{{"  "}}},
		{"Hello", [][]string{{"", "Hello", ""}}},
		{
			"Dr. Smith went home. He was tired.",
			[][]string{
				{"", "Dr", "", ".", " ", "Smith", " ", "went", " ", "home", "", ".", " "},
				{"", "He", " ", "was", " ", "tired", "", ".", ""},
			},
		},
		{
			"What?! Really.",
			[][]string{
				{"", "What", "", "?!", " "},
				{"", "Really", "", ".", ""},
			},
		},
		{
			"Visit http://example.com/page for info.",
			[][]string{{"", "Visit", " ", "http://example.com/page", " ", "for", " ", "info", "", ".", ""}},
		},
		{
			"The U.S. economy grew 2.5% in 1999. Prices rose.",
			[][]string{
				{"", "The", " ", "U.S", "", ".", " ", "economy", " ", "grew", " ", "2.5", "% ", "in", " ", "1999", "", ".", " "},
				{"", "Prices", " ", "rose", "", ".", ""},
			},
		},
		{
			"Jr.'s car... is here.. ok",
			[][]string{
				{"", "Jr", "", ".'s", " ", "car", "", "...", " ", "is", " ", "here", "", "..", " "},
				{"", "ok", ""},
			},
		},
		{
			`He said "Stop." Then left.`,
			[][]string{
				{"", "He", " ", "said", ` "`, "Stop", "", `."`, " "},
				{"", "Then", " ", "left", "", ".", ""},
			},
		},
		{
			"It was Jan. 5 when we met. Then Feb. Came.",
			[][]string{
				{"", "It", " ", "was", " ", "Jan", "", ".", " ", "5", " ", "when", " ", "we", " ", "met", "", ".", " "},
				{"", "Then", " ", "Feb", "", ".", " "},
				{"", "Came", "", ".", ""},
			},
		},
		{
			"I saw J. R. R. Tolkien. He wrote.",
			[][]string{
				{"", "I", " ", "saw", " ", "J", "", ".", " ", "R", "", ".", " ", "R", "", ".", " ", "Tolkien", "", ".", " "},
				{"", "He", " ", "wrote", "", ".", ""},
			},
		},
		{
			"Mr.Smith is here. Yes",
			[][]string{
				{"", "Mr.Smith", " ", "is", " ", "here", "", ".", " "},
				{"", "Yes", ""},
			},
		},
		{"Go. ", [][]string{{"", "Go", "", ".", " "}}},
		{
			" Hi. There.",
			[][]string{
				{" ", "Hi", "", ".", " "},
				{"", "There", "", ".", ""},
			},
		},
		{
			`Wait!!) no?" yes`,
			[][]string{
				{"", "Wait", "", "!!)", " "},
				{"", "no", "", `?"`, " "},
				{"", "yes", ""},
			},
		},
		{
			"See Fig. 3 for details. Also the Act. It passed.",
			[][]string{
				{"", "See", " ", "Fig", "", ".", " ", "3", " ", "for", " ", "details", "", ".", " "},
				{"", "Also", " ", "the", " ", "Act", "", ".", " "},
				{"", "It", " ", "passed", "", ".", ""},
			},
		},
		{"A. B", [][]string{{"", "A", "", ".", " ", "B", ""}}},
		{"x.)  Next one.", [][]string{{"", "x", "", ".)", "  ", "Next", " ", "one", "", ".", ""}}},
		{
			`end."Next`,
			[][]string{
				{"", "end", "", `."`, ""},
				{"", "Next", ""},
			},
		},
		{
			"He left.  She stayed.\nThen",
			[][]string{
				{"", "He", " ", "left", "", ".", "  "},
				{"", "She", " ", "stayed", "", ".", "\n"},
				{"", "Then", ""},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := Split(tt.text)
			if err != nil {
				t.Fatalf("Split(%q): %v", tt.text, err)
			}
			if !equalSentences(got, tt.want) {
				t.Errorf("Split(%q)\n got %q\nwant %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestSplit_Coverage(t *testing.T) {
	text := "Prof. Ramírez arrived at 9.30 a.m. sharp! Was he late? No. " +
		"He said so... and left.\n\nSee pp. 4-5 (the U.N. report).  Done."
	got, err := Split(text)
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	for i, s := range got {
		if len(s)%2 != 1 {
			t.Errorf("sentence %d has even length %d", i, len(s))
		}
		if i > 0 && s[0] != "" && strings.TrimSpace(s[0]) == "" {
			t.Errorf("sentence %d starts with whitespace %q", i, s[0])
		}
		b.WriteString(s.String())
	}
	if b.String() != text {
		t.Errorf("sentences rejoin to %q, want %q", b.String(), text)
	}
}

func TestDetector_CustomAbbreviations(t *testing.T) {
	text := "We met Mrs. Ortiz and paid approx. Ten dollars. Then we left."

	got, err := Split(text)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("default tables: got %d sentences, want 3: %q", len(got), got)
	}

	abbr := DefaultAbbreviations().Extend([]string{"approx"}, nil, nil)
	got, err = NewDetector(abbr).Split(tokenize.Split(text))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("with approx: got %d sentences, want 2: %q", len(got), got)
	}

	bare := NewAbbreviations(nil, nil, []string{"Mrs"})
	got, err = NewDetector(bare).Split(tokenize.Split(text))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 {
		t.Fatalf("Mrs excepted: got %d sentences, want 4: %q", len(got), got)
	}
	if want := []string{"", "We", " ", "met", " ", "Mrs", "", ".", " "}; !slices.Equal(got[0], want) {
		t.Errorf("first sentence = %q, want %q", got[0], want)
	}
}

func TestIsAbbreviation(t *testing.T) {
	a := DefaultAbbreviations()
	tests := []struct {
		word, next string
		want       bool
	}{
		{"Dr", "Smith", true},
		{"U.S", "Army", true},
		{"e.g", "This", true},
		{"J", "R", true},
		{"Fig", "3", true},
		{"Jan", "5", true},
		{"Jan", "Smith", false},
		{"Sept", "30", true},
		{"Act", "It", false},
		{"Inn", "The", false},
		{"home", "He", false},
		{"dr", "Smith", false},
		{"DR", "Smith", false},
	}
	for _, tt := range tests {
		if got := a.IsAbbreviation(tt.word, tt.next); got != tt.want {
			t.Errorf("IsAbbreviation(%q, %q) = %v, want %v", tt.word, tt.next, got, tt.want)
		}
	}
}

func TestDetector_InvariantErrors(t *testing.T) {
	d := NewDetector(nil)

	_, err := d.Split(tokenize.Tokens{})
	if !errors.Is(err, ErrInvariant) {
		t.Errorf("empty stream: err = %v, want ErrInvariant", err)
	}

	_, err = d.Split(tokenize.Tokens{"", "word"})
	var ie *InvariantError
	if !errors.As(err, &ie) {
		t.Fatalf("even stream: err = %v, want *InvariantError", err)
	}
	if ie.Offset != len("word") {
		t.Errorf("Offset = %d, want %d", ie.Offset, len("word"))
	}
}
