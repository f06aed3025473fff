package mdtext_test

import (
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/rcliao/readability/internal/mdtext"
)

// parseParagraph parses markdown and returns the first Paragraph node.
func parseParagraph(t *testing.T, src string) (ast.Node, []byte) {
	t.Helper()
	source := []byte(src)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))
	var para ast.Node
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if _, ok := n.(*ast.Paragraph); ok {
				para = n
				return ast.WalkStop, nil
			}
		}
		return ast.WalkContinue, nil
	})
	if para == nil {
		t.Fatal("no paragraph found")
	}
	return para, source
}

func TestExtractPlainText(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"plain", "Hello world.\n", "Hello world."},
		{"link", "Click [here](https://example.com) now.\n", "Click here now."},
		{"emphasis", "This is *important* text.\n", "This is important text."},
		{"strong", "This is **bold** text.\n", "This is bold text."},
		{"code span", "Use `fmt.Println` to print.\n", "Use fmt.Println to print."},
		{"image", "See ![alt text](image.png) here.\n", "See alt text here."},
		{"nested", "Click [**bold link**](https://example.com) now.\n", "Click bold link now."},
		{"soft break", "Hello\nworld.\n", "Hello world."},
		{"autolink", "Go to <https://example.com> today.\n", "Go to https://example.com today."},
		{"inline html", "A <b>bold</b> move.\n", "A bold move."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			para, src := parseParagraph(t, tt.src)
			if got := mdtext.ExtractPlainText(para, src); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParagraphs(t *testing.T) {
	src := "# Title\n" +
		"\n" +
		"First paragraph\n" +
		"spans two lines.\n" +
		"\n" +
		"```\n" +
		"code is skipped.\n" +
		"```\n" +
		"\n" +
		"- Item one.\n" +
		"- Item two.\n" +
		"\n" +
		"> Quoted text.\n"

	got := mdtext.Paragraphs([]byte(src))
	want := []struct {
		text       string
		start, end int
	}{
		{"Title", 1, 1},
		{"First paragraph spans two lines.", 3, 4},
		{"Item one.", 10, 10},
		{"Item two.", 11, 11},
		{"Quoted text.", 13, 13},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d paragraphs, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Text != w.text {
			t.Errorf("paragraph %d: got %q, want %q", i, got[i].Text, w.text)
		}
		if got[i].StartLine != w.start || got[i].EndLine != w.end {
			t.Errorf("paragraph %d: got lines %d-%d, want %d-%d", i, got[i].StartLine, got[i].EndLine, w.start, w.end)
		}
	}
}

func TestParagraphs_Empty(t *testing.T) {
	if got := mdtext.Paragraphs(nil); len(got) != 0 {
		t.Errorf("got %+v, want none", got)
	}
}
