// Package mdtext extracts readable prose from Markdown: the plain text of
// each paragraph and heading, without markup, code blocks or HTML.
package mdtext

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/rcliao/readability/internal/chunker"
)

// ExtractPlainText returns the text under node with inline markup removed.
// Link and image labels are kept; line breaks become single spaces.
func ExtractPlainText(node ast.Node, source []byte) string {
	var buf strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Text:
			buf.Write(n.Segment.Value(source))
			if n.SoftLineBreak() || n.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(n.Value)
		case *ast.AutoLink:
			buf.Write(n.Label(source))
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}

// Paragraphs parses source and returns one chunk per paragraph, list item
// text or heading in document order, with the source lines it spans.
func Paragraphs(source []byte) []chunker.ChunkResult {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))
	var out []chunker.ChunkResult
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
		default:
			return ast.WalkContinue, nil
		}
		t := ExtractPlainText(n, source)
		if t != "" {
			start, end := lineRange(n, source)
			out = append(out, chunker.ChunkResult{Text: t, StartLine: start, EndLine: end})
		}
		return ast.WalkSkipChildren, nil
	})
	return out
}

// lineRange returns the 1-based first and last source lines of a block.
func lineRange(n ast.Node, source []byte) (int, int) {
	lines := n.Lines()
	if lines.Len() == 0 {
		return 0, 0
	}
	first := lines.At(0)
	last := lines.At(lines.Len() - 1)
	start := bytes.Count(source[:first.Start], []byte("\n")) + 1
	end := bytes.Count(source[:max(last.Start, last.Stop-1)], []byte("\n")) + 1
	return start, end
}
