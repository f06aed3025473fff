// Package chunker splits plain text files into paragraph chunks for the
// readability reader.
package chunker

import (
	"strings"
)

// DefaultJoiner replaces the line breaks inside a paragraph.
const DefaultJoiner = " "

// Options configures chunking behavior.
type Options struct {
	Joiner string
}

// DefaultOptions returns default chunking options.
func DefaultOptions() Options {
	return Options{Joiner: DefaultJoiner}
}

// ChunkResult represents a chunk with its position in the original text.
type ChunkResult struct {
	Text      string
	StartLine int
	EndLine   int
}

// Chunk splits text into paragraphs. Lines accumulate until a blank (or
// whitespace-only) line, which closes the paragraph; the paragraph's lines,
// blank line included, are joined with opts.Joiner. Line breaks may be
// \n, \r\n or \r. Empty chunks are dropped.
func Chunk(text string, opts Options) []ChunkResult {
	if opts.Joiner == "" {
		opts = DefaultOptions()
	}

	lines := splitLines(text)
	var results []ChunkResult
	var current []string
	startLine := 1

	flush := func(endLine int) {
		t := strings.Join(current, opts.Joiner)
		if t != "" {
			results = append(results, ChunkResult{Text: t, StartLine: startLine, EndLine: endLine})
		}
		current = nil
		startLine = endLine + 1
	}

	for i, line := range lines {
		current = append(current, line)
		if strings.TrimSpace(line) == "" {
			flush(i + 1)
		}
	}
	if len(current) > 0 {
		flush(len(lines))
	}
	return results
}

// Texts returns the text of each chunk.
func Texts(chunks []ChunkResult) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Text
	}
	return out
}

// splitLines splits on any line break; a final line break does not start
// a new line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
