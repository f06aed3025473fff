// Package model defines the persisted analysis report types.
package model

import (
	"time"

	"github.com/rcliao/readability/internal/readability"
)

// Report is one stored analysis of a document. Re-analysing the same
// corpus/doc pair stores a new version that supersedes the previous one.
type Report struct {
	ID            string             `json:"id"`
	Corpus        string             `json:"corpus"`
	Doc           string             `json:"doc"`
	Language      string             `json:"language"`
	Digest        string             `json:"digest"`
	Tags          []string           `json:"tags,omitempty"`
	Version       int                `json:"version"`
	Supersedes    string             `json:"supersedes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	DeletedAt     *time.Time         `json:"deleted_at,omitempty"`
	Scores        readability.Scores `json:"scores"`
	SentenceCount int                `json:"sentence_count,omitempty"`
	Sentences     []Sentence         `json:"sentences,omitempty"`
}

// Sentence is a stored sentence of a report, with the paragraph it came
// from.
type Sentence struct {
	ID        string `json:"id,omitempty"`
	ReportID  string `json:"report_id,omitempty"`
	Seq       int    `json:"seq"`
	Text      string `json:"text"`
	Paragraph int    `json:"paragraph"`
	StartLine int    `json:"start_line,omitempty"`
	EndLine   int    `json:"end_line,omitempty"`
}

// DefaultCorpus groups reports saved without an explicit corpus.
const DefaultCorpus = "default"
