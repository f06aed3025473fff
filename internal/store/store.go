// Package store provides the report history interface and SQLite implementation.
package store

import (
	"context"
	"errors"

	"github.com/rcliao/readability/internal/model"
	"github.com/rcliao/readability/internal/readability"
)

// ErrNotFound is returned when no live report matches a lookup.
var ErrNotFound = errors.New("report not found")

// SaveParams holds parameters for storing a report.
type SaveParams struct {
	Corpus    string
	Doc       string
	Language  string
	Digest    string
	Tags      []string
	Scores    readability.Scores
	Sentences []model.Sentence
}

// GetParams holds parameters for retrieving a report.
type GetParams struct {
	Corpus    string
	Doc       string
	History   bool
	Version   int // 0 means latest
	Sentences bool
}

// ListParams holds parameters for listing reports.
type ListParams struct {
	Corpus   string
	Language string
	Tags     []string
	Limit    int
}

// RmParams holds parameters for deleting a report.
type RmParams struct {
	Corpus      string
	Doc         string
	AllVersions bool
	Hard        bool
}

// Store defines the report storage interface.
type Store interface {
	// Save stores a report, superseding the latest version of the same
	// corpus/doc. Returns the created report.
	Save(ctx context.Context, p SaveParams) (*model.Report, error)

	// Get retrieves a report by corpus and doc.
	// Returns a slice (single element normally, multiple with History=true).
	Get(ctx context.Context, p GetParams) ([]model.Report, error)

	// List lists the latest version of each report matching the filters.
	List(ctx context.Context, p ListParams) ([]model.Report, error)

	// Rm soft-deletes (or hard-deletes) a report.
	Rm(ctx context.Context, p RmParams) error

	// Close closes the store.
	Close() error
}
