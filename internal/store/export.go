package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/rcliao/readability/internal/model"
)

// ExportAll returns all non-deleted reports with their sentences,
// optionally filtered by corpus.
func (s *SQLiteStore) ExportAll(ctx context.Context, corpus string) ([]model.Report, error) {
	where := []string{"r.deleted_at IS NULL"}
	var args []any

	if corpus != "" {
		where = append(where, "r.corpus = ?")
		args = append(args, corpus)
	}

	query := `SELECT ` + reportCols + ` FROM reports r WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY r.corpus, r.doc, r.version`

	reports, err := s.queryReports(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	for i := range reports {
		reports[i].Sentences, err = s.Sentences(ctx, reports[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return reports, nil
}

// Import stores reports from an export in order. A report whose corpus,
// doc and digest match the current latest version is skipped. Returns the
// number imported.
func (s *SQLiteStore) Import(ctx context.Context, reports []model.Report) (int, error) {
	imported := 0
	for _, r := range reports {
		corpus := r.Corpus
		if corpus == "" {
			corpus = model.DefaultCorpus
		}

		var digest string
		err := s.db.QueryRowContext(ctx,
			`SELECT digest FROM reports WHERE corpus = ? AND doc = ? AND deleted_at IS NULL
			 ORDER BY version DESC LIMIT 1`, corpus, r.Doc).Scan(&digest)
		if err == nil && digest == r.Digest {
			continue
		}

		_, err = s.Save(ctx, SaveParams{
			Corpus:    corpus,
			Doc:       r.Doc,
			Language:  r.Language,
			Digest:    r.Digest,
			Tags:      r.Tags,
			Scores:    r.Scores,
			Sentences: r.Sentences,
		})
		if err != nil {
			return imported, fmt.Errorf("import %s/%s: %w", corpus, r.Doc, err)
		}
		imported++
	}
	return imported, nil
}
