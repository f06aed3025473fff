package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath         string        `json:"db_path"`
	DBSizeBytes    int64         `json:"db_size_bytes"`
	TotalReports   int           `json:"total_reports"`
	ActiveReports  int           `json:"active_reports"`
	TotalSentences int           `json:"total_sentences"`
	Corpora        []CorpusStats `json:"corpora"`
}

// CorpusStats holds per-corpus counts over the latest live reports.
type CorpusStats struct {
	Corpus string  `json:"corpus"`
	Count  int     `json:"count"`
	Docs   int     `json:"docs"`
	Words  int     `json:"words"`
	Level  float64 `json:"level"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	// DB file size
	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reports`).Scan(&st.TotalReports)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reports WHERE deleted_at IS NULL`).Scan(&st.ActiveReports)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sentences`).Scan(&st.TotalSentences)

	corpora, err := s.Corpora(ctx)
	if err != nil {
		return st, err
	}
	st.Corpora = corpora
	return st, nil
}

// Corpora lists every corpus with live reports. Level is the grade level
// of the latest version of each doc, weighted by its word count.
func (s *SQLiteStore) Corpora(ctx context.Context) ([]CorpusStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.corpus,
		       (SELECT COUNT(*) FROM reports c WHERE c.corpus = r.corpus AND c.deleted_at IS NULL) AS cnt,
		       COUNT(*) AS docs,
		       COALESCE(SUM(r.n_words), 0),
		       COALESCE(SUM(r.fk_grade * r.n_words) / NULLIF(SUM(r.n_words), 0), 0)
		FROM reports r
		`+latestJoin+`
		GROUP BY r.corpus ORDER BY cnt DESC, r.corpus`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CorpusStats
	for rows.Next() {
		var c CorpusStats
		if err := rows.Scan(&c.Corpus, &c.Count, &c.Docs, &c.Words, &c.Level); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
