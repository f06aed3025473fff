package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/rcliao/readability/internal/model"
)

// SearchParams holds parameters for searching reports.
type SearchParams struct {
	Corpus string
	Query  string
	Limit  int
}

// SearchResult wraps a report with optional sentence match info.
type SearchResult struct {
	model.Report
	MatchSentence *model.Sentence `json:"match_sentence,omitempty"`
}

// Search finds the latest reports whose doc name contains the query or
// whose stored sentences match it as a full-text phrase. Doc matches come
// first; each report appears once.
func (s *SQLiteStore) Search(ctx context.Context, p SearchParams) ([]SearchResult, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}
	if strings.TrimSpace(p.Query) == "" {
		return nil, nil
	}

	where := []string{"r.deleted_at IS NULL"}
	var args []any
	if p.Corpus != "" {
		where = append(where, "r.corpus = ?")
		args = append(args, p.Corpus)
	}
	filter := strings.Join(where, " AND ")

	var results []SearchResult
	seen := map[string]bool{}

	docs, err := s.queryReports(ctx, fmt.Sprintf(`
		SELECT %s
		FROM reports r
		%s
		WHERE %s AND r.doc LIKE ?
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT ?`, reportCols, latestJoin, filter),
		append(append([]any{}, args...), "%"+p.Query+"%", limit)...)
	if err != nil {
		return nil, err
	}
	for _, r := range docs {
		seen[r.ID] = true
		results = append(results, SearchResult{Report: r})
	}
	if len(results) >= limit {
		return results[:limit], nil
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s, se.id, se.report_id, se.seq, se.text, se.paragraph, se.start_line, se.end_line
		FROM sentences_fts
		JOIN sentences se ON se.rowid = sentences_fts.rowid
		JOIN reports r ON r.id = se.report_id
		%s
		WHERE sentences_fts MATCH ? AND %s
		ORDER BY rank`, reportCols, latestJoin, filter),
		append([]any{ftsPhrase(p.Query)}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("search sentences: %w", err)
	}
	defer rows.Close()

	for rows.Next() && len(results) < limit {
		var se model.Sentence
		var seStart, seEnd *int
		r, err := scanReport(rows, &se.ID, &se.ReportID, &se.Seq, &se.Text, &se.Paragraph, &seStart, &seEnd)
		if err != nil {
			return nil, err
		}
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		if seStart != nil {
			se.StartLine = *seStart
		}
		if seEnd != nil {
			se.EndLine = *seEnd
		}
		results = append(results, SearchResult{Report: r, MatchSentence: &se})
	}
	return results, rows.Err()
}

// ftsPhrase quotes q as a single FTS5 phrase so operators in user input
// are matched literally.
func ftsPhrase(q string) string {
	return `"` + strings.ReplaceAll(q, `"`, `""`) + `"`
}
