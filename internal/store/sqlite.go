package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/readability/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS reports (
		id          TEXT PRIMARY KEY,
		corpus      TEXT NOT NULL,
		doc         TEXT NOT NULL,
		language    TEXT NOT NULL DEFAULT 'eng',
		digest      TEXT NOT NULL,
		tags        TEXT,
		version     INTEGER NOT NULL DEFAULT 1,
		supersedes  TEXT,
		created_at  TEXT NOT NULL,
		deleted_at  TEXT,
		n_words     INTEGER NOT NULL DEFAULT 0,
		fk_grade    REAL NOT NULL DEFAULT 0,
		scores      TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_reports_corpus_doc ON reports(corpus, doc);
	CREATE INDEX IF NOT EXISTS idx_reports_created ON reports(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_reports_deleted ON reports(deleted_at);

	CREATE TABLE IF NOT EXISTS sentences (
		id          TEXT PRIMARY KEY,
		report_id   TEXT NOT NULL REFERENCES reports(id),
		seq         INTEGER NOT NULL,
		text        TEXT NOT NULL,
		paragraph   INTEGER NOT NULL DEFAULT 0,
		start_line  INTEGER,
		end_line    INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_sentences_report ON sentences(report_id);

	CREATE VIRTUAL TABLE IF NOT EXISTS sentences_fts USING fts5(
		text,
		content=sentences,
		content_rowid=rowid
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// FTS5 triggers for automatic sync
	triggers := []string{
		`CREATE TRIGGER IF NOT EXISTS sentences_ai AFTER INSERT ON sentences BEGIN
			INSERT INTO sentences_fts(rowid, text) VALUES (new.rowid, new.text);
		END`,
		`CREATE TRIGGER IF NOT EXISTS sentences_ad AFTER DELETE ON sentences BEGIN
			INSERT INTO sentences_fts(sentences_fts, rowid, text) VALUES('delete', old.rowid, old.text);
		END`,
		`CREATE TRIGGER IF NOT EXISTS sentences_au AFTER UPDATE ON sentences BEGIN
			INSERT INTO sentences_fts(sentences_fts, rowid, text) VALUES('delete', old.rowid, old.text);
			INSERT INTO sentences_fts(rowid, text) VALUES (new.rowid, new.text);
		END`,
	}
	for _, t := range triggers {
		if _, err := s.db.Exec(t); err != nil {
			return fmt.Errorf("create trigger: %w", err)
		}
	}
	return nil
}

// reportCols selects a report row from table alias r.
const reportCols = `r.id, r.corpus, r.doc, r.language, r.digest, r.tags, r.version, r.supersedes,
	r.created_at, r.deleted_at, r.scores,
	(SELECT COUNT(*) FROM sentences sc WHERE sc.report_id = r.id)`

// latestJoin restricts alias r to the newest live version of each doc.
const latestJoin = `INNER JOIN (
		SELECT corpus, doc, MAX(version) AS max_ver
		FROM reports WHERE deleted_at IS NULL
		GROUP BY corpus, doc
	) latest ON r.corpus = latest.corpus AND r.doc = latest.doc AND r.version = latest.max_ver`

func (s *SQLiteStore) Save(ctx context.Context, p SaveParams) (*model.Report, error) {
	now := time.Now().UTC()
	id := s.newID()

	corpus := p.Corpus
	if corpus == "" {
		corpus = model.DefaultCorpus
	}
	language := p.Language
	if language == "" {
		language = "eng"
	}

	var tagsJSON *string
	if len(p.Tags) > 0 {
		b, _ := json.Marshal(p.Tags)
		v := string(b)
		tagsJSON = &v
	}

	scoresJSON, err := json.Marshal(p.Scores)
	if err != nil {
		return nil, fmt.Errorf("encode scores: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Check for existing latest version
	var prevID string
	var prevVersion int
	err = tx.QueryRowContext(ctx,
		`SELECT id, version FROM reports
		 WHERE corpus = ? AND doc = ? AND deleted_at IS NULL
		 ORDER BY version DESC LIMIT 1`, corpus, p.Doc).Scan(&prevID, &prevVersion)

	var supersedes *string
	if err == nil {
		supersedes = &prevID
	}

	// Soft-deleted versions keep their numbers.
	var maxVersion int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM reports WHERE corpus = ? AND doc = ?`,
		corpus, p.Doc).Scan(&maxVersion); err != nil {
		return nil, fmt.Errorf("next version: %w", err)
	}
	version := max(maxVersion, prevVersion) + 1

	_, err = tx.ExecContext(ctx,
		`INSERT INTO reports (id, corpus, doc, language, digest, tags, version, supersedes, created_at, n_words, fk_grade, scores)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, corpus, p.Doc, language, p.Digest, tagsJSON, version, supersedes,
		now.Format(time.RFC3339), p.Scores.Words, p.Scores.FleschKincaidGrade, string(scoresJSON))
	if err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}

	for i, se := range p.Sentences {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO sentences (id, report_id, seq, text, paragraph, start_line, end_line)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			s.newID(), id, i, se.Text, se.Paragraph, se.StartLine, se.EndLine)
		if err != nil {
			return nil, fmt.Errorf("insert sentence: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	r := &model.Report{
		ID:            id,
		Corpus:        corpus,
		Doc:           p.Doc,
		Language:      language,
		Digest:        p.Digest,
		Tags:          p.Tags,
		Version:       version,
		CreatedAt:     now.Truncate(time.Second),
		Scores:        p.Scores,
		SentenceCount: len(p.Sentences),
	}
	if supersedes != nil {
		r.Supersedes = *supersedes
	}

	return r, nil
}

func (s *SQLiteStore) Get(ctx context.Context, p GetParams) ([]model.Report, error) {
	corpus := p.Corpus
	if corpus == "" {
		corpus = model.DefaultCorpus
	}

	query := `SELECT ` + reportCols + ` FROM reports r
		WHERE r.corpus = ? AND r.doc = ? AND r.deleted_at IS NULL`
	args := []any{corpus, p.Doc}
	switch {
	case p.History:
		query += ` ORDER BY r.version DESC`
	case p.Version > 0:
		query += ` AND r.version = ? LIMIT 1`
		args = append(args, p.Version)
	default:
		query += ` ORDER BY r.version DESC LIMIT 1`
	}

	reports, err := s.queryReports(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, corpus, p.Doc)
	}

	if p.Sentences {
		for i := range reports {
			reports[i].Sentences, err = s.Sentences(ctx, reports[i].ID)
			if err != nil {
				return nil, err
			}
		}
	}
	return reports, nil
}

// Sentences returns the stored sentences of a report in order.
func (s *SQLiteStore) Sentences(ctx context.Context, reportID string) ([]model.Sentence, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, report_id, seq, text, paragraph, start_line, end_line
		 FROM sentences WHERE report_id = ? ORDER BY seq`, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Sentence
	for rows.Next() {
		se, err := scanSentence(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, se)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) List(ctx context.Context, p ListParams) ([]model.Report, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	where := []string{"r.deleted_at IS NULL"}
	var args []any

	if p.Corpus != "" {
		where = append(where, "r.corpus = ?")
		args = append(args, p.Corpus)
	}
	if p.Language != "" {
		where = append(where, "r.language = ?")
		args = append(args, p.Language)
	}

	// Tag filtering
	for _, tag := range p.Tags {
		where = append(where, "r.tags LIKE ?")
		args = append(args, "%\""+tag+"\"%")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM reports r
		%s
		WHERE %s
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT ?`, reportCols, latestJoin, strings.Join(where, " AND "))
	args = append(args, limit)

	return s.queryReports(ctx, query, args...)
}

func (s *SQLiteStore) Rm(ctx context.Context, p RmParams) error {
	corpus := p.Corpus
	if corpus == "" {
		corpus = model.DefaultCorpus
	}

	if p.Hard {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		target := `SELECT id FROM reports WHERE corpus = ? AND doc = ?`
		if !p.AllVersions {
			target += ` AND deleted_at IS NULL ORDER BY version DESC LIMIT 1`
		}
		var ids []any
		rows, err := tx.QueryContext(ctx, target, corpus, p.Doc)
		if err != nil {
			return err
		}
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return err
			}
			ids = append(ids, id)
		}
		rows.Close()
		if len(ids) == 0 {
			return fmt.Errorf("%w: %s/%s", ErrNotFound, corpus, p.Doc)
		}

		in := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
		// Delete sentences first
		if _, err := tx.ExecContext(ctx, `DELETE FROM sentences WHERE report_id IN (`+in+`)`, ids...); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM reports WHERE id IN (`+in+`)`, ids...); err != nil {
			return err
		}
		return tx.Commit()
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if p.AllVersions {
		res, err := s.db.ExecContext(ctx,
			`UPDATE reports SET deleted_at = ? WHERE corpus = ? AND doc = ? AND deleted_at IS NULL`,
			now, corpus, p.Doc)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("%w: %s/%s", ErrNotFound, corpus, p.Doc)
		}
		return nil
	}

	// Soft-delete latest version only
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM reports WHERE corpus = ? AND doc = ? AND deleted_at IS NULL ORDER BY version DESC LIMIT 1`,
		corpus, p.Doc).Scan(&id)
	if err != nil {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, corpus, p.Doc)
	}
	_, err = s.db.ExecContext(ctx, `UPDATE reports SET deleted_at = ? WHERE id = ?`, now, id)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) queryReports(ctx context.Context, query string, args ...any) ([]model.Report, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []model.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(row scanner, extra ...any) (model.Report, error) {
	var r model.Report
	var tagsJSON, supersedes, deletedAt sql.NullString
	var createdAt, scores string

	dest := []any{
		&r.ID, &r.Corpus, &r.Doc, &r.Language, &r.Digest, &tagsJSON,
		&r.Version, &supersedes, &createdAt, &deletedAt, &scores,
		&r.SentenceCount,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return r, err
	}

	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if supersedes.Valid {
		r.Supersedes = supersedes.String
	}
	if deletedAt.Valid {
		t, _ := time.Parse(time.RFC3339, deletedAt.String)
		r.DeletedAt = &t
	}
	if tagsJSON.Valid {
		json.Unmarshal([]byte(tagsJSON.String), &r.Tags)
	}
	if err := json.Unmarshal([]byte(scores), &r.Scores); err != nil {
		return r, fmt.Errorf("decode scores of %s: %w", r.ID, err)
	}

	return r, nil
}

func scanSentence(row scanner) (model.Sentence, error) {
	var se model.Sentence
	var start, end sql.NullInt64
	err := row.Scan(&se.ID, &se.ReportID, &se.Seq, &se.Text, &se.Paragraph, &start, &end)
	se.StartLine = int(start.Int64)
	se.EndLine = int(end.Int64)
	return se, err
}
