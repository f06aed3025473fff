package store

import (
	"context"
	"math"
	"path/filepath"
	"testing"
)

func TestSearch_Basic(t *testing.T) {
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	ctx := context.Background()

	// Store some reports
	s.Save(ctx, SaveParams{Corpus: "test", Doc: "golang.md", Digest: "a",
		Sentences: sentencesOf("Go is a compiled language.", "It has goroutines.")})
	s.Save(ctx, SaveParams{Corpus: "test", Doc: "python.md", Digest: "b",
		Sentences: sentencesOf("Python is an interpreted language.")})
	s.Save(ctx, SaveParams{Corpus: "other", Doc: "rust.md", Digest: "c",
		Sentences: sentencesOf("Rust has a borrow checker.")})

	// Search by sentence text
	results, err := s.Search(ctx, SearchParams{Query: "language"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.MatchSentence == nil {
			t.Errorf("%s: expected a matching sentence", r.Doc)
		}
	}

	// Search with corpus filter
	results, err = s.Search(ctx, SearchParams{Corpus: "other", Query: "borrow checker"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].MatchSentence.Text != "Rust has a borrow checker." {
		t.Fatalf("unexpected results: %+v", results)
	}

	// Search by doc name
	results, err = s.Search(ctx, SearchParams{Query: "golang"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].MatchSentence != nil {
		t.Fatalf("expected 1 doc match, got %+v", results)
	}

	// No results
	results, err = s.Search(ctx, SearchParams{Query: "javascript"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Fatalf("expected 0 results, got %d", len(results))
	}
}

func TestSearch_QueryIsLiteral(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Save(ctx, SaveParams{Corpus: "c", Doc: "d", Digest: "x",
		Sentences: sentencesOf(`She said "not now" and left.`)})

	for _, q := range []string{`"not now"`, "not AND now", "NOT", "now*"} {
		if _, err := s.Search(ctx, SearchParams{Query: q}); err != nil {
			t.Errorf("Search(%q): %v", q, err)
		}
	}

	results, _ := s.Search(ctx, SearchParams{Query: `"not now"`})
	if len(results) != 1 {
		t.Errorf("expected quoted phrase to match, got %d", len(results))
	}
	if results, _ := s.Search(ctx, SearchParams{Query: "  "}); results != nil {
		t.Errorf("blank query should match nothing, got %+v", results)
	}
}

func TestSearch_LatestOnly(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Save(ctx, SaveParams{Corpus: "c", Doc: "d", Digest: "v1", Sentences: sentencesOf("Old wording here.")})
	s.Save(ctx, SaveParams{Corpus: "c", Doc: "d", Digest: "v2", Sentences: sentencesOf("New wording here.")})

	results, _ := s.Search(ctx, SearchParams{Query: "old wording"})
	if len(results) != 0 {
		t.Errorf("superseded sentences should not match, got %d", len(results))
	}
	results, _ = s.Search(ctx, SearchParams{Query: "wording"})
	if len(results) != 1 || results[0].Version != 2 {
		t.Errorf("expected one match on version 2, got %+v", results)
	}
}

func TestSearch_DeletedExcluded(t *testing.T) {
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	ctx := context.Background()

	s.Save(ctx, SaveParams{Corpus: "test", Doc: "deleted", Digest: "x",
		Sentences: sentencesOf("This should not appear.")})
	s.Rm(ctx, RmParams{Corpus: "test", Doc: "deleted"})

	results, err := s.Search(ctx, SearchParams{Query: "should not appear"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Fatalf("expected 0, got %d", len(results))
	}
}

func TestStats(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	ctx := context.Background()

	s.Save(ctx, SaveParams{Corpus: "c1", Doc: "a", Digest: "1", Scores: testScores(100, 4)})
	s.Save(ctx, SaveParams{Corpus: "c1", Doc: "b", Digest: "2", Scores: testScores(300, 8)})
	s.Save(ctx, SaveParams{Corpus: "c1", Doc: "b", Digest: "3", Scores: testScores(300, 8)})
	s.Save(ctx, SaveParams{Corpus: "c2", Doc: "c", Digest: "4", Scores: testScores(50, 2),
		Sentences: sentencesOf("One.", "Two.")})

	stats, err := s.Stats(ctx, dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if stats.ActiveReports != 4 {
		t.Fatalf("expected 4 active, got %d", stats.ActiveReports)
	}
	if stats.TotalSentences != 2 {
		t.Errorf("expected 2 sentences, got %d", stats.TotalSentences)
	}
	if len(stats.Corpora) != 2 {
		t.Fatalf("expected 2 corpora, got %d", len(stats.Corpora))
	}
	if stats.DBSizeBytes == 0 {
		t.Fatal("expected non-zero db size")
	}

	c1 := stats.Corpora[0]
	if c1.Corpus != "c1" || c1.Count != 3 || c1.Docs != 2 || c1.Words != 400 {
		t.Errorf("unexpected c1 stats: %+v", c1)
	}
	// (4*100 + 8*300) / 400
	if math.Abs(c1.Level-7) > 1e-9 {
		t.Errorf("expected weighted level 7, got %v", c1.Level)
	}
}

func TestCorpora_Empty(t *testing.T) {
	s := newTestStore(t)
	corpora, err := s.Corpora(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(corpora) != 0 {
		t.Errorf("expected none, got %+v", corpora)
	}
}

func TestExportImport(t *testing.T) {
	dir := t.TempDir()
	s1, _ := NewSQLiteStore(filepath.Join(dir, "src.db"))
	defer s1.Close()
	ctx := context.Background()

	s1.Save(ctx, SaveParams{Corpus: "test", Doc: "a", Digest: "1", Tags: []string{"x"},
		Scores: testScores(10, 3), Sentences: sentencesOf("Alpha one.", "Alpha two.")})
	s1.Save(ctx, SaveParams{Corpus: "test", Doc: "b", Digest: "2"})

	exported, err := s1.ExportAll(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(exported) != 2 {
		t.Fatalf("expected 2 exported, got %d", len(exported))
	}
	if len(exported[0].Sentences) != 2 {
		t.Fatalf("expected sentences in export, got %+v", exported[0].Sentences)
	}

	s2, _ := NewSQLiteStore(filepath.Join(dir, "dst.db"))
	defer s2.Close()

	n, err := s2.Import(ctx, exported)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("expected 2 imported, got %d", n)
	}

	// Verify
	got, _ := s2.Get(ctx, GetParams{Corpus: "test", Doc: "a", Sentences: true})
	if len(got) != 1 || len(got[0].Sentences) != 2 || got[0].Scores.Words != 10 {
		t.Fatalf("unexpected imported report: %+v", got)
	}

	// Importing the same export again changes nothing.
	n, err = s2.Import(ctx, exported)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("expected 0 re-imported, got %d", n)
	}
}
