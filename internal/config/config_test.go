package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rcliao/readability/internal/readability"
	"github.com/rcliao/readability/internal/syllable"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, fileName)
	writeFile(t, path, `language: spa
markdown: true
filters: data/filters.yml
db: /var/lib/history.db
abbreviations:
  known: [Inc, approx]
  exceptions: [Mrs]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LanguageOrDefault() != syllable.Spanish {
		t.Errorf("language = %q, want spa", cfg.Language)
	}
	if !cfg.Markdown {
		t.Error("markdown = false, want true")
	}
	if cfg.Annotation != readability.DefaultAnnotation {
		t.Errorf("annotation = %q, want default", cfg.Annotation)
	}
	if got, want := cfg.FiltersPath(), filepath.Join(dir, "data", "filters.yml"); got != want {
		t.Errorf("FiltersPath() = %q, want %q", got, want)
	}
	if got := cfg.DBPath(); got != "/var/lib/history.db" {
		t.Errorf("DBPath() = %q", got)
	}

	abbr := cfg.Abbreviations.BuildAbbreviations()
	if abbr == nil {
		t.Fatal("BuildAbbreviations() = nil")
	}
	if !abbr.IsAbbreviation("approx", "Ten") {
		t.Error("approx should be an abbreviation")
	}
	if !abbr.IsAbbreviation("Dr", "Smith") {
		t.Error("built-in tables should be kept")
	}
	if abbr.IsAbbreviation("Mrs", "Ortiz") {
		t.Error("Mrs should be an exception")
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.yml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yml")
	writeFile(t, bad, "language: [unclosed\n")
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}

	lang := filepath.Join(dir, "lang.yml")
	writeFile(t, lang, "language: klingon\n")
	if _, err := Load(lang); err == nil {
		t.Error("expected unknown language error")
	}
}

func TestAbbreviations_Replace(t *testing.T) {
	a := Abbreviations{Replace: true, Known: []string{"approx"}}
	abbr := a.BuildAbbreviations()
	if !abbr.IsAbbreviation("approx", "Ten") {
		t.Error("approx should be an abbreviation")
	}
	if !abbr.IsAbbreviation("Dr", "Smith") {
		t.Error("Dr still matches the initials pattern")
	}
	if abbr.IsAbbreviation("Fig", "3") {
		t.Error("Fig should be gone with the built-in tables")
	}
	if (Abbreviations{}).BuildAbbreviations() != nil {
		t.Error("empty section should leave the built-ins")
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	deep := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := Discover(deep)
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("Discover() = %q, want none", got)
	}

	want := filepath.Join(root, "a", fileName)
	writeFile(t, want, "language: eng\n")
	got, err = Discover(deep)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("Discover() = %q, want %q", got, want)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.LanguageOrDefault() != syllable.English {
		t.Errorf("language = %q", cfg.Language)
	}
	if cfg.FiltersPath() != "" || cfg.DBPath() != "" {
		t.Error("defaults should not name files")
	}
}
