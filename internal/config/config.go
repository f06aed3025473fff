// Package config loads .readability.yml settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rcliao/readability/internal/readability"
	"github.com/rcliao/readability/internal/sentence"
	"github.com/rcliao/readability/internal/syllable"
)

const fileName = ".readability.yml"

// Config is the parsed configuration file. Zero values mean "not set".
type Config struct {
	Language      string        `yaml:"language"`
	Markdown      bool          `yaml:"markdown"`
	Annotation    string        `yaml:"annotation"`
	Filters       string        `yaml:"filters"`
	DB            string        `yaml:"db"`
	Abbreviations Abbreviations `yaml:"abbreviations"`

	// dir is the directory the file was loaded from; relative paths in
	// the file resolve against it.
	dir string
}

// Abbreviations adjusts the sentence detector's word tables.
type Abbreviations struct {
	// Replace discards the built-in tables instead of extending them.
	Replace    bool     `yaml:"replace"`
	Known      []string `yaml:"known"`
	Months     []string `yaml:"months"`
	Exceptions []string `yaml:"exceptions"`
}

// Defaults returns the configuration used when no file is found.
func Defaults() *Config {
	return &Config{
		Language:   string(syllable.English),
		Annotation: readability.DefaultAnnotation,
	}
}

// Load reads and parses a config file at the given path. Unset fields
// keep their Defaults values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if _, ok := syllable.ParseLanguage(cfg.Language); !ok {
		return nil, fmt.Errorf("config %s: unknown language %q", path, cfg.Language)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Discover walks up the directory tree from startDir looking for a
// .readability.yml file. It stops at a directory containing .git or at
// the filesystem root. Returns "" if none was found.
func Discover(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}

	for {
		candidate := filepath.Join(dir, fileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// LanguageOrDefault returns the configured language, English if unset.
func (c *Config) LanguageOrDefault() syllable.Language {
	lang, ok := syllable.ParseLanguage(c.Language)
	if !ok {
		return syllable.English
	}
	return lang
}

// FiltersPath returns the filter file path, resolved against the config
// file's directory and with a leading ~ expanded. "" means no filters.
func (c *Config) FiltersPath() string { return c.resolve(c.Filters) }

// DBPath returns the database path, resolved like FiltersPath.
func (c *Config) DBPath() string { return c.resolve(c.DB) }

func (c *Config) resolve(p string) string {
	if p == "" {
		return ""
	}
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	if !filepath.IsAbs(p) && c.dir != "" {
		return filepath.Join(c.dir, p)
	}
	return p
}

// BuildAbbreviations returns the detector tables the file describes, or
// nil for the built-ins when the file leaves them alone.
func (a Abbreviations) BuildAbbreviations() *sentence.Abbreviations {
	if a.Replace {
		return sentence.NewAbbreviations(a.Known, a.Months, a.Exceptions)
	}
	if len(a.Known) == 0 && len(a.Months) == 0 && len(a.Exceptions) == 0 {
		return nil
	}
	return sentence.DefaultAbbreviations().Extend(a.Known, a.Months, a.Exceptions)
}
