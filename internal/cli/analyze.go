package cli

import (
	"archive/zip"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"

	"github.com/rcliao/readability/internal/bloom"
	"github.com/rcliao/readability/internal/chunker"
	"github.com/rcliao/readability/internal/mdtext"
	"github.com/rcliao/readability/internal/model"
	"github.com/rcliao/readability/internal/readability"
	"github.com/rcliao/readability/internal/sentence"
	"github.com/rcliao/readability/internal/store"
	"github.com/rcliao/readability/internal/syllable"
)

func init() {
	cmd := &cobra.Command{
		Use:   "analyze [files...]",
		Short: "Score the readability of files",
		Long: "Score each file and print one row per file followed by totals. Arguments may be " +
			"glob patterns (** matches across directories) or .zip archives; with no arguments " +
			"standard input is read.",
		Run: runAnalyze,
	}

	cmd.Flags().BoolP("spanish", "S", false, "Treat input as Spanish")
	cmd.Flags().BoolP("sentences", "s", false, "List the sentences of each file")
	cmd.Flags().BoolP("show-syllables", "n", false, "Annotate listed sentences with syllable counts (implies --sentences)")
	cmd.Flags().String("syllables", "", "Annotation format, {word}/{count} or printf-style (implies --show-syllables)")
	cmd.Flags().BoolP("words", "w", false, "Report word and separator frequencies")
	cmd.Flags().BoolP("markdown", "m", false, "Treat input as Markdown")
	cmd.Flags().String("filters", "", "Syllable correction filter file")
	cmd.Flags().Bool("save", false, "Save a report per file to the history database")
	cmd.Flags().String("corpus", model.DefaultCorpus, "Corpus to save reports under")
	cmd.Flags().StringP("tags", "t", "", "Tags for saved reports (comma-separated)")
	cmd.Flags().Bool("progress", false, "Show a progress bar on stderr")

	RootCmd.AddCommand(cmd)
}

// analyzeOptions is the resolved flag and config state for one run.
type analyzeOptions struct {
	lang       syllable.Language
	sentences  bool
	annotate   bool
	annotation string
	markdown   bool
	keep       bool // collect sentences for listing or saving
	filters    *bloom.Set
	abbr       *sentence.Abbreviations
	tally      *readability.Tally
}

// input is one document to analyze.
type input struct {
	name string // as given, or archive:entry
	data []byte
}

// docResult is the analysis of one document.
type docResult struct {
	Name      string             `json:"file"`
	Language  syllable.Language  `json:"language"`
	Digest    string             `json:"digest"`
	Scores    readability.Scores `json:"scores"`
	Sentences []model.Sentence   `json:"sentences,omitempty"`
}

// totals aggregates the per-file grade levels.
type totals struct {
	Files      int     `json:"files"`
	Words      int     `json:"words"`
	AvgWords   float64 `json:"average_words"`
	AvgLevel   float64 `json:"average_level"`
	WordsLevel float64 `json:"weighted_level"`

	levelSum      float64
	levelWordsSum float64
}

func (t *totals) add(sc readability.Scores) {
	t.Files++
	t.Words += sc.Words
	t.levelSum += sc.FleschKincaidGrade
	t.levelWordsSum += float64(sc.Words) * sc.FleschKincaidGrade
}

func (t *totals) finish() {
	if t.Files > 0 {
		t.AvgWords = float64(t.Words) / float64(t.Files)
		t.AvgLevel = t.levelSum / float64(t.Files)
	}
	if t.Words > 0 {
		t.WordsLevel = t.levelWordsSum / float64(t.Words)
	}
}

func runAnalyze(cmd *cobra.Command, args []string) {
	spanish, _ := cmd.Flags().GetBool("spanish")
	showSentences, _ := cmd.Flags().GetBool("sentences")
	showSyllables, _ := cmd.Flags().GetBool("show-syllables")
	format, _ := cmd.Flags().GetString("syllables")
	words, _ := cmd.Flags().GetBool("words")
	markdown, _ := cmd.Flags().GetBool("markdown")
	filtersPath, _ := cmd.Flags().GetString("filters")
	save, _ := cmd.Flags().GetBool("save")
	corpus, _ := cmd.Flags().GetString("corpus")
	tagsStr, _ := cmd.Flags().GetString("tags")
	progress, _ := cmd.Flags().GetBool("progress")

	opts := analyzeOptions{
		lang:       cfg.LanguageOrDefault(),
		markdown:   markdown || cfg.Markdown,
		annotation: cfg.Annotation,
		abbr:       cfg.Abbreviations.BuildAbbreviations(),
	}
	if spanish {
		opts.lang = syllable.Spanish
	}
	if format != "" {
		opts.annotation = format
		showSyllables = true
	}
	opts.annotate = showSyllables
	opts.sentences = showSentences || showSyllables
	opts.keep = opts.sentences || save
	if words {
		opts.tally = readability.NewTally()
	}

	filters, err := loadFilters(filtersPath, opts.lang)
	if err != nil {
		exitErr("load filters", err)
	}
	opts.filters = filters

	paths, err := expandArgs(args)
	if err != nil {
		exitErr("expand arguments", err)
	}
	var inputs []input
	for _, p := range paths {
		in, err := readInputs(p)
		if err != nil {
			exitErr("read input", err)
		}
		inputs = append(inputs, in...)
	}
	if len(inputs) == 0 {
		exitErr("analyze", errors.New("no files"))
	}

	var bar *progressbar.ProgressBar
	if progress {
		bar = progressbar.Default(int64(len(inputs)))
	}

	out := cmd.OutOrStdout()
	if !jsonOutput() {
		writeHeader(out, opts.lang, len(inputs))
	}

	var results []*docResult
	var tot totals
	for _, in := range inputs {
		res, err := analyzeDoc(in, opts)
		if err != nil {
			exitErr(in.name, err)
		}
		tot.add(res.Scores)
		results = append(results, res)
		if !jsonOutput() {
			writeRow(out, res)
			if opts.sentences {
				writeSentences(out, res)
			}
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	if bar != nil {
		bar.Finish()
	}
	tot.finish()

	if save {
		saveReports(cmd, results, corpus, splitTags(tagsStr))
	}

	if jsonOutput() {
		report := struct {
			Files      []*docResult        `json:"files"`
			Totals     totals              `json:"totals"`
			Words      []readability.Group `json:"words,omitempty"`
			Separators []readability.Entry `json:"separators,omitempty"`
		}{Files: results, Totals: tot}
		if opts.tally != nil {
			report.Words = opts.tally.WordReport()
			report.Separators = opts.tally.SeparatorReport()
		}
		b, _ := json.MarshalIndent(report, "", "  ")
		fmt.Fprintln(out, string(b))
		return
	}

	writeTotals(out, tot)
	if opts.tally != nil {
		writeWordReport(out, opts.tally)
		writeSeparatorReport(out, opts.tally)
	}
}

// analyzeDoc splits a document into paragraphs and reads them into a
// fresh Reader.
func analyzeDoc(in input, opts analyzeOptions) (*docResult, error) {
	var chunks []chunker.ChunkResult
	if opts.markdown {
		chunks = mdtext.Paragraphs(in.data)
	} else {
		chunks = chunker.Chunk(string(in.data), chunker.DefaultOptions())
	}

	ro := readability.DefaultOptions()
	ro.Language = opts.lang
	ro.Annotate = opts.annotate
	ro.Annotation = opts.annotation
	ro.Sentences = opts.keep
	ro.Filters = opts.filters
	ro.Abbreviations = opts.abbr
	ro.Tally = opts.tally
	r := readability.NewReader(ro)

	sum := sha256.Sum256(in.data)
	res := &docResult{
		Name:     in.name,
		Language: opts.lang,
		Digest:   hex.EncodeToString(sum[:]),
	}

	for i, c := range chunks {
		sentences, err := r.Read([]string{c.Text})
		if err != nil {
			return nil, fmt.Errorf("paragraph %d: %w", i+1, err)
		}
		if !opts.keep {
			continue
		}
		if !opts.annotate {
			if err := checkRoundTrip(c.Text, sentences); err != nil {
				return nil, fmt.Errorf("paragraph %d: %w", i+1, err)
			}
		}
		for _, s := range sentences {
			text := s.String()
			if strings.TrimSpace(text) == "" {
				continue
			}
			res.Sentences = append(res.Sentences, model.Sentence{
				Seq:       len(res.Sentences),
				Text:      text,
				Paragraph: i,
				StartLine: c.StartLine,
				EndLine:   c.EndLine,
			})
		}
	}
	res.Scores = r.Scores()
	return res, nil
}

// checkRoundTrip verifies that the sentences of a paragraph reproduce its
// normalized text.
func checkRoundTrip(text string, sentences []sentence.Sentence) error {
	var b strings.Builder
	for _, s := range sentences {
		b.WriteString(s.String())
	}
	if b.String() != norm.NFC.String(text) {
		return fmt.Errorf("%w: sentences do not reproduce the input", sentence.ErrInvariant)
	}
	return nil
}

// loadFilters reads the correction filters named by the flag or the
// config file. Filters apply to English only.
func loadFilters(flagPath string, lang syllable.Language) (*bloom.Set, error) {
	path := flagPath
	if path == "" {
		path = cfg.FiltersPath()
	}
	if path == "" {
		return nil, nil
	}
	if lang != syllable.English {
		slog.Debug("ignoring correction filters for non-English input", "path", path, "language", lang)
		return nil, nil
	}
	set, err := bloom.LoadFile(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("filters loaded", "path", path,
		"undercount_bins", set.Undercount.NumBins(), "overcount_bins", set.Overcount.NumBins())
	return set, nil
}

// expandArgs expands glob patterns. No arguments means standard input.
func expandArgs(args []string) ([]string, error) {
	if len(args) == 0 {
		return []string{"-"}, nil
	}
	var paths []string
	for _, arg := range args {
		if arg == "-" || !strings.ContainsAny(arg, "*?[{") {
			paths = append(paths, arg)
			continue
		}
		if !doublestar.ValidatePattern(filepath.ToSlash(arg)) {
			return nil, fmt.Errorf("invalid pattern %q", arg)
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", arg, err)
		}
		if len(matches) == 0 {
			slog.Warn("pattern matched no files", "pattern", arg)
		}
		sort.Strings(matches)
		paths = append(paths, matches...)
	}
	return paths, nil
}

// readInputs reads a file, standard input, or every file in a zip archive.
func readInputs(path string) ([]input, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return []input{{name: "<stdin>", data: data}}, nil
	}
	if strings.HasSuffix(strings.ToLower(path), ".zip") {
		return readZip(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("file read", "path", path, "bytes", len(data))
	return []input{{name: path, data: data}}, nil
}

func readZip(path string) ([]input, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()

	var inputs []input
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		inputs = append(inputs, input{name: path + ":" + f.Name, data: data})
	}
	slog.Debug("archive read", "path", path, "files", len(inputs))
	return inputs, nil
}

func saveReports(cmd *cobra.Command, results []*docResult, corpus string, tags []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	for _, res := range results {
		r, err := s.Save(cmd.Context(), store.SaveParams{
			Corpus:    corpus,
			Doc:       res.Name,
			Language:  string(res.Language),
			Digest:    res.Digest,
			Tags:      tags,
			Scores:    res.Scores,
			Sentences: res.Sentences,
		})
		if err != nil {
			exitErr("save "+res.Name, err)
		}
		slog.Info("report saved", "corpus", r.Corpus, "doc", r.Doc, "version", r.Version)
	}
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
