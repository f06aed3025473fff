package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/rcliao/readability/internal/readability"
	"github.com/rcliao/readability/internal/syllable"
)

var headerColor = color.New(color.Bold)

func writeHeader(w io.Writer, lang syllable.Language, files int) {
	fmt.Fprintf(w, "%d files.\n", files)
	if lang == syllable.Spanish {
		headerColor.Fprintln(w, "File:                      Words:  Ease:  Corr  IFSZx IFSZscale:")
		return
	}
	headerColor.Fprintln(w, "File:                      Words: Level:  Ease        Fog   Smog")
}

func writeRow(w io.Writer, res *docResult) {
	sc := res.Scores
	name := displayName(res.Name)
	if res.Language == syllable.Spanish {
		scale := infleszColor(sc.Inflesz).Sprint(fmt.Sprintf("%-15s", sc.Inflesz))
		fmt.Fprintf(w, "%-24.24s:%7d:%6.1f:%6.1f  %5.1f %s (%3d sentences;%6d syllables)\n",
			name, sc.Words, sc.HuertaEase, sc.HuertaCorrected, sc.FleschSzigriszt,
			scale, sc.Sentences, sc.Syllables)
		return
	}
	fmt.Fprintf(w, "%-24.24s:%7d:%6.1f:%6.1f  %9.1f  %5.1f (%4d sentences; %6d syllables)\n",
		name, sc.Words, sc.FleschKincaidGrade, sc.FleschReadingEase, sc.GunningFog,
		sc.SMOG, sc.Sentences, sc.Syllables)
}

func writeSentences(w io.Writer, res *docResult) {
	fmt.Fprintf(w, "File: %s\n", displayName(res.Name))
	for _, s := range res.Sentences {
		fmt.Fprintln(w, s.Text)
	}
}

func writeTotals(w io.Writer, t totals) {
	fmt.Fprintf(w, "Files: %d words: %d average word count: %.1f\n", t.Files, t.Words, t.AvgWords)
	fmt.Fprintf(w, "Average reading level: %.1f\n", t.AvgLevel)
	if t.Words > 0 {
		fmt.Fprintf(w, "Average reading level weighted by word count: %.1f\n", t.WordsLevel)
	}
}

func writeWordReport(w io.Writer, t *readability.Tally) {
	headerColor.Fprintf(w, "====WORDS:==== %d\n", len(t.Words))
	for _, g := range t.WordReport() {
		headerColor.Fprintf(w, "====( %s )==== %d\n", g.Category, len(g.Entries))
		for _, e := range g.Entries {
			fmt.Fprintf(w, "%6d %s\n", e.Count, e.Text)
		}
	}
}

func writeSeparatorReport(w io.Writer, t *readability.Tally) {
	entries := t.SeparatorReport()
	headerColor.Fprintf(w, "====( NONWORDS )==== %d\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(w, "%6d {%s}\n", e.Count, e.Text)
	}
}

// displayName is the base name of a file or archive entry.
func displayName(name string) string {
	return filepath.Base(filepath.FromSlash(name))
}

func infleszColor(g readability.Inflesz) *color.Color {
	switch g {
	case readability.InfleszVeryDifficult:
		return color.New(color.FgRed)
	case readability.InfleszSomewhatDifficult:
		return color.New(color.FgYellow)
	case readability.InfleszNormal:
		return color.New(color.FgCyan)
	case readability.InfleszQuiteEasy, readability.InfleszVeryEasy:
		return color.New(color.FgGreen)
	}
	return color.New(color.FgHiBlack)
}
