package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/readability/internal/syllable"
)

func init() {
	cmd := &cobra.Command{
		Use:   "syllables [words...]",
		Short: "Estimate syllables per word",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSyllables,
	}

	cmd.Flags().BoolP("spanish", "S", false, "Use the Spanish heuristic")
	cmd.Flags().String("filters", "", "Syllable correction filter file")

	RootCmd.AddCommand(cmd)
}

type wordCount struct {
	Word      string `json:"word"`
	Heuristic int    `json:"heuristic"`
	Syllables int    `json:"syllables"`
}

func runSyllables(cmd *cobra.Command, args []string) {
	spanish, _ := cmd.Flags().GetBool("spanish")
	filtersPath, _ := cmd.Flags().GetString("filters")

	lang := cfg.LanguageOrDefault()
	if spanish {
		lang = syllable.Spanish
	}
	filters, err := loadFilters(filtersPath, lang)
	if err != nil {
		exitErr("load filters", err)
	}

	plain := syllable.NewCounter(lang, nil)
	corrected := syllable.NewCounter(lang, filters)

	counts := make([]wordCount, 0, len(args))
	for _, w := range args {
		counts = append(counts, wordCount{
			Word:      w,
			Heuristic: plain.Count(w),
			Syllables: corrected.Count(w),
		})
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		b, _ := json.MarshalIndent(counts, "", "  ")
		fmt.Fprintln(out, string(b))
		return
	}
	for _, c := range counts {
		if c.Heuristic != c.Syllables {
			fmt.Fprintf(out, "%-20s %d (heuristic %d)\n", c.Word, c.Syllables, c.Heuristic)
			continue
		}
		fmt.Fprintf(out, "%-20s %d\n", c.Word, c.Syllables)
	}
}
