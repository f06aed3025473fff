package cli

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the history database",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	st, err := s.Stats(cmd.Context(), getDBPath())
	if err != nil {
		exitErr("stats", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		b, _ := json.MarshalIndent(st, "", "  ")
		fmt.Fprintln(out, string(b))
		return
	}

	fmt.Fprintf(out, "%s (%s)\n", st.DBPath, humanize.Bytes(uint64(st.DBSizeBytes)))
	fmt.Fprintf(out, "reports: %s live, %s total\n",
		humanize.Comma(int64(st.ActiveReports)), humanize.Comma(int64(st.TotalReports)))
	fmt.Fprintf(out, "sentences: %s\n", humanize.Comma(int64(st.TotalSentences)))
	if len(st.Corpora) > 0 {
		headerColor.Fprintln(out, "Corpus:              Docs:   Words:  Level:")
		for _, c := range st.Corpora {
			fmt.Fprintf(out, "%-20.20s %6d %8d %7.1f\n", c.Corpus, c.Docs, c.Words, c.Level)
		}
	}
}
