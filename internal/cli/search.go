package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rcliao/readability/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search saved reports",
		Long:  "Search document names and stored sentences. Sentence matches are full-text phrase matches.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().StringP("corpus", "c", "", "Filter by corpus")
	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	corpus, _ := cmd.Flags().GetString("corpus")
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	results, err := s.Search(cmd.Context(), store.SearchParams{
		Corpus: corpus,
		Query:  query,
		Limit:  limit,
	})
	if err != nil {
		exitErr("search", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		if len(results) == 0 {
			fmt.Fprintln(out, "[]")
			return
		}
		b, _ := json.MarshalIndent(results, "", "  ")
		fmt.Fprintln(out, string(b))
		return
	}
	for _, r := range results {
		if r.MatchSentence == nil {
			fmt.Fprintf(out, "%s/%s v%d\n", r.Corpus, r.Doc, r.Version)
			continue
		}
		fmt.Fprintf(out, "%s/%s v%d:%d: %s\n", r.Corpus, r.Doc, r.Version,
			r.MatchSentence.StartLine, strings.TrimSpace(r.MatchSentence.Text))
	}
}
