package cli

import (
	"encoding/json"
	"fmt"

	"github.com/rcliao/readability/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved reports",
		Run:   runList,
	}

	cmd.Flags().StringP("corpus", "c", "", "Filter by corpus")
	cmd.Flags().String("language", "", "Filter by language (eng or spa)")
	cmd.Flags().StringP("tags", "t", "", "Filter by tags (comma-separated)")
	cmd.Flags().IntP("limit", "l", 20, "Max results")
	cmd.Flags().Bool("docs-only", false, "Only output corpus/doc pairs")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	corpus, _ := cmd.Flags().GetString("corpus")
	language, _ := cmd.Flags().GetString("language")
	tagsStr, _ := cmd.Flags().GetString("tags")
	limit, _ := cmd.Flags().GetInt("limit")
	docsOnly, _ := cmd.Flags().GetBool("docs-only")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	reports, err := s.List(cmd.Context(), store.ListParams{
		Corpus:   corpus,
		Language: language,
		Tags:     splitTags(tagsStr),
		Limit:    limit,
	})
	if err != nil {
		exitErr("list", err)
	}

	out := cmd.OutOrStdout()
	if docsOnly {
		for _, r := range reports {
			fmt.Fprintf(out, "%s/%s\n", r.Corpus, r.Doc)
		}
		return
	}

	if jsonOutput() {
		b, _ := json.MarshalIndent(reports, "", "  ")
		fmt.Fprintln(out, string(b))
		return
	}
	for _, r := range reports {
		fmt.Fprintf(out, "%s/%s v%d %s words=%d level=%.1f ease=%.1f\n",
			r.Corpus, r.Doc, r.Version, r.CreatedAt.Format("2006-01-02 15:04"),
			r.Scores.Words, r.Scores.FleschKincaidGrade, r.Scores.FleschReadingEase)
	}
}
