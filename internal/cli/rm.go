package cli

import (
	"fmt"

	"github.com/rcliao/readability/internal/model"
	"github.com/rcliao/readability/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete a saved report",
		Long: "Soft-delete the latest version of a document's report. With --all-versions every " +
			"version is deleted; --hard removes the rows and their sentences for good.",
		Run: runRm,
	}

	cmd.Flags().StringP("corpus", "c", model.DefaultCorpus, "Corpus")
	cmd.Flags().String("doc", "", "Document (required)")
	cmd.Flags().Bool("all-versions", false, "Delete every version")
	cmd.Flags().Bool("hard", false, "Remove permanently")

	cmd.MarkFlagRequired("doc")

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	p := store.RmParams{}
	p.Corpus, _ = cmd.Flags().GetString("corpus")
	p.Doc, _ = cmd.Flags().GetString("doc")
	p.AllVersions, _ = cmd.Flags().GetBool("all-versions")
	p.Hard, _ = cmd.Flags().GetBool("hard")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.Rm(cmd.Context(), p); err != nil {
		exitErr("rm", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		fmt.Fprintf(out, `{"ok":true,"corpus":%q,"doc":%q,"hard":%t}`+"\n", p.Corpus, p.Doc, p.Hard)
		return
	}
	what := "latest version"
	if p.AllVersions {
		what = "all versions"
	}
	fmt.Fprintf(out, "deleted %s of %s/%s\n", what, p.Corpus, p.Doc)
}
