package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "corpora",
		Short: "List corpora with saved reports",
		Run:   runCorpora,
	}

	RootCmd.AddCommand(cmd)
}

func runCorpora(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rows, err := s.Corpora(cmd.Context())
	if err != nil {
		exitErr("list corpora", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		b, _ := json.MarshalIndent(rows, "", "  ")
		fmt.Fprintln(out, string(b))
		return
	}
	for _, c := range rows {
		fmt.Fprintf(out, "%-20s docs=%d reports=%d words=%d level=%.1f\n",
			c.Corpus, c.Docs, c.Count, c.Words, c.Level)
	}
}
