package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export saved reports as JSON",
		Long: "Write every live report version with its sentences as a JSON array, " +
			"suitable for import into another history database.",
		Run: runExport,
	}

	cmd.Flags().StringP("corpus", "c", "", "Only this corpus")
	cmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	corpus, _ := cmd.Flags().GetString("corpus")
	output, _ := cmd.Flags().GetString("output")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	reports, err := s.ExportAll(cmd.Context(), corpus)
	if err != nil {
		exitErr("export", err)
	}

	b, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		exitErr("encode", err)
	}
	if output == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return
	}
	if err := os.WriteFile(output, append(b, '\n'), 0o644); err != nil {
		exitErr("write "+output, err)
	}
	slog.Info("reports exported", "path", output, "count", len(reports))
}
