package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rcliao/readability/internal/model"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import reports exported by another database",
		Long: "Read a JSON array written by export from a file or standard input. A report whose " +
			"digest equals the current latest version of its document is skipped.",
		Args: cobra.MaximumNArgs(1),
		Run:  runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	src := io.Reader(os.Stdin)
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			exitErr("open file", err)
		}
		defer f.Close()
		src = f
	}

	var reports []model.Report
	if err := json.NewDecoder(src).Decode(&reports); err != nil {
		exitErr("parse json", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	imported, err := s.Import(cmd.Context(), reports)
	if err != nil {
		exitErr("import", err)
	}
	skipped := len(reports) - imported

	out := cmd.OutOrStdout()
	if jsonOutput() {
		fmt.Fprintf(out, `{"ok":true,"imported":%d,"skipped":%d}`+"\n", imported, skipped)
		return
	}
	fmt.Fprintf(out, "imported %d reports (%d unchanged)\n", imported, skipped)
}
