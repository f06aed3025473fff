package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rcliao/readability/internal/model"
	"github.com/rcliao/readability/internal/store"
	"github.com/rcliao/readability/internal/syllable"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show a saved report",
		Run:   runGet,
	}

	cmd.Flags().StringP("corpus", "c", model.DefaultCorpus, "Corpus")
	cmd.Flags().String("doc", "", "Document (required)")
	cmd.Flags().Bool("history", false, "Show every version, newest first")
	cmd.Flags().IntP("version", "v", 0, "Specific version number")
	cmd.Flags().BoolP("sentences", "s", false, "Include stored sentences")

	cmd.MarkFlagRequired("doc")

	RootCmd.AddCommand(cmd)
}

func runGet(cmd *cobra.Command, args []string) {
	p := store.GetParams{}
	p.Corpus, _ = cmd.Flags().GetString("corpus")
	p.Doc, _ = cmd.Flags().GetString("doc")
	p.History, _ = cmd.Flags().GetBool("history")
	p.Version, _ = cmd.Flags().GetInt("version")
	p.Sentences, _ = cmd.Flags().GetBool("sentences")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	reports, err := s.Get(cmd.Context(), p)
	if err != nil {
		exitErr("get", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		var v any = reports
		if !p.History {
			v = reports[0]
		}
		b, _ := json.MarshalIndent(v, "", "  ")
		fmt.Fprintln(out, string(b))
		return
	}
	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(out)
		}
		writeReport(out, &r)
	}
}

// writeReport prints one stored report version.
func writeReport(w io.Writer, r *model.Report) {
	headerColor.Fprintf(w, "%s/%s v%d", r.Corpus, r.Doc, r.Version)
	fmt.Fprintf(w, "  %s  %s\n", r.Language, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	if len(r.Tags) > 0 {
		fmt.Fprintf(w, "tags: %s\n", strings.Join(r.Tags, ", "))
	}
	sc := r.Scores
	fmt.Fprintf(w, "%d words, %d sentences, %d syllables\n", sc.Words, sc.Sentences, sc.Syllables)
	if r.Language == string(syllable.Spanish) {
		fmt.Fprintf(w, "ease %.1f  corrected %.1f  ifsz %.1f (%s)\n",
			sc.HuertaEase, sc.HuertaCorrected, sc.FleschSzigriszt, sc.Inflesz)
	} else {
		fmt.Fprintf(w, "level %.1f  ease %.1f  fog %.1f  smog %.1f\n",
			sc.FleschKincaidGrade, sc.FleschReadingEase, sc.GunningFog, sc.SMOG)
	}
	for _, se := range r.Sentences {
		fmt.Fprintf(w, "%4d: %s\n", se.Seq, strings.TrimSpace(se.Text))
	}
}
