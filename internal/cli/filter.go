package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rcliao/readability/internal/bloom"
)

func init() {
	filterCmd := &cobra.Command{
		Use:   "filter",
		Short: "Build and inspect syllable correction filters",
	}

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Build a filter file from undercount and overcount word lists",
		Long: "Each word list holds one word per line; blank lines and lines starting with # " +
			"are ignored. Undercount words get one syllable more than the heuristic, overcount " +
			"words one fewer.",
		Run: runFilterBuild,
	}
	buildCmd.Flags().String("undercount", "", "Word list the heuristic counts short (required)")
	buildCmd.Flags().String("overcount", "", "Word list the heuristic counts long (required)")
	buildCmd.Flags().Float64P("probability", "p", 0.001, "Target false-positive probability")
	buildCmd.Flags().StringP("output", "o", "filters.yml", "Output file")
	buildCmd.MarkFlagRequired("undercount")
	buildCmd.MarkFlagRequired("overcount")

	checkCmd := &cobra.Command{
		Use:   "check [words...]",
		Short: "Report which filters claim each word",
		Args:  cobra.MinimumNArgs(1),
		Run:   runFilterCheck,
	}
	checkCmd.Flags().String("filters", "", "Filter file (default: from config)")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show filter sizes and densities",
		Run:   runFilterStats,
	}
	statsCmd.Flags().String("filters", "", "Filter file (default: from config)")

	filterCmd.AddCommand(buildCmd, checkCmd, statsCmd)
	RootCmd.AddCommand(filterCmd)
}

func runFilterBuild(cmd *cobra.Command, args []string) {
	underPath, _ := cmd.Flags().GetString("undercount")
	overPath, _ := cmd.Flags().GetString("overcount")
	p, _ := cmd.Flags().GetFloat64("probability")
	output, _ := cmd.Flags().GetString("output")

	under, err := bloom.ReadKeysFile(underPath)
	if err != nil {
		exitErr("read undercount", err)
	}
	over, err := bloom.ReadKeysFile(overPath)
	if err != nil {
		exitErr("read overcount", err)
	}

	set, err := bloom.BuildSet(under, over, p)
	if err != nil {
		exitErr("build filters", err)
	}
	if err := set.WriteFile(output); err != nil {
		exitErr("write filters", err)
	}
	slog.Info("filters written", "path", output, "undercount", len(under), "overcount", len(over))

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"path":%q,"undercount":%d,"overcount":%d}`+"\n",
		output, len(under), len(over))
}

func openFilters(cmd *cobra.Command) *bloom.Set {
	path, _ := cmd.Flags().GetString("filters")
	if path == "" {
		path = cfg.FiltersPath()
	}
	if path == "" {
		exitErr("load filters", errors.New("no filter file: pass --filters or set filters in the config"))
	}
	set, err := bloom.LoadFile(path)
	if err != nil {
		exitErr("load filters", err)
	}
	return set
}

type filterMembership struct {
	Word       string `json:"word"`
	Undercount bool   `json:"undercount"`
	Overcount  bool   `json:"overcount"`
}

func runFilterCheck(cmd *cobra.Command, args []string) {
	set := openFilters(cmd)

	rows := make([]filterMembership, 0, len(args))
	for _, w := range args {
		rows = append(rows, filterMembership{
			Word:       w,
			Undercount: set.Undercount.Contains(w),
			Overcount:  set.Overcount.Contains(w),
		})
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		b, _ := json.MarshalIndent(rows, "", "  ")
		fmt.Fprintln(out, string(b))
		return
	}
	for _, r := range rows {
		verdict := "-"
		switch {
		case r.Undercount && r.Overcount:
			verdict = "undercount (also overcount)"
		case r.Undercount:
			verdict = "undercount"
		case r.Overcount:
			verdict = "overcount"
		}
		fmt.Fprintf(out, "%-20s %s\n", r.Word, verdict)
	}
}

type filterStats struct {
	Name      string  `json:"name"`
	NumBins   int     `json:"num_bins"`
	NumProbes int     `json:"num_probes"`
	BinsSet   int     `json:"bins_set"`
	Density   float64 `json:"density"`
}

func statsOf(name string, f *bloom.Filter) filterStats {
	return filterStats{
		Name:      name,
		NumBins:   f.NumBins(),
		NumProbes: f.NumProbes(),
		BinsSet:   f.BinsSet(),
		Density:   f.Density(),
	}
}

func runFilterStats(cmd *cobra.Command, args []string) {
	set := openFilters(cmd)
	rows := []filterStats{
		statsOf("undercount", set.Undercount),
		statsOf("overcount", set.Overcount),
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		b, _ := json.MarshalIndent(rows, "", "  ")
		fmt.Fprintln(out, string(b))
		return
	}
	for _, r := range rows {
		fmt.Fprintf(out, "%-10s bins=%d probes=%d set=%d density=%.4f\n",
			r.Name, r.NumBins, r.NumProbes, r.BinsSet, r.Density)
	}
}
