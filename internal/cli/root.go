// Package cli implements the readability CLI commands.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rcliao/readability/internal/config"
	"github.com/rcliao/readability/internal/store"
)

var (
	dbPath      string
	formatFlag  string
	configPath  string
	verboseFlag bool

	// cfg is the loaded configuration, set before any command runs.
	cfg = config.Defaults()
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "readability",
	Short: "Readability scores for English and Spanish text",
	Long: "Counts sentences, words and syllables in plain text or Markdown and reports " +
		"Flesch, Flesch-Kincaid, Fog and SMOG scores for English, or Fernández Huerta, " +
		"Flesch-Szigriszt and Inflesz for Spanish. Reports can be saved to a SQLite history.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
		loadConfig()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $READABILITY_DB or ~/.readability/history.db)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: text or json")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: nearest .readability.yml)")
	RootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Log debug diagnostics to stderr")
}

func setupLogging() {
	level := slog.LevelInfo
	if verboseFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

func loadConfig() {
	path := configPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return
		}
		path, err = config.Discover(wd)
		if err != nil {
			slog.Warn("config discovery failed", "error", err)
			return
		}
		if path == "" {
			return
		}
	}
	c, err := config.Load(path)
	if err != nil {
		exitErr("load config", err)
	}
	slog.Debug("config loaded", "path", path)
	cfg = c
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("READABILITY_DB"); env != "" {
		return env
	}
	if p := cfg.DBPath(); p != "" {
		return p
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".readability", "history.db")
}

func openStore() (*store.SQLiteStore, error) {
	path := getDBPath()
	slog.Debug("opening store", "path", path)
	return store.NewSQLiteStore(path)
}

func jsonOutput() bool { return formatFlag == "json" }

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
