// Package cmd provides CLI commands for the lexatlas dataset builder.
package cmd

import (
	"log/slog"
	"os"

	"github.com/adalundhe/lexatlas/core/config"
	"github.com/spf13/cobra"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

var rootCmd = &cobra.Command{
	Use:   "lexatlas",
	Short: "Lexatlas - word-association game dataset builder",
	Long: `Lexatlas builds the dataset behind a word-association game: it selects a
vocabulary by corpus frequency, computes sentence-embedding vectors for each
word, projects them to 2-D map coordinates, and benchmarks the serialization
formats a client could ship.`,
}

// =============================================================================
// Global Flags
// =============================================================================

var (
	rootConfigPath string
	rootVerbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to yaml config file")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Verbose logging")
}

func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds the run logger. Verbose enables info level; logs go to
// stderr so stdout stays clean for reports and JSON output.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if rootVerbose {
		level = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

func loadConfig() (*config.Config, error) {
	return config.Load(rootConfigPath)
}
