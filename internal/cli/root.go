// Package cli implements the scriptorium command line.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tsawler/scriptorium"
)

// version is set at build time with -ldflags "-X".
var version = "dev"

var (
	verbose    bool
	configPath string
	workers    int
)

// logger is configured before every command runs.
var logger = slog.Default()

var rootCmd = &cobra.Command{
	Use:   "scriptorium",
	Short: "Find columns, lines and signatures on manuscript pages",
	Long: `scriptorium lays out scanned manuscript pages: it splits a page into
column zones, follows the median line of every line of writing and describes
each line as a sequence of stroke shapes.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
			Level: level,
		}))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML file overriding the default tuning parameters")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", 0, "goroutines per stage (0 uses every CPU)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig returns the configuration named by --config, or the defaults.
func loadConfig() (scriptorium.Config, error) {
	if configPath == "" {
		return scriptorium.DefaultConfig(), nil
	}
	cfg, err := scriptorium.LoadConfig(configPath)
	if err != nil {
		return scriptorium.Config{}, err
	}
	logger.Debug("loaded config", "path", configPath)
	return cfg, nil
}

// logWarnings reports analysis warnings for one page.
func logWarnings(path string, warnings []scriptorium.Warning) {
	for _, w := range warnings {
		logger.Warn(w.Message, "page", path, "stage", w.Stage, "column", w.Column)
	}
}
