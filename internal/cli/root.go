// Package cli implements the concordance command line.
package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gcbaptista/go-concordance/config"
	"github.com/gcbaptista/go-concordance/internal/engine"
)

const (
	formatJSON = "json"
	formatText = "text"
)

var (
	samplesDir string
	logLevel   string
	formatFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "concordance",
	Short: "Keyword-in-context search over plain-text corpora",
	Long: "Serves and queries a directory of UTF-8 .txt corpora. Every search returns each\n" +
		"matching line with the words around the hit.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if formatFlag != formatJSON && formatFlag != formatText {
			return fmt.Errorf("unknown format %q (must be %s or %s)", formatFlag, formatJSON, formatText)
		}
		slog.SetDefault(newLogger(logLevel))
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&samplesDir, "samples-dir", "d", "", "Corpus directory (default: $"+config.EnvSamplesDir+" or ./samples)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", formatJSON, "Output format: json or text")
}

// parseLevel maps a log level name to a slog level. Unknown names give info.
func parseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newLogger(level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(level)}))
}

// loadSettings resolves settings from the environment, then flags.
func loadSettings() config.Settings {
	settings := config.Settings{LogLevel: logLevel}
	settings.ApplyEnv()
	if samplesDir != "" {
		settings.SamplesDir = samplesDir
	}
	settings.ApplyDefaults()
	return settings
}

func openEngine(settings config.Settings) (*engine.Engine, error) {
	return engine.NewEngine(settings, engine.WithLogger(slog.Default()))
}

func textOutput() bool {
	return formatFlag == formatText
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
