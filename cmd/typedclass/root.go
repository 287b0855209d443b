package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/reoring/typedclass/i18n"
	"github.com/reoring/typedclass/internal/logging"
)

// errFailed marks a run that printed its own diagnostics; Execute only sets
// the exit status for it.
var errFailed = errors.New("check failed")

var rootCmd = &cobra.Command{
	Use:   "typedclass",
	Short: "Check data records against declared record shapes",
	Long: `typedclass loads record declarations from a YAML or JSON shape file and
checks JSON, NDJSON or YAML records against them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if lang, _ := cmd.Flags().GetString("lang"); lang != "" {
			i18n.SetLanguage(lang)
		}
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log progress at debug level")
	rootCmd.PersistentFlags().String("lang", "", "Message language (en, ja)")
}

func logger(cmd *cobra.Command) *slog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return logging.NewWriter(cmd.ErrOrStderr(), logging.Level(verbose))
}
