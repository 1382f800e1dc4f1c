package ghostcomment

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	flagJSON          bool
	flagNoColor       bool
	flagVerbose       bool
	flagNoCache       bool
	flagNoUpdateCheck bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the ghostcomment CLI.
var rootCmd = &cobra.Command{
	Use:           "ghostcomment",
	Short:         "Find and remove ghost comments",
	Long:          "ghostcomment finds specially marked comment lines in your working tree, posts them as PR review comments, and deletes them before merge.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the ghostcomment CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "do not write the scan snapshot")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
}

// newLogger builds the logger commands hand to the engine and cleaner.
// Logs go to stderr so stdout stays clean for JSON output.
func newLogger() *zap.Logger {
	level := zapcore.WarnLevel
	if flagVerbose {
		level = zapcore.DebugLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
