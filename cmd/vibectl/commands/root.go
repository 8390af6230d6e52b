package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vibechart/internal/gateway/logging"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "vibectl",
	Short: "vibectl edits chart configurations from the command line",
	Long: `vibectl runs the same translate, merge, beautify and validate pipeline
as the gateway against configuration files on disk.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log pipeline stages to stderr")
}

// AddCommand allows adding subcommands from other files.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := logging.New("local", "debug")
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
