// Package main provides the claudechat CLI entry point. Running with no
// subcommand starts the interactive chat TUI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"claudechat/cmd/claudechat/chat"
)

var (
	verbose bool

	logger *zap.Logger
)

var rootCmd *cobra.Command

var rootCmdDef = &cobra.Command{
	Use:   "claudechat",
	Short: "claudechat - a terminal chat client for Claude",
	Long: `claudechat is a terminal client for the Anthropic Messages API.

Conversations are stored locally in SQLite and survive restarts. The API key
can be set inside the chat (/key), via the config subcommand, or through the
ANTHROPIC_API_KEY environment variable.

Run without arguments to start the interactive chat interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive TUI has its own logging; skip zap for it.
		if cmd == rootCmd {
			return nil
		}

		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return chat.RunInteractiveChat()
	},
}

func init() {
	rootCmd = rootCmdDef
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
