package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TolgaCulfa/sunum2/internal/logger"
)

var (
	logLevel string
	logFile  string
)

var rootCmd = &cobra.Command{
	Use:   "sunum2",
	Short: "sunum2 AI presentation service",
	Long: `sunum2 runtime modes:

Modes:
  sunum2          Run the web service (default)
  sunum2 serve    Run the web service
  sunum2 mcp      Expose generation tools over MCP stdio
  sunum2 models   List configured model tiers`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	Run: runServe,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logger.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
		if logFile != "" {
			if err := logger.SetFile(logFile); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info",
		"Log level: trace, debug, info, warn, error, fatal, panic")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"Mirror log output to a file")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
