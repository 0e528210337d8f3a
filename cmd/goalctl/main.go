package main

import (
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/templui/goalflow/cmd/goalctl/cmd"
	"github.com/templui/goalflow/internal/logger"
)

func main() {
	_ = godotenv.Load()

	env := &cmd.Env{}
	var verbose bool

	rootCmd := &cobra.Command{
		Use:          "goalctl",
		Short:        "Plan and track weekly goals from the terminal",
		SilenceUsage: true,
		PersistentPreRun: func(c *cobra.Command, args []string) {
			if verbose {
				logger.InitWriter(os.Stderr, true, "")
				return
			}
			logger.InitWriter(io.Discard, false, os.Getenv("SENTRY_DSN"))
		},
	}

	// Persistent flags for the API session
	rootCmd.PersistentFlags().StringVar(&env.URL, "url", envOr("GOALFLOW_URL", "http://localhost:8090"), "GoalFlow server URL or set GOALFLOW_URL env")
	rootCmd.PersistentFlags().StringVar(&env.Email, "email", os.Getenv("GOALFLOW_EMAIL"), "Account email or set GOALFLOW_EMAIL env")
	rootCmd.PersistentFlags().StringVar(&env.Password, "password", os.Getenv("GOALFLOW_PASSWORD"), "Account password or set GOALFLOW_PASSWORD env")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Write debug logs to stderr")

	rootCmd.AddCommand(
		cmd.BoardCmd(env),
		cmd.AddCmd(env),
		cmd.MoveCmd(env),
		cmd.EditCmd(env),
		cmd.RmCmd(env),
		cmd.ExportCmd(env),
		cmd.ReportCmd(env),
		cmd.WeekCmd(),
		cmd.MigrateCmd(),
	)

	err := rootCmd.Execute()
	logger.Flush(2 * time.Second)
	if err != nil {
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
