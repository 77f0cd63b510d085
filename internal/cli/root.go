package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags "-X .../internal/cli.Version=v1.2.3".
var Version = "dev"

// Process exit codes. CI gates on ExitFindings; everything above it is a
// failure of the tool rather than of the pull request.
const (
	ExitSuccess      = 0
	ExitFindings     = 1
	ExitUsageError   = 2
	ExitAuthError    = 3
	ExitRuntimeError = 4
)

// exitCode is written by command handlers that finish without returning an
// error but still need a non-zero status.
var exitCode = ExitSuccess

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "prreview",
	Short: "AI pull request reviewer",
	Long: "prreview selects the most relevant files of a GitHub pull request, reviews each with an LLM " +
		"provider and posts one aggregated review with inline comments.",
	SilenceUsage: true,
}

// Run executes the command line and returns the process exit code. SIGINT
// and SIGTERM cancel the command's context.
func Run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exitCode = ExitSuccess
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return ExitUsageError
	}
	return exitCode
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print prreview version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "prreview", Version)
	},
}

func init() {
	rootCmd.Version = Version
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default .prreview.yml)")

	rootCmd.AddCommand(reviewCmd, selectCmd, configCmd, providersCmd, versionCmd)
}
