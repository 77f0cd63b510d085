package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/prreview/internal/providers"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List LLM providers and their credentials status",
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		for _, name := range providers.Names() {
			status := "missing"
			if os.Getenv(providers.KeyEnv[name]) != "" {
				status = "set"
			}
			fmt.Fprintf(w, "%s:\n", name)
			fmt.Fprintf(w, "  default model: %s\n", providers.DefaultModels[name])
			fmt.Fprintf(w, "  api key:       %s (%s)\n\n", providers.KeyEnv[name], status)
		}
	},
}

var providersCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate provider credentials with a one-token request",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, ok := loadConfig()
		if !ok {
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Checking %s...\n", cfg.Provider)

		p, err := providers.New(providers.Config{
			Provider:  cfg.Provider,
			Model:     cfg.Model,
			MaxTokens: 16,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
			exitCode = errorExitCode(err)
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if _, err := p.Generate(ctx, "Respond with exactly: ok"); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
			exitCode = errorExitCode(err)
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "OK: %s is configured and responding\n", p.Name())
		return nil
	},
}

func init() {
	providersCmd.AddCommand(providersCheckCmd)
	providersCheckCmd.Flags().StringVar(&flagProvider, "provider", "", "Provider to check")
	providersCheckCmd.Flags().StringVar(&flagModel, "model", "", "Model to check")
}
