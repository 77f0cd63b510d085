package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/dshills/prreview/internal/config"
	"github.com/dshills/prreview/internal/github"
	"github.com/dshills/prreview/internal/output"
	"github.com/dshills/prreview/internal/providers"
	"github.com/dshills/prreview/internal/review"
	"github.com/dshills/prreview/internal/selector"
)

// Shared review flags
var (
	flagProvider     string
	flagModel        string
	flagLevel        string
	flagMaxFiles     int
	flagExclude      string
	flagFormat       string
	flagOut          string
	flagFailOn       string
	flagFailOnReject bool
	flagCommentMode  string
	flagDryRun       bool
	flagNoRedact     bool
	flagOwner        string
	flagRepo         string
	flagLogLevel     string
)

func addRepoFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagOwner, "owner", "", "GitHub repository owner (auto-detected if omitted)")
	cmd.Flags().StringVar(&flagRepo, "repo", "", "GitHub repository name (auto-detected if omitted)")
	cmd.Flags().IntVar(&flagMaxFiles, "max-files", 0, "Maximum number of files to review (1-100)")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "Exclude file path globs (comma-separated)")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
}

func addReviewFlags(cmd *cobra.Command) {
	addRepoFlags(cmd)
	cmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (openai, anthropic, openrouter)")
	cmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	cmd.Flags().StringVar(&flagLevel, "level", "", "Review level (basic, standard, detailed)")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format (markdown, json, sarif)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&flagFailOn, "fail-on", "", "Exit 1 at this recommendation or worse (none, reject, request-changes)")
	cmd.Flags().BoolVar(&flagFailOnReject, "fail-on-reject", false, "Exit 1 when the recommendation is reject or request-changes")
	cmd.Flags().StringVar(&flagCommentMode, "comment-mode", "", "How to publish: review (inline comments) or comment (single PR comment)")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Run review but don't post to GitHub")
	cmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagLevel != "" {
		m["reviewLevel"] = flagLevel
	}
	if flagMaxFiles > 0 {
		m["maxFiles"] = strconv.Itoa(flagMaxFiles)
	}
	if flagExclude != "" {
		m["excludePatterns"] = flagExclude
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagFailOn != "" {
		m["failOn"] = flagFailOn
	}
	if flagFailOnReject {
		m["failOn"] = "request-changes"
	}
	if flagCommentMode != "" {
		m["commentMode"] = flagCommentMode
	}
	if flagLogLevel != "" {
		m["logLevel"] = flagLogLevel
	}
	return m
}

// loadConfig loads and validates the effective configuration. Invalid
// configuration is a usage error.
func loadConfig() (config.Config, bool) {
	cfg, err := config.Load(flagConfig, buildOverrides())
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return config.Config{}, false
	}
	if flagNoRedact {
		cfg.Privacy.RedactSecrets = false
	}
	return cfg, true
}

// resolveRepository picks owner/repo from flags, then the configured
// repository (GITHUB_REPOSITORY in Actions), then the origin remote of the
// working directory.
func resolveRepository(cfg config.Config) (string, string, error) {
	owner, repo := flagOwner, flagRepo
	if owner != "" && repo != "" {
		return owner, repo, nil
	}

	var detectedOwner, detectedRepo string
	var err error
	if cfg.GitHub.Repository != "" {
		detectedOwner, detectedRepo, err = github.SplitRepository(cfg.GitHub.Repository)
	} else {
		detectedOwner, detectedRepo, err = github.DetectRepo(".")
	}
	if err != nil {
		return "", "", fmt.Errorf("%w; use --owner and --repo to specify the repository", err)
	}
	if owner == "" {
		owner = detectedOwner
	}
	if repo == "" {
		repo = detectedRepo
	}
	return owner, repo, nil
}

// resolvePRNumber reads the number from args, falling back to the GitHub
// Actions event payload.
func resolvePRNumber(args []string) (int, error) {
	if len(args) > 0 {
		n, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid PR number %q", args[0])
		}
		return n, nil
	}
	path := os.Getenv("GITHUB_EVENT_PATH")
	if path == "" {
		return 0, errors.New("PR number is required outside GitHub Actions")
	}
	return github.EventPullRequestNumber(path)
}

// setup resolves everything a command needs to talk to GitHub.
func setup(ctx context.Context, args []string) (config.Config, *github.Client, int, hclog.Logger, bool) {
	cfg, ok := loadConfig()
	if !ok {
		return cfg, nil, 0, nil, false
	}
	logger := newLogger(cfg.LogLevel, os.Stderr)

	number, err := resolvePRNumber(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return cfg, nil, 0, nil, false
	}

	owner, repo, err := resolveRepository(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitUsageError
		return cfg, nil, 0, nil, false
	}

	client, err := github.NewClient(ctx, github.Options{
		Token:  config.GitHubToken(),
		APIURL: cfg.GitHub.APIURL,
		Owner:  owner,
		Repo:   repo,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitAuthError
		return cfg, nil, 0, nil, false
	}

	logger.Debug("resolved pull request", "owner", owner, "repo", repo, "pr", number)
	return cfg, client, number, logger, true
}

func engineOptions(cfg config.Config) review.Options {
	return review.Options{
		Selection: selector.Options{
			MaxFiles:        cfg.MaxFiles,
			ExcludePatterns: cfg.ExcludePatterns,
		},
		Level:         cfg.ReviewLevel,
		Concurrency:   cfg.Concurrency,
		RedactSecrets: cfg.Privacy.RedactSecrets,
		RedactPaths:   cfg.Privacy.RedactPaths,
	}
}

// errorExitCode maps a failure to an exit code.
func errorExitCode(err error) int {
	if providers.IsAuthError(err) || github.IsAuthError(err) {
		return ExitAuthError
	}
	return ExitRuntimeError
}

// findingsExitCode applies the fail-on policy to a recommendation.
func findingsExitCode(failOn string, action review.Action) int {
	switch failOn {
	case "reject":
		if action == review.ActionReject {
			return ExitFindings
		}
	case "request-changes":
		if action == review.ActionReject || action == review.ActionRequestChanges {
			return ExitFindings
		}
	}
	return ExitSuccess
}

// publisher is the write side of the code host.
type publisher interface {
	HeadSHA(ctx context.Context, number int) (string, error)
	PostComment(ctx context.Context, number int, body string) error
	SubmitReview(ctx context.Context, number int, r github.Review) error
}

// publish posts the report. In review mode a rejected set of inline
// comments (typically a line outside the diff) is retried as a body-only
// review so the summary is never lost.
func publish(ctx context.Context, p publisher, number int, report *review.Report, mode string, logger hclog.Logger) error {
	if mode == "comment" {
		logger.Info("posting PR comment", "pr", number)
		return p.PostComment(ctx, number, report.Body)
	}

	sha, err := p.HeadSHA(ctx, number)
	if err != nil {
		return err
	}
	r := github.Review{
		CommitID: sha,
		Body:     report.Body,
		Event:    github.EventFor(report.Recommendation.Action),
		Comments: report.InlineComments,
	}
	logger.Info("submitting review", "pr", number, "event", r.Event, "inline_comments", len(r.Comments))

	err = p.SubmitReview(ctx, number, r)
	if err != nil && github.IsUnprocessable(err) && len(r.Comments) > 0 {
		logger.Warn("inline comments rejected, retrying without them", "error", err)
		r.Comments = nil
		err = p.SubmitReview(ctx, number, r)
	}
	return err
}

var reviewCmd = &cobra.Command{
	Use:   "review [pr-number]",
	Short: "Review a GitHub pull request",
	Long: "Select the pull request's most relevant files, review each with the configured provider and " +
		"publish one aggregated review. Inside GitHub Actions the PR number is read from the event payload.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, client, number, logger, ok := setup(ctx, args)
		if !ok {
			return nil
		}
		if !cfg.Privacy.RedactSecrets {
			logger.Warn("secret redaction is disabled")
		}

		gen, err := providers.New(providers.Config{
			Provider:  cfg.Provider,
			Model:     cfg.Model,
			MaxTokens: cfg.MaxTokens,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = errorExitCode(err)
			return nil
		}

		engine := review.NewEngine(client, gen, logger, engineOptions(cfg))
		report, err := engine.Run(ctx, number)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = errorExitCode(err)
			return nil
		}

		if err := output.WriteReport(report, cfg.Format, flagOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		if flagDryRun {
			logger.Info("dry run, not posting to GitHub",
				"files", len(report.Findings), "inline_comments", len(report.InlineComments))
		} else if err := publish(ctx, client, number, report, cfg.CommentMode, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error posting review: %v\n", err)
			exitCode = errorExitCode(err)
			return nil
		}

		exitCode = findingsExitCode(cfg.FailOn, report.Recommendation.Action)
		return nil
	},
}

var selectCmd = &cobra.Command{
	Use:   "select [pr-number]",
	Short: "Show which files of a pull request would be reviewed",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, client, number, logger, ok := setup(ctx, args)
		if !ok {
			return nil
		}

		engine := review.NewEngine(client, nil, logger, engineOptions(cfg))
		candidates, err := engine.Select(ctx, number)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = errorExitCode(err)
			return nil
		}
		printCandidates(cmd, candidates)
		return nil
	},
}

func printCandidates(cmd *cobra.Command, candidates []selector.Candidate) {
	w := cmd.OutOrStdout()
	if len(candidates) == 0 {
		fmt.Fprintln(w, "No files eligible for review.")
		return
	}
	fmt.Fprintf(w, "%-8s %-12s %-8s %-9s %s\n", "PRIORITY", "LANGUAGE", "CHANGES", "STATUS", "PATH")
	for _, c := range candidates {
		fmt.Fprintf(w, "%-8d %-12s %-8d %-9s %s\n", c.Priority, c.Language, c.Changes, c.Status, c.Path)
	}
}

func init() {
	addReviewFlags(reviewCmd)
	addRepoFlags(selectCmd)
}
