package review

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/dshills/prreview/internal/providers"
	"github.com/dshills/prreview/internal/redact"
	"github.com/dshills/prreview/internal/selector"
)

// DefaultConcurrency limits parallel provider calls.
const DefaultConcurrency = 4

// PullRequestSource is the read side of the code host the engine needs.
type PullRequestSource interface {
	ListFiles(ctx context.Context, number int) ([]selector.ChangedFile, error)
	HeadSHA(ctx context.Context, number int) (string, error)
	GetContent(ctx context.Context, path, ref string) (string, error)
	ExistingCommentKeys(ctx context.Context, number int) (map[string]bool, error)
}

// Options controls a review run.
type Options struct {
	Selection     selector.Options
	Level         string
	Concurrency   int
	RedactSecrets bool
	RedactPaths   []string
}

// Engine reviews pull requests file by file and aggregates the results.
type Engine struct {
	source    PullRequestSource
	generator providers.Generator
	logger    hclog.Logger
	opts      Options
}

// NewEngine wires an engine. A nil logger discards output.
func NewEngine(source PullRequestSource, generator providers.Generator, logger hclog.Logger, opts Options) *Engine {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Level == "" {
		opts.Level = LevelStandard
	}
	return &Engine{source: source, generator: generator, logger: logger, opts: opts}
}

// Select lists the pull request's files and returns the review candidates.
func (e *Engine) Select(ctx context.Context, number int) ([]selector.Candidate, error) {
	files, err := e.source.ListFiles(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	candidates := selector.Select(files, e.opts.Selection)
	e.logger.Info("selected files for review",
		"pr", number, "changed", len(files), "selected", len(candidates))
	return candidates, nil
}

// Run reviews the pull request and returns the aggregated report. Failures
// on individual files are logged and replaced by zero-score findings. Only
// a failure to list files or a provider authentication error aborts the run.
func (e *Engine) Run(ctx context.Context, number int) (*Report, error) {
	start := time.Now()

	candidates, err := e.Select(ctx, number)
	if err != nil {
		return nil, err
	}

	ref := ""
	if e.opts.Level != LevelBasic && len(candidates) > 0 {
		ref, err = e.source.HeadSHA(ctx, number)
		if err != nil {
			e.logger.Warn("could not resolve head commit, reviewing patches only", "pr", number, "error", err)
		}
	}

	findings, err := e.reviewAll(ctx, candidates, ref)
	if err != nil {
		return nil, err
	}

	existing, err := e.source.ExistingCommentKeys(ctx, number)
	if err != nil {
		e.logger.Warn("could not list existing comments, duplicates are possible", "pr", number, "error", err)
		existing = map[string]bool{}
	}

	report := Aggregate(findings, existing)
	report.RunID = uuid.NewString()

	e.logger.Info("review complete",
		"pr", number,
		"run_id", report.RunID,
		"files", len(findings),
		"score", report.Stats.AverageScore,
		"action", report.Recommendation.Action,
		"inline_comments", len(report.InlineComments),
		"duration_ms", time.Since(start).Milliseconds())
	return &report, nil
}

// reviewAll reviews candidates in parallel with bounded concurrency. The
// returned findings keep candidate order. The first authentication error
// cancels the files still waiting for a slot or a provider reply.
func (e *Engine) reviewAll(ctx context.Context, candidates []selector.Candidate, ref string) ([]Finding, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	findings := make([]Finding, len(candidates))
	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	sem := make(chan struct{}, e.opts.Concurrency)

	for i, c := range candidates {
		wg.Add(1)
		go func(i int, c selector.Candidate) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()
			if ctx.Err() != nil {
				return
			}

			f, err := e.reviewFile(ctx, c, ref)
			if err != nil {
				once.Do(func() {
					firstErr = err
					cancel()
				})
				return
			}
			findings[i] = f
		}(i, c)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return findings, nil
}

// reviewFile never fails for an individual file; the error return is
// reserved for authentication failures, which would fail every file alike.
func (e *Engine) reviewFile(ctx context.Context, c selector.Candidate, ref string) (Finding, error) {
	log := e.logger.With("file", c.Path, "priority", c.Priority)

	var content string
	if ref != "" {
		var err error
		content, err = e.source.GetContent(ctx, c.Path, ref)
		if err != nil {
			log.Warn("could not fetch file content", "error", err)
			content = ""
		}
	}

	if e.opts.RedactSecrets {
		c.Patch = redact.Content(c.Patch, c.Path, e.opts.RedactPaths)
		if content != "" {
			content = redact.Content(content, c.Path, e.opts.RedactPaths)
		}
	}

	prompt := BuildPrompt(c, content, e.opts.Level)

	llmStart := time.Now()
	raw, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		if providers.IsAuthError(err) {
			return Finding{}, fmt.Errorf("provider %s: %w", e.generator.Name(), err)
		}
		log.Error("provider call failed", "provider", e.generator.Name(), "error", err)
		return FailedFinding(c.Path, c.Language, string(c.Status), err), nil
	}

	finding, err := ParseFinding(raw, c)
	if err != nil {
		log.Warn("could not parse provider response", "error", err)
		return FailedFinding(c.Path, c.Language, string(c.Status), fmt.Errorf("unparseable response: %w", err)), nil
	}

	log.Debug("file reviewed",
		"score", finding.Score,
		"issues", len(finding.Issues),
		"llm_ms", time.Since(llmStart).Milliseconds())
	return finding, nil
}
