// Prreview is a CLI and GitHub Actions entrypoint for reviewing pull
// requests with LLM providers.
//
// It picks the most relevant changed files of a pull request, reviews each
// one, and posts a single aggregated review with inline comments. Exit codes
// are deterministic so the command can gate CI.
//
// Usage:
//
//	prreview review 123                 # review PR #123 and post the result
//	prreview review 123 --dry-run       # print the review without posting
//	prreview review --fail-on-reject    # inside Actions; PR number from the event payload
//	prreview select 123                 # show which files would be reviewed
//	prreview config init                # write .prreview.yml with defaults
//	prreview providers check            # verify provider credentials
package main
