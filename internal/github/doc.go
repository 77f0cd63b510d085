// Package github talks to the GitHub REST API on behalf of a review run.
//
// Client wraps go-github: it lists a pull request's changed files, fetches
// file content at the head commit, lists existing inline comments for
// duplicate suppression, and posts either a single PR comment or a review
// with inline comments. DetectRepo resolves owner/repo from the local
// checkout's origin remote, and EventPullRequestNumber reads the PR number
// from a GitHub Actions event payload.
package github
