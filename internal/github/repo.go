package github

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	vcsurl "github.com/gitsight/go-vcsurl"
	"github.com/go-git/go-git/v5"
)

// DetectRepo resolves owner/repo from the origin remote of the git
// repository containing dir.
func DetectRepo(dir string) (owner, repo string, err error) {
	r, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", "", fmt.Errorf("cannot detect repo: opening git repository: %w", err)
	}
	remote, err := r.Remote("origin")
	if err != nil {
		return "", "", fmt.Errorf("cannot detect repo: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", "", fmt.Errorf("cannot detect repo: origin has no URL")
	}
	return ParseRemoteURL(urls[0])
}

// ParseRemoteURL extracts owner/repo from a git remote URL.
func ParseRemoteURL(raw string) (owner, repo string, err error) {
	info, err := vcsurl.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", fmt.Errorf("cannot parse owner/repo from remote URL %q: %w", raw, err)
	}
	if info.Username == "" || info.Name == "" {
		return "", "", fmt.Errorf("cannot parse owner/repo from remote URL %q", raw)
	}
	return info.Username, strings.TrimSuffix(info.Name, ".git"), nil
}

// SplitRepository splits an "owner/repo" string such as GITHUB_REPOSITORY.
func SplitRepository(full string) (owner, repo string, err error) {
	parts := strings.Split(strings.TrimSpace(full), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q, want owner/repo", full)
	}
	return parts[0], parts[1], nil
}

type actionsEvent struct {
	Number      int `json:"number"`
	PullRequest struct {
		Number int `json:"number"`
	} `json:"pull_request"`
}

// EventPullRequestNumber reads the pull request number from a GitHub
// Actions event payload (the file named by GITHUB_EVENT_PATH).
func EventPullRequestNumber(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading event payload: %w", err)
	}
	var ev actionsEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return 0, fmt.Errorf("parsing event payload: %w", err)
	}
	if ev.PullRequest.Number > 0 {
		return ev.PullRequest.Number, nil
	}
	if ev.Number > 0 {
		return ev.Number, nil
	}
	return 0, fmt.Errorf("event payload has no pull request number")
}
