package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v47/github"
	"golang.org/x/oauth2"

	"github.com/dshills/prreview/internal/review"
	"github.com/dshills/prreview/internal/selector"
)

const (
	defaultAPIURL = "https://api.github.com"
	perPage       = 100
)

// Review events accepted by the pull request reviews API.
const (
	EventApprove        = "APPROVE"
	EventRequestChanges = "REQUEST_CHANGES"
	EventComment        = "COMMENT"
)

// Client provides access to one repository's pull requests.
type Client struct {
	gh    *gh.Client
	owner string
	repo  string
}

// Options configures a Client.
type Options struct {
	Token  string
	APIURL string
	Owner  string
	Repo   string
}

// NewClient creates a token-authenticated client for owner/repo.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if opts.Token == "" {
		return nil, fmt.Errorf("GITHUB_TOKEN environment variable is not set")
	}
	if opts.Owner == "" || opts.Repo == "" {
		return nil, fmt.Errorf("repository owner and name are required")
	}

	apiURL := opts.APIURL
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	base, err := url.Parse(strings.TrimRight(apiURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parsing API URL: %w", err)
	}

	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token}))
	client := gh.NewClient(httpClient)
	client.BaseURL = base

	return &Client{gh: client, owner: opts.Owner, repo: opts.Repo}, nil
}

// ListFiles returns every file changed by the pull request.
func (c *Client) ListFiles(ctx context.Context, number int) ([]selector.ChangedFile, error) {
	var files []selector.ChangedFile
	opts := &gh.ListOptions{PerPage: perPage}
	for {
		page, resp, err := c.gh.PullRequests.ListFiles(ctx, c.owner, c.repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("listing files of PR #%d: %w", number, err)
		}
		for _, f := range page {
			files = append(files, selector.ChangedFile{
				Path:    f.GetFilename(),
				Status:  selector.FileStatus(f.GetStatus()),
				Changes: f.GetChanges(),
				Patch:   f.GetPatch(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return files, nil
}

// HeadSHA returns the commit the pull request currently points at.
func (c *Client) HeadSHA(ctx context.Context, number int) (string, error) {
	pr, _, err := c.gh.PullRequests.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		return "", fmt.Errorf("fetching PR #%d: %w", number, err)
	}
	sha := pr.GetHead().GetSHA()
	if sha == "" {
		return "", fmt.Errorf("PR #%d has no head commit", number)
	}
	return sha, nil
}

// GetContent returns the text of a file at ref.
func (c *Client) GetContent(ctx context.Context, path, ref string) (string, error) {
	file, _, _, err := c.gh.Repositories.GetContents(ctx, c.owner, c.repo, path,
		&gh.RepositoryContentGetOptions{Ref: ref})
	if err != nil {
		return "", fmt.Errorf("fetching %s@%s: %w", path, ref, err)
	}
	if file == nil {
		return "", fmt.Errorf("%s is a directory", path)
	}
	content, err := file.GetContent()
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", path, err)
	}
	return content, nil
}

// ExistingCommentKeys returns the "path:line" keys of the pull request's
// inline review comments.
func (c *Client) ExistingCommentKeys(ctx context.Context, number int) (map[string]bool, error) {
	keys := make(map[string]bool)
	opts := &gh.PullRequestListCommentsOptions{ListOptions: gh.ListOptions{PerPage: perPage}}
	for {
		comments, resp, err := c.gh.PullRequests.ListComments(ctx, c.owner, c.repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("listing comments of PR #%d: %w", number, err)
		}
		for _, cm := range comments {
			// Outdated comments have no line in the current diff; their
			// original_line refers to an older commit.
			line := cm.GetLine()
			if cm.GetPath() == "" || line == 0 {
				continue
			}
			keys[review.CommentKey(cm.GetPath(), line)] = true
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return keys, nil
}

// PostComment adds a single PR-level comment.
func (c *Client) PostComment(ctx context.Context, number int, body string) error {
	_, _, err := c.gh.Issues.CreateComment(ctx, c.owner, c.repo, number, &gh.IssueComment{Body: gh.String(body)})
	if err != nil {
		return fmt.Errorf("posting comment on PR #%d: %w", number, err)
	}
	return nil
}

// Review is a pull request review to submit.
type Review struct {
	CommitID string
	Body     string
	Event    string
	Comments []review.InlineComment
}

// SubmitReview posts a review with inline comments anchored to the right
// side of the diff.
func (c *Client) SubmitReview(ctx context.Context, number int, r Review) error {
	req := &gh.PullRequestReviewRequest{
		Body:  gh.String(r.Body),
		Event: gh.String(r.Event),
	}
	if r.CommitID != "" {
		req.CommitID = gh.String(r.CommitID)
	}
	for _, cm := range r.Comments {
		req.Comments = append(req.Comments, &gh.DraftReviewComment{
			Path: gh.String(cm.Path),
			Line: gh.Int(cm.Line),
			Side: gh.String("RIGHT"),
			Body: gh.String(cm.Body),
		})
	}

	if _, _, err := c.gh.PullRequests.CreateReview(ctx, c.owner, c.repo, number, req); err != nil {
		return fmt.Errorf("submitting review on PR #%d: %w", number, err)
	}
	return nil
}

// EventFor maps a recommendation to a review event.
func EventFor(action review.Action) string {
	switch action {
	case review.ActionApprove:
		return EventApprove
	case review.ActionRequestChanges, review.ActionReject:
		return EventRequestChanges
	default:
		return EventComment
	}
}

// IsUnprocessable reports whether GitHub rejected a request as invalid,
// which for reviews usually means an inline comment points outside the diff.
func IsUnprocessable(err error) bool {
	var er *gh.ErrorResponse
	return errors.As(err, &er) && er.Response != nil && er.Response.StatusCode == http.StatusUnprocessableEntity
}

// IsAuthError reports whether GitHub rejected the token.
func IsAuthError(err error) bool {
	var er *gh.ErrorResponse
	if !errors.As(err, &er) || er.Response == nil {
		return false
	}
	return er.Response.StatusCode == http.StatusUnauthorized || er.Response.StatusCode == http.StatusForbidden
}
