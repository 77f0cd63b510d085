package review

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dshills/prreview/internal/selector"
)

// rawFinding is the JSON object returned by the provider.
type rawFinding struct {
	Summary     string      `json:"summary"`
	Score       *flexNumber `json:"score"`
	Issues      []rawIssue  `json:"issues"`
	Suggestions []string    `json:"suggestions"`
	Strengths   []string    `json:"strengths"`
	Concerns    []string    `json:"concerns"`
}

type rawIssue struct {
	Type       string     `json:"type"`
	Line       flexNumber `json:"line"`
	Message    string     `json:"message"`
	Suggestion string     `json:"suggestion"`
	Category   string     `json:"category"`
}

// flexNumber accepts a JSON number or a numeric string such as "12".
// An empty string or null decodes as 0.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("not a number: %q", s)
		}
		*n = flexNumber(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = flexNumber(f)
	return nil
}

var errNoJSON = errors.New("no JSON object in response")

// ParseFinding decodes a provider response into a Finding for the given
// candidate. Scores are clamped to 0-100, unknown issue types become
// suggestions, and issues without a message are dropped.
func ParseFinding(content string, c selector.Candidate) (Finding, error) {
	obj, err := extractJSONObject(content)
	if err != nil {
		return Finding{}, err
	}

	// Decode the first value only; prose after the object is ignored.
	var raw rawFinding
	if err := json.NewDecoder(strings.NewReader(obj)).Decode(&raw); err != nil {
		return Finding{}, fmt.Errorf("invalid JSON object: %w", err)
	}
	if raw.Score == nil {
		return Finding{}, fmt.Errorf("response has no score")
	}

	f := Finding{
		Filename:    c.Path,
		Language:    c.Language,
		Status:      string(c.Status),
		Summary:     strings.TrimSpace(raw.Summary),
		Score:       clampScore(float64(*raw.Score)),
		Issues:      make([]Issue, 0, len(raw.Issues)),
		Suggestions: nonNil(raw.Suggestions),
		Strengths:   nonNil(raw.Strengths),
		Concerns:    nonNil(raw.Concerns),
	}

	for _, ri := range raw.Issues {
		msg := strings.TrimSpace(ri.Message)
		if msg == "" {
			continue
		}
		line := int(ri.Line)
		if line < 0 {
			line = 0
		}
		f.Issues = append(f.Issues, Issue{
			Type:       normalizeIssueType(ri.Type),
			Line:       line,
			Message:    msg,
			Suggestion: strings.TrimSpace(ri.Suggestion),
			Category:   strings.ToLower(strings.TrimSpace(ri.Category)),
		})
	}
	return f, nil
}

// extractJSONObject strips markdown fences and leading prose, returning
// the text from the first '{' onward.
func extractJSONObject(content string) (string, error) {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		lines := strings.Split(content, "\n")
		end := len(lines)
		if end > 1 && strings.TrimSpace(lines[end-1]) == "```" {
			end--
		}
		content = strings.Join(lines[1:end], "\n")
	}

	start := strings.Index(content, "{")
	if start < 0 {
		return "", errNoJSON
	}
	return content[start:], nil
}

func normalizeIssueType(t string) IssueType {
	switch IssueType(strings.ToLower(strings.TrimSpace(t))) {
	case IssueError:
		return IssueError
	case IssueWarning:
		return IssueWarning
	default:
		return IssueSuggestion
	}
}

func clampScore(s float64) int {
	n := int(math.Floor(s + 0.5))
	switch {
	case n < 0:
		return 0
	case n > 100:
		return 100
	}
	return n
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
