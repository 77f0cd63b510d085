package review

import (
	"math"
	"strconv"
)

// Aggregate turns per-file findings into a PR-level report. existing holds
// the "path:line" keys of inline comments already on the pull request;
// issues at those positions do not produce new inline comments, so repeated
// runs stay idempotent. Aggregate never fails: findings with a zero score or
// no issues simply contribute nothing but their score.
func Aggregate(findings []Finding, existing map[string]bool) Report {
	stats := ComputeStats(findings)
	rec := Recommend(stats.AverageScore)
	if findings == nil {
		findings = []Finding{}
	}
	return Report{
		Body:           RenderBody(findings, stats, rec),
		InlineComments: InlineComments(findings, existing),
		Stats:          stats,
		Recommendation: rec,
		Findings:       findings,
	}
}

// ComputeStats tallies issues by type and category and averages scores.
// The average is rounded half up; no findings give an average of 0.
func ComputeStats(findings []Finding) Stats {
	var s Stats
	if len(findings) == 0 {
		return s
	}

	total := 0
	for _, f := range findings {
		total += f.Score
		for _, issue := range f.Issues {
			switch issue.Type {
			case IssueError:
				s.ErrorCount++
			case IssueWarning:
				s.WarningCount++
			case IssueSuggestion:
				s.SuggestionCount++
			}
			switch issue.Category {
			case CategorySecurity:
				s.SecurityIssueCount++
			case CategoryPerformance:
				s.PerformanceIssueCount++
			}
		}
	}
	s.AverageScore = int(math.Floor(float64(total)/float64(len(findings)) + 0.5))
	return s
}

// Recommend maps an average score to an action and risk label. Each
// threshold is an inclusive lower bound.
func Recommend(score int) Recommendation {
	switch {
	case score >= 90:
		return Recommendation{Action: ActionApprove, Risk: RiskLow}
	case score >= 75:
		return Recommendation{Action: ActionApproveWithComments, Risk: RiskLowMedium}
	case score >= 60:
		return Recommendation{Action: ActionRequestChanges, Risk: RiskMedium}
	default:
		return Recommendation{Action: ActionReject, Risk: RiskHigh}
	}
}

// CommentKey identifies an inline comment position.
func CommentKey(path string, line int) string {
	return path + ":" + strconv.Itoa(line)
}

// InlineComments emits one comment per issue with a positive line number,
// skipping positions listed in existing and positions already emitted in
// this call.
func InlineComments(findings []Finding, existing map[string]bool) []InlineComment {
	comments := []InlineComment{}
	emitted := make(map[string]bool)
	for _, f := range findings {
		for _, issue := range f.Issues {
			if issue.Line <= 0 {
				continue
			}
			key := CommentKey(f.Filename, issue.Line)
			if existing[key] || emitted[key] {
				continue
			}
			emitted[key] = true
			comments = append(comments, InlineComment{
				Path: f.Filename,
				Line: issue.Line,
				Body: formatInlineComment(issue),
			})
		}
	}
	return comments
}

// FailedFinding is the placeholder for a file whose review could not be
// completed. It scores 0 and carries no issues.
func FailedFinding(filename, language, status string, err error) Finding {
	summary := "Review failed"
	if err != nil {
		summary = "Review failed: " + err.Error()
	}
	return Finding{
		Filename:    filename,
		Language:    language,
		Status:      status,
		Summary:     summary,
		Issues:      []Issue{},
		Suggestions: []string{},
		Strengths:   []string{},
		Concerns:    []string{},
	}
}
