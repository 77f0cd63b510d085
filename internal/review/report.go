package review

import (
	"fmt"
	"strings"
)

// RenderBody assembles the Markdown report. Sections always appear in this
// order: executive summary, statistics, critical issues, detailed findings.
func RenderBody(findings []Finding, stats Stats, rec Recommendation) string {
	var b strings.Builder

	b.WriteString("## AI Code Review\n\n")

	b.WriteString("### Executive Summary\n\n")
	fmt.Fprintf(&b, "- **Overall score:** %d/100\n", stats.AverageScore)
	fmt.Fprintf(&b, "- **Risk level:** %s\n", riskLabel(rec.Risk))
	fmt.Fprintf(&b, "- **Recommendation:** %s %s\n", actionIcon(rec.Action), actionLabel(rec.Action))
	fmt.Fprintf(&b, "- **Files reviewed:** %d\n\n", len(findings))

	b.WriteString("### Statistics\n\n")
	b.WriteString("| Metric | Count |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(&b, "| Errors | %d |\n", stats.ErrorCount)
	fmt.Fprintf(&b, "| Warnings | %d |\n", stats.WarningCount)
	fmt.Fprintf(&b, "| Suggestions | %d |\n", stats.SuggestionCount)
	fmt.Fprintf(&b, "| Security issues | %d |\n", stats.SecurityIssueCount)
	fmt.Fprintf(&b, "| Performance issues | %d |\n\n", stats.PerformanceIssueCount)

	b.WriteString("### Critical Issues\n\n")
	critical := 0
	for _, f := range findings {
		for _, issue := range f.Issues {
			if issue.Type != IssueError {
				continue
			}
			critical++
			fmt.Fprintf(&b, "- **%s** %s: %s\n", f.Filename, lineRef(issue.Line), issue.Message)
		}
	}
	if critical == 0 {
		b.WriteString("No critical issues found. :white_check_mark:\n")
	}
	b.WriteString("\n")

	b.WriteString("### Detailed Findings\n\n")
	if len(findings) == 0 {
		b.WriteString("No files were reviewed.\n\n")
	}
	for _, f := range findings {
		writeFileSection(&b, f)
	}

	b.WriteString("---\n")
	b.WriteString("*Generated by prreview. Automated feedback; verify before acting on it.*\n")
	return b.String()
}

func writeFileSection(b *strings.Builder, f Finding) {
	fmt.Fprintf(b, "#### `%s`\n\n", f.Filename)
	fmt.Fprintf(b, "**Score:** %d/100", f.Score)
	if f.Language != "" {
		fmt.Fprintf(b, " | **Language:** %s", f.Language)
	}
	if f.Status != "" {
		fmt.Fprintf(b, " | **Status:** %s", f.Status)
	}
	b.WriteString("\n\n")

	if f.Summary != "" {
		fmt.Fprintf(b, "%s\n\n", f.Summary)
	}

	writeList(b, "Strengths", f.Strengths)
	writeList(b, "Concerns", f.Concerns)

	if len(f.Issues) > 0 {
		b.WriteString("**Issues:**\n\n")
		for _, issue := range f.Issues {
			fmt.Fprintf(b, "- %s **%s** %s", issueIcon(issue.Type), issue.Type, lineRef(issue.Line))
			if issue.Category != "" {
				fmt.Fprintf(b, " [%s]", issue.Category)
			}
			fmt.Fprintf(b, ": %s\n", issue.Message)
			if issue.Suggestion != "" {
				fmt.Fprintf(b, "  - *Suggestion:* %s\n", issue.Suggestion)
			}
		}
		b.WriteString("\n")
	}

	writeList(b, "Suggestions", f.Suggestions)
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "**%s:**\n\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}

func formatInlineComment(issue Issue) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s **%s**", issueIcon(issue.Type), strings.ToUpper(string(issue.Type)))
	if issue.Category != "" {
		fmt.Fprintf(&b, " (%s)", issue.Category)
	}
	fmt.Fprintf(&b, "\n\n%s", issue.Message)
	if issue.Suggestion != "" {
		fmt.Fprintf(&b, "\n\n**Suggestion:** %s", issue.Suggestion)
	}
	return b.String()
}

func lineRef(line int) string {
	if line > 0 {
		return fmt.Sprintf("(line %d)", line)
	}
	return "(general)"
}

func issueIcon(t IssueType) string {
	switch t {
	case IssueError:
		return ":red_circle:"
	case IssueWarning:
		return ":orange_circle:"
	case IssueSuggestion:
		return ":bulb:"
	default:
		return ":white_circle:"
	}
}

func actionIcon(a Action) string {
	switch a {
	case ActionApprove:
		return ":white_check_mark:"
	case ActionApproveWithComments:
		return ":speech_balloon:"
	case ActionRequestChanges:
		return ":warning:"
	default:
		return ":x:"
	}
}

func actionLabel(a Action) string {
	switch a {
	case ActionApprove:
		return "Approve"
	case ActionApproveWithComments:
		return "Approve with comments"
	case ActionRequestChanges:
		return "Request changes"
	default:
		return "Reject"
	}
}

func riskLabel(r Risk) string {
	switch r {
	case RiskLow:
		return "Low"
	case RiskLowMedium:
		return "Low-Medium"
	case RiskMedium:
		return "Medium"
	default:
		return "High"
	}
}
