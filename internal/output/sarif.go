package output

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/dshills/prreview/internal/review"
)

const (
	toolName = "prreview"
	toolURI  = "https://github.com/dshills/prreview"
)

// SARIFWriter outputs issues in SARIF v2.1.0 format. Rules are keyed by
// issue category; issues without a line get a file-level location.
type SARIFWriter struct{}

func (s *SARIFWriter) Write(w io.Writer, report *review.Report) error {
	doc, err := buildSARIF(report)
	if err != nil {
		return err
	}
	if err := doc.PrettyWrite(w); err != nil {
		return fmt.Errorf("writing SARIF: %w", err)
	}
	return nil
}

func buildSARIF(report *review.Report) (*sarif.Report, error) {
	doc, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("creating SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(toolName, toolURI)
	for _, f := range report.Findings {
		for _, issue := range f.Issues {
			rule := run.AddRule(ruleID(issue)).
				WithDescription(ruleDescription(issue))

			region := sarif.NewRegion()
			physical := sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(f.Filename))
			if issue.Line > 0 {
				physical = physical.WithRegion(region.WithStartLine(issue.Line))
			}

			message := issue.Message
			if issue.Suggestion != "" {
				message += "\n\nSuggestion: " + issue.Suggestion
			}

			result := sarif.NewRuleResult(rule.ID).
				WithMessage(sarif.NewTextMessage(message)).
				WithLevel(sarifLevel(issue.Type)).
				WithLocations([]*sarif.Location{sarif.NewLocation().WithPhysicalLocation(physical)})
			run.AddResult(result)
		}
	}
	doc.AddRun(run)
	return doc, nil
}

func ruleID(issue review.Issue) string {
	if issue.Category == "" {
		return toolName + "/general"
	}
	return toolName + "/" + issue.Category
}

func ruleDescription(issue review.Issue) string {
	if issue.Category == "" {
		return "General review feedback"
	}
	return "Review feedback in category " + issue.Category
}

func sarifLevel(t review.IssueType) string {
	switch t {
	case review.IssueError:
		return "error"
	case review.IssueWarning:
		return "warning"
	default:
		return "note"
	}
}
