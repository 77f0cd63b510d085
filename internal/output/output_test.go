package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/owenrumney/go-sarif/v2/sarif"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/prreview/internal/review"
)

func sampleReport() *review.Report {
	findings := []review.Finding{
		{
			Filename: "src/db.go",
			Language: "go",
			Status:   "modified",
			Score:    55,
			Summary:  "Query building is unsafe",
			Issues: []review.Issue{
				{Type: review.IssueError, Line: 42, Message: "SQL injection", Suggestion: "use placeholders", Category: review.CategorySecurity},
				{Type: review.IssueSuggestion, Message: "split file", Category: review.CategoryMaintainability},
			},
		},
		{
			Filename: "src/cache.go",
			Score:    80,
			Issues: []review.Issue{
				{Type: review.IssueWarning, Line: 7, Message: "unbounded growth"},
			},
		},
	}
	r := review.Aggregate(findings, nil)
	r.RunID = "run-1"
	return &r
}

func TestGetWriter(t *testing.T) {
	for _, f := range Formats {
		w, err := GetWriter(f)
		require.NoError(t, err, f)
		assert.NotNil(t, w)
	}
	_, err := GetWriter("text")
	assert.Error(t, err)
}

func TestMarkdownWriter(t *testing.T) {
	report := sampleReport()
	var buf bytes.Buffer
	require.NoError(t, (&MarkdownWriter{}).Write(&buf, report))

	out := buf.String()
	assert.True(t, len(out) > len(report.Body))
	assert.Equal(t, report.Body, out[:len(report.Body)])
	assert.Contains(t, out, "Inline comments (2)")
	assert.Contains(t, out, "**`src/db.go:42`**")
}

func TestMarkdownWriter_NoInlineComments(t *testing.T) {
	report := &review.Report{Body: "## AI Code Review\n"}
	var buf bytes.Buffer
	require.NoError(t, (&MarkdownWriter{}).Write(&buf, report))
	assert.Equal(t, "## AI Code Review\n", buf.String())
}

func TestJSONWriter(t *testing.T) {
	report := sampleReport()
	var buf bytes.Buffer
	require.NoError(t, (&JSONWriter{}).Write(&buf, report))

	var got review.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, report.Stats, got.Stats)
	assert.Equal(t, report.Recommendation, got.Recommendation)
	assert.Len(t, got.Findings, 2)
}

func TestSARIFWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&SARIFWriter{}).Write(&buf, sampleReport()))

	doc, err := sarif.FromBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "2.1.0", doc.Version)
	require.Len(t, doc.Runs, 1)

	run := doc.Runs[0]
	assert.Equal(t, "prreview", run.Tool.Driver.Name)
	assert.Len(t, run.Tool.Driver.Rules, 3)
	require.Len(t, run.Results, 3)

	first := run.Results[0]
	assert.Equal(t, "prreview/security", *first.RuleID)
	assert.Equal(t, "error", *first.Level)
	assert.Contains(t, *first.Message.Text, "Suggestion: use placeholders")
	require.Len(t, first.Locations, 1)
	assert.Equal(t, "src/db.go", *first.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, 42, *first.Locations[0].PhysicalLocation.Region.StartLine)

	second := run.Results[1]
	assert.Equal(t, "note", *second.Level)
	assert.Nil(t, second.Locations[0].PhysicalLocation.Region)

	assert.Equal(t, "prreview/general", *run.Results[2].RuleID)
	assert.Equal(t, "warning", *run.Results[2].Level)
}

func TestSARIFWriter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&SARIFWriter{}).Write(&buf, &review.Report{}))

	doc, err := sarif.FromBytes(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, doc.Runs, 1)
	assert.Empty(t, doc.Runs[0].Results)
}

func TestWriteReportTo_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	var stdout bytes.Buffer
	require.NoError(t, WriteReportTo(&stdout, sampleReport(), "json", path))
	assert.Zero(t, stdout.Len())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"runId": "run-1"`)
}

func TestWriteReportTo_Stdout(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, WriteReportTo(&stdout, sampleReport(), "markdown", ""))
	assert.Contains(t, stdout.String(), "## AI Code Review")

	assert.Error(t, WriteReportTo(&stdout, sampleReport(), "xml", ""))
}
