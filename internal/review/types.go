package review

// IssueType classifies a single issue raised against a file.
type IssueType string

const (
	IssueError      IssueType = "error"
	IssueWarning    IssueType = "warning"
	IssueSuggestion IssueType = "suggestion"
)

// Well-known issue categories. Providers may return others.
const (
	CategorySecurity        = "security"
	CategoryPerformance     = "performance"
	CategoryBug             = "bug"
	CategoryStyle           = "style"
	CategoryMaintainability = "maintainability"
	CategoryTesting         = "testing"
)

// Issue is one problem a provider found in a file. Line is the new-file
// line number, or 0 when the issue is not tied to a line.
type Issue struct {
	Type       IssueType `json:"type"`
	Line       int       `json:"line,omitempty"`
	Message    string    `json:"message"`
	Suggestion string    `json:"suggestion,omitempty"`
	Category   string    `json:"category"`
}

// Finding is the structured review result for one file.
type Finding struct {
	Filename    string   `json:"filename"`
	Language    string   `json:"language"`
	Status      string   `json:"status"`
	Summary     string   `json:"summary"`
	Issues      []Issue  `json:"issues"`
	Suggestions []string `json:"suggestions"`
	Score       int      `json:"score"`
	Strengths   []string `json:"strengths"`
	Concerns    []string `json:"concerns"`
}

// Stats are the tallies computed over all findings of a run.
type Stats struct {
	AverageScore          int `json:"averageScore"`
	ErrorCount            int `json:"errorCount"`
	WarningCount          int `json:"warningCount"`
	SuggestionCount       int `json:"suggestionCount"`
	SecurityIssueCount    int `json:"securityIssueCount"`
	PerformanceIssueCount int `json:"performanceIssueCount"`
}

// Action is the recommended outcome for the pull request.
type Action string

const (
	ActionApprove             Action = "approve"
	ActionApproveWithComments Action = "approve-with-comments"
	ActionRequestChanges      Action = "request-changes"
	ActionReject              Action = "reject"
)

// Risk is the overall risk label for the pull request.
type Risk string

const (
	RiskLow       Risk = "low"
	RiskLowMedium Risk = "low-medium"
	RiskMedium    Risk = "medium"
	RiskHigh      Risk = "high"
)

// Recommendation pairs the suggested action with its risk label.
type Recommendation struct {
	Action Action `json:"action"`
	Risk   Risk   `json:"risk"`
}

// InlineComment is a review comment anchored to a file line.
type InlineComment struct {
	Path string `json:"path"`
	Line int    `json:"line"`
	Body string `json:"body"`
}

// Report is the aggregated outcome of a review run.
type Report struct {
	RunID          string          `json:"runId,omitempty"`
	Body           string          `json:"body"`
	InlineComments []InlineComment `json:"inlineComments"`
	Stats          Stats           `json:"stats"`
	Recommendation Recommendation  `json:"recommendation"`
	Findings       []Finding       `json:"findings"`
}
