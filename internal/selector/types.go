package selector

// FileStatus is the change status GitHub reports for a pull request file.
type FileStatus string

const (
	StatusAdded    FileStatus = "added"
	StatusModified FileStatus = "modified"
	StatusRemoved  FileStatus = "removed"
	StatusRenamed  FileStatus = "renamed"
)

// ChangedFile describes one file touched by a pull request.
type ChangedFile struct {
	Path    string     `json:"path"`
	Status  FileStatus `json:"status"`
	Changes int        `json:"changes"`
	// Patch is empty for binary files and for diffs too large for the API.
	Patch string `json:"patch,omitempty"`
}

// Candidate is a ChangedFile that passed eligibility filtering.
type Candidate struct {
	ChangedFile
	Language string `json:"language"`
	Priority int    `json:"priority"`
}

// Options controls file selection.
type Options struct {
	MaxFiles        int
	ExcludePatterns []string
}
