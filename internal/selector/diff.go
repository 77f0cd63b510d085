package selector

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sourcegraph/go-diff/diff"
)

// Line is one line of a patch. Number is the line in the new file, or 0
// for removed lines, which have no position there.
type Line struct {
	Number  int    `json:"line,omitempty"`
	Content string `json:"content"`
}

// ParsedDiff splits a patch into its added, removed and context lines.
type ParsedDiff struct {
	Added   []Line `json:"added"`
	Removed []Line `json:"removed"`
	Context []Line `json:"context"`
}

var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// ParseDiff reads a unified-diff patch. Each hunk header resets the line
// cursor to the hunk's new-file start. Lines that are neither hunk headers
// nor prefixed with '+', '-' or ' ' are ignored, as are the "+++" and "---"
// file headers. ParseDiff never fails; an empty patch yields empty slices.
//
// GitHub patches are bare hunks and go through go-diff. Anything go-diff
// rejects (file headers, truncated or malformed hunks) falls back to a
// line-by-line scan.
func ParseDiff(patch string) ParsedDiff {
	result := ParsedDiff{
		Added:   []Line{},
		Removed: []Line{},
		Context: []Line{},
	}
	if patch == "" {
		return result
	}

	if hunks, err := diff.ParseHunks([]byte(patch)); err == nil && len(hunks) > 0 {
		for _, h := range hunks {
			if h == nil {
				continue
			}
			result.scan(strings.Split(string(h.Body), "\n"), int(h.NewStartLine), false)
		}
		return result
	}

	result.scan(strings.Split(patch, "\n"), 0, true)
	return result
}

// scan walks patch lines from the given new-file line. With headers set,
// hunk headers reset the cursor and file headers are skipped.
func (d *ParsedDiff) scan(lines []string, current int, headers bool) {
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if headers {
			if m := hunkHeaderRe.FindStringSubmatch(line); m != nil {
				if n, err := strconv.Atoi(m[3]); err == nil {
					current = n
				}
				continue
			}
			if strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---") {
				continue
			}
		}
		switch {
		case strings.HasPrefix(line, "+"):
			d.Added = append(d.Added, Line{Number: current, Content: line[1:]})
			current++
		case strings.HasPrefix(line, "-"):
			d.Removed = append(d.Removed, Line{Content: line[1:]})
		case strings.HasPrefix(line, " "):
			d.Context = append(d.Context, Line{Number: current, Content: line[1:]})
			current++
		}
	}
}
