package review

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dshills/prreview/internal/selector"
)

// Review levels control how thorough the provider is asked to be.
const (
	LevelBasic    = "basic"
	LevelStandard = "standard"
	LevelDetailed = "detailed"
)

// maxContentBytes caps the file content embedded in a prompt.
const maxContentBytes = 60000

const responseSchema = `Respond with ONLY a JSON object. No markdown, no explanation, no preamble.

The object must have this exact structure:
{
  "summary": "One or two sentences on the overall quality of the change",
  "score": 0-100,
  "issues": [
    {
      "type": "error|warning|suggestion",
      "line": 1,
      "message": "What is wrong and why it matters",
      "suggestion": "How to fix it",
      "category": "security|performance|bug|style|maintainability|testing"
    }
  ],
  "suggestions": ["General improvement ideas"],
  "strengths": ["What the change does well"],
  "concerns": ["Risks worth a second look"]
}

"line" must be a line number in the new version of the file taken from the changed lines listed above, or omitted when the issue is not tied to one line.
If the change has no issues, return an empty "issues" array and a high score.`

// BuildPrompt renders the review prompt for one candidate file.
func BuildPrompt(c selector.Candidate, content, level string) string {
	var b strings.Builder

	b.WriteString("You are an expert code reviewer. Review the following change to a single file in a pull request.\n\n")
	b.WriteString(levelInstructions(level))
	b.WriteString("\n")

	fmt.Fprintf(&b, "File: %s\n", c.Path)
	fmt.Fprintf(&b, "Language: %s\n", c.Language)
	fmt.Fprintf(&b, "Status: %s\n", c.Status)
	fmt.Fprintf(&b, "Lines changed: %d\n", c.Changes)

	diff := selector.ParseDiff(c.Patch)
	if ranges := lineRanges(diff.Added); ranges != "" {
		fmt.Fprintf(&b, "Changed lines (new file): %s\n", ranges)
	}

	if c.Patch != "" {
		b.WriteString("\n--- BEGIN DIFF ---\n")
		b.WriteString(c.Patch)
		b.WriteString("\n--- END DIFF ---\n")
	}

	if content != "" && level != LevelBasic {
		content = truncate(content, maxContentBytes)
		fmt.Fprintf(&b, "\n--- BEGIN FILE (%s) ---\n", c.Path)
		b.WriteString(content)
		b.WriteString("\n--- END FILE ---\n")
	}

	b.WriteString("\n")
	b.WriteString(responseSchema)
	return b.String()
}

func levelInstructions(level string) string {
	switch level {
	case LevelBasic:
		return "Only report clear bugs and security problems. Skip style and minor suggestions.\n"
	case LevelDetailed:
		return "Be thorough. Cover correctness, security, performance, error handling, naming, tests and documentation. " +
			"Explain the impact of each issue and give concrete fixes.\n"
	default:
		return "Focus on bugs, security issues, performance problems and maintainability. " +
			"Mention style only when it hurts readability.\n"
	}
}

// lineRanges compresses line numbers into "3-5, 9" form.
func lineRanges(lines []selector.Line) string {
	if len(lines) == 0 {
		return ""
	}
	var parts []string
	start, prev := lines[0].Number, lines[0].Number
	flush := func() {
		if start == prev {
			parts = append(parts, strconv.Itoa(start))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", start, prev))
		}
	}
	for _, l := range lines[1:] {
		if l.Number == prev+1 {
			prev = l.Number
			continue
		}
		flush()
		start, prev = l.Number, l.Number
	}
	flush()
	return strings.Join(parts, ", ")
}

// truncate cuts s to at most max bytes on a rune boundary.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "\n... (truncated)"
}
