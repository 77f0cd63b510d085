package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/prreview/internal/review"
)

// MarkdownWriter outputs the review body followed by the inline comments
// that would be attached to it.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *review.Report) error {
	if _, err := io.WriteString(w, report.Body); err != nil {
		return fmt.Errorf("writing markdown: %w", err)
	}
	if len(report.InlineComments) == 0 {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n<details>\n<summary>Inline comments (%d)</summary>\n\n", len(report.InlineComments))
	for _, c := range report.InlineComments {
		fmt.Fprintf(&b, "**`%s:%d`**\n\n%s\n\n", c.Path, c.Line, c.Body)
	}
	b.WriteString("</details>\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing markdown: %w", err)
	}
	return nil
}
