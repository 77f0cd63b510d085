package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/prreview/internal/review"
)

// JSONWriter outputs the full report as indented JSON. HTML characters in
// the rendered body are left unescaped.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, report *review.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	return nil
}
