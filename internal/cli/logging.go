package cli

import (
	"io"

	"github.com/hashicorp/go-hclog"
)

// newLogger builds the process logger. Logs go to stderr so stdout stays
// clean for the report.
func newLogger(level string, w io.Writer) hclog.Logger {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "prreview",
		Output: w,
		Level:  lvl,
	})
}
