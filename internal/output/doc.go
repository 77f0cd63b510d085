// Package output writes review reports to local files or stdout.
//
// Three formats are supported:
//   - markdown: the rendered review body, identical to what is posted on the pull request
//   - json:     the full structured report
//   - sarif:    SARIF v2.1.0, one result per issue, for code scanning upload
//
// Use [GetWriter] to obtain a [Writer] for a format string, or [WriteReport]
// to pick the destination as well.
package output
