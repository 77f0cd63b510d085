// Package selector decides which files of a pull request are worth sending
// to an LLM for review.
//
// Select drops removed, binary, excluded, oversized and non-code files,
// tags the survivors with a language and a priority score, and returns them
// ordered by descending priority, capped at Options.MaxFiles. The ordering
// is a stable sort, so identical input always yields identical output.
//
// ParseDiff reads a unified-diff patch into added, removed and context lines
// numbered against the new file.
//
// Everything in this package is a pure function of its arguments and is safe
// for concurrent use.
package selector
