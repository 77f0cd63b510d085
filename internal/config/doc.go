// Package config loads and merges prreview configuration from multiple
// sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (PRREVIEW_PROVIDER, PRREVIEW_MAX_FILES, ...)
//  3. GitHub Actions inputs (INPUT_AI_PROVIDER, INPUT_MAX_FILES, ...)
//  4. Config file (.prreview.yml, or the path given with --config)
//  5. Built-in defaults
//
// Use [Load] to obtain a merged [Config] and [Config.Validate] to check it
// once before it is handed to the review engine.
package config
