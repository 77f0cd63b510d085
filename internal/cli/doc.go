// Package cli wires together the Cobra command tree for the prreview binary.
//
// It defines the root command and all subcommands (review, select, config,
// providers, version), binds flags, loads configuration, builds the GitHub
// client, provider and logger, invokes the review engine, and returns
// deterministic exit codes for CI gating.
package cli
