// Package redact scrubs secrets from file content and patches before they
// are embedded in a review prompt.
//
// Each rule names the kind of secret it detects so the replacement marker
// tells the reviewer what was removed, e.g. [REDACTED:aws-access-key].
// Files matching a path policy (for example "**/.env") are withheld entirely.
package redact
