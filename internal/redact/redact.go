package redact

import (
	"regexp"

	"github.com/dshills/prreview/internal/selector"
)

// withheld replaces the whole content of files matched by path policy.
const withheld = "[REDACTED:file withheld by path policy]\n"

type rule struct {
	kind    string
	pattern *regexp.Regexp
}

// rules run in order; more specific shapes come before generic assignments.
// No pattern may match a newline, so redacting a patch keeps its line count.
var rules = []rule{
	{"private-key", regexp.MustCompile(`-----BEGIN[ \t]+(?:RSA[ \t]+|EC[ \t]+|OPENSSH[ \t]+)?PRIVATE KEY-----`)},
	{"aws-access-key", regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
	{"aws-secret-key", regexp.MustCompile(`(?i)aws[_-]?secret[_-]?access[_-]?key[ \t]*[:=][ \t]*["']?[A-Za-z0-9/+=]{40}["']?`)},
	{"github-token", regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`)},
	{"slack-token", regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`)},
	{"anthropic-key", regexp.MustCompile(`sk-ant-[A-Za-z0-9_-]{20,}`)},
	{"openai-key", regexp.MustCompile(`sk-[A-Za-z0-9_-]{20,}`)},
	{"jwt", regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`)},
	{"bearer-token", regexp.MustCompile(`(?i)Bearer[ \t]+[A-Za-z0-9._-]{20,}`)},
	{"connection-string", regexp.MustCompile(`(?i)[a-z][a-z0-9+.-]*://[^\s:/@]+:[^\s@/]+@[^\s]+`)},
	{"api-key", regexp.MustCompile(`(?i)(?:api[_-]?key|apikey|api[_-]?secret)[ \t]*[:=][ \t]*["']?[A-Za-z0-9/+=_-]{20,}["']?`)},
	{"credential", regexp.MustCompile(`(?i)(?:secret|token|password|passwd|credential)[ \t]*[:=][ \t]*["'][^"'\r\n]{8,}["']`)},
}

// Secrets replaces every detected secret with a marker naming its kind.
func Secrets(text string) string {
	for _, r := range rules {
		text = r.pattern.ReplaceAllString(text, "[REDACTED:"+r.kind+"]")
	}
	return text
}

// Withheld reports whether a path falls under the whole-file redaction
// policy.
func Withheld(path string, patterns []string) bool {
	return selector.MatchesAny(path, patterns)
}

// Content redacts secrets from content, or withholds it entirely when the
// path matches one of patterns.
func Content(content, path string, patterns []string) string {
	if Withheld(path, patterns) {
		return withheld
	}
	return Secrets(content)
}
