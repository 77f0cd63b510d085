package selector

import (
	"path"
	"regexp"
	"strings"
)

// MatchesAny reports whether p matches any of the glob patterns. A pattern
// is tried against the full path; a pattern without a slash, or one
// starting with "**/", is also tried against the base name. "**" crosses
// directory boundaries, "*" and "?" do not.
func MatchesAny(p string, patterns []string) bool {
	for _, pattern := range patterns {
		if Match(pattern, p) {
			return true
		}
	}
	return false
}

// Match reports whether a single glob pattern matches p.
func Match(pattern, p string) bool {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return false
	}
	p = strings.TrimPrefix(p, "./")
	if globMatch(pattern, p) {
		return true
	}
	base := path.Base(p)
	if !strings.Contains(pattern, "/") {
		return globMatch(pattern, base)
	}
	if clean := strings.TrimPrefix(pattern, "**/"); clean != pattern && !strings.Contains(clean, "/") {
		return globMatch(clean, base)
	}
	return false
}

func globMatch(pattern, p string) bool {
	re, err := regexp.Compile(globToRegexp(pattern))
	if err != nil {
		return false
	}
	return re.MatchString(p)
}

func globToRegexp(pattern string) string {
	var b strings.Builder
	b.WriteString("^")
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch c {
		case '*':
			if i+1 < len(pattern) && pattern[i+1] == '*' {
				i++
				if i+1 < len(pattern) && pattern[i+1] == '/' {
					// "**/" matches zero or more whole directories.
					i++
					b.WriteString("(?:.*/)?")
				} else {
					b.WriteString(".*")
				}
				continue
			}
			b.WriteString("[^/]*")
		case '?':
			b.WriteString("[^/]")
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString("$")
	return b.String()
}
