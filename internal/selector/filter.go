package selector

import (
	"path"
	"strings"
)

// MaxChanges is the largest diff (added + removed lines) that is reviewed.
const MaxChanges = 1000

// binarySuffixes covers images, archives, executables, fonts, media and
// minified or bundled build output.
var binarySuffixes = []string{
	".png", ".jpg", ".jpeg", ".gif", ".bmp", ".ico", ".webp", ".svg", ".tiff",
	".zip", ".tar", ".gz", ".tgz", ".rar", ".7z", ".bz2", ".xz", ".jar", ".war",
	".exe", ".dll", ".so", ".dylib", ".bin", ".o", ".a", ".class", ".pyc", ".wasm",
	".woff", ".woff2", ".ttf", ".otf", ".eot",
	".mp3", ".mp4", ".avi", ".mov", ".wav", ".flac", ".ogg", ".webm", ".pdf",
	".min.js", ".min.css", ".bundle.js", ".map",
}

// projectFiles are base-name fragments of build and dependency manifests
// that deserve review even without a known extension.
var projectFiles = []string{
	"dockerfile",
	"makefile",
	"package.json",
	"requirements.txt",
	"cargo.toml",
	"go.mod",
	"gemfile",
	"pom.xml",
	"build.gradle",
	"composer.json",
	"pyproject.toml",
	"setup.py",
	"tsconfig.json",
	"docker-compose",
	"jenkinsfile",
}

// IsBinary reports whether the path ends in a binary or generated-asset
// suffix. The comparison ignores case.
func IsBinary(p string) bool {
	lower := strings.ToLower(p)
	for _, suffix := range binarySuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// IsCodeFile reports whether the path has a known language extension or a
// well-known project file name.
func IsCodeFile(p string) bool {
	if _, ok := languageByExt[strings.ToLower(path.Ext(p))]; ok {
		return true
	}
	base := strings.ToLower(path.Base(p))
	for _, name := range projectFiles {
		if strings.Contains(base, name) {
			return true
		}
	}
	return false
}

// Eligible reports whether a changed file should be reviewed at all.
func Eligible(f ChangedFile, excludePatterns []string) bool {
	switch {
	case f.Status == StatusRemoved:
		return false
	case IsBinary(f.Path):
		return false
	case MatchesAny(f.Path, excludePatterns):
		return false
	case f.Changes > MaxChanges:
		return false
	}
	return IsCodeFile(f.Path)
}
