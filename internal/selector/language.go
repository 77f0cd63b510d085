package selector

import (
	"path"
	"strings"
)

// languageByExt maps a lower-cased file extension to a language tag.
var languageByExt = map[string]string{
	".js":         "javascript",
	".jsx":        "javascript",
	".mjs":        "javascript",
	".cjs":        "javascript",
	".ts":         "typescript",
	".tsx":        "typescript",
	".py":         "python",
	".java":       "java",
	".kt":         "kotlin",
	".swift":      "swift",
	".go":         "go",
	".rs":         "rust",
	".php":        "php",
	".rb":         "ruby",
	".cs":         "csharp",
	".cpp":        "cpp",
	".cc":         "cpp",
	".hpp":        "cpp",
	".c":          "c",
	".h":          "c",
	".scala":      "scala",
	".clj":        "clojure",
	".hs":         "haskell",
	".dart":       "dart",
	".lua":        "lua",
	".pl":         "perl",
	".r":          "r",
	".m":          "objective-c",
	".vue":        "vue",
	".svelte":     "svelte",
	".html":       "html",
	".css":        "css",
	".scss":       "scss",
	".sass":       "sass",
	".less":       "less",
	".sh":         "bash",
	".bash":       "bash",
	".zsh":        "bash",
	".ps1":        "powershell",
	".sql":        "sql",
	".json":       "json",
	".xml":        "xml",
	".yaml":       "yaml",
	".yml":        "yaml",
	".toml":       "toml",
	".md":         "markdown",
	".tf":         "terraform",
	".dockerfile": "dockerfile",
}

// languageTier is the priority bonus for well-known languages.
var languageTier = map[string]int{
	"javascript": 15,
	"typescript": 15,
	"python":     12,
	"java":       12,
	"csharp":     12,
	"go":         10,
	"rust":       10,
	"php":        8,
	"ruby":       8,
}

const defaultTier = 5

// DetectLanguage returns the language tag for a path. Dockerfiles and
// Makefiles (including variants such as Dockerfile.dev) are recognized by
// base name regardless of case; everything else goes by extension. Unknown
// extensions map to "text".
func DetectLanguage(p string) string {
	base := strings.ToLower(path.Base(p))
	for _, name := range []string{"dockerfile", "makefile"} {
		if base == name || strings.HasPrefix(base, name+".") {
			return name
		}
	}
	if lang, ok := languageByExt[strings.ToLower(path.Ext(p))]; ok {
		return lang
	}
	return "text"
}

func tierBonus(language string) int {
	if bonus, ok := languageTier[language]; ok {
		return bonus
	}
	return defaultTier
}
