package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v2"
)

// DefaultPath is the repository-level config file.
const DefaultPath = ".prreview.yml"

// Config represents the prreview configuration.
type Config struct {
	Provider        string        `yaml:"provider"`
	Model           string        `yaml:"model,omitempty"`
	ReviewLevel     string        `yaml:"reviewLevel"`
	MaxFiles        int           `yaml:"maxFiles"`
	ExcludePatterns []string      `yaml:"excludePatterns"`
	Concurrency     int           `yaml:"concurrency"`
	MaxTokens       int           `yaml:"maxTokens"`
	CommentMode     string        `yaml:"commentMode"`
	Format          string        `yaml:"format"`
	FailOn          string        `yaml:"failOn"`
	LogLevel        string        `yaml:"logLevel"`
	GitHub          GitHubConfig  `yaml:"github"`
	Privacy         PrivacyConfig `yaml:"privacy"`
}

// GitHubConfig locates the repository. The token is read from the
// environment only and never stored in the file.
type GitHubConfig struct {
	APIURL     string `yaml:"apiUrl,omitempty"`
	Repository string `yaml:"repository,omitempty"`
}

// PrivacyConfig controls redaction before content leaves the process.
type PrivacyConfig struct {
	RedactSecrets bool     `yaml:"redactSecrets"`
	RedactPaths   []string `yaml:"redactPaths,omitempty"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider:    "openai",
		ReviewLevel: "standard",
		MaxFiles:    20,
		ExcludePatterns: []string{
			"*-lock.json",
			"*.lock",
			"vendor/**",
			"node_modules/**",
			"dist/**",
			"**/*.gen.go",
		},
		Concurrency: 4,
		MaxTokens:   4096,
		CommentMode: "review",
		Format:      "markdown",
		FailOn:      "none",
		LogLevel:    "info",
		Privacy: PrivacyConfig{
			RedactSecrets: true,
			RedactPaths:   []string{"**/.env", "**/*.pem", "*secrets*"},
		},
	}
}

// LoadFile reads path over the defaults. A missing file yields the
// defaults and no error unless required is set.
func LoadFile(path string, required bool) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// An empty path means DefaultPath, which may be absent; an explicit path must exist.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(path string, overrides map[string]string) (Config, error) {
	required := path != ""
	if path == "" {
		path = DefaultPath
	}
	cfg, err := LoadFile(path, required)
	if err != nil {
		return Config{}, err
	}
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	for key, value := range overrides {
		if value == "" {
			continue
		}
		if err := SetField(&cfg, key, value); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// envKeys maps config keys to environment variables, lowest precedence first.
var envKeys = []struct {
	key  string
	vars []string
}{
	{"provider", []string{"INPUT_AI_PROVIDER", "PRREVIEW_PROVIDER"}},
	{"model", []string{"INPUT_MODEL", "PRREVIEW_MODEL"}},
	{"reviewLevel", []string{"INPUT_REVIEW_LEVEL", "PRREVIEW_REVIEW_LEVEL"}},
	{"maxFiles", []string{"INPUT_MAX_FILES", "PRREVIEW_MAX_FILES"}},
	{"excludePatterns", []string{"INPUT_EXCLUDE_PATTERNS", "PRREVIEW_EXCLUDE_PATTERNS"}},
	{"commentMode", []string{"INPUT_COMMENT_MODE", "PRREVIEW_COMMENT_MODE"}},
	{"failOn", []string{"INPUT_FAIL_ON", "PRREVIEW_FAIL_ON"}},
	{"logLevel", []string{"PRREVIEW_LOG_LEVEL"}},
	{"apiUrl", []string{"GITHUB_API_URL", "PRREVIEW_GITHUB_API_URL"}},
	{"repository", []string{"GITHUB_REPOSITORY", "PRREVIEW_REPOSITORY"}},
}

func mergeEnv(cfg *Config) error {
	for _, ek := range envKeys {
		for _, name := range ek.vars {
			v := strings.TrimSpace(os.Getenv(name))
			if v == "" {
				continue
			}
			if err := SetField(cfg, ek.key, v); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
	}
	return nil
}

// GitHubToken returns the token from GITHUB_TOKEN or the Actions input.
func GitHubToken() string {
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		return v
	}
	return os.Getenv("INPUT_GITHUB_TOKEN")
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = strings.ToLower(value)
	case "model":
		cfg.Model = value
	case "reviewLevel":
		cfg.ReviewLevel = strings.ToLower(value)
	case "maxFiles":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxFiles must be an integer: %w", err)
		}
		cfg.MaxFiles = n
	case "excludePatterns":
		cfg.ExcludePatterns = SplitList(value)
	case "concurrency":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("concurrency must be an integer: %w", err)
		}
		cfg.Concurrency = n
	case "maxTokens":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxTokens must be an integer: %w", err)
		}
		cfg.MaxTokens = n
	case "commentMode":
		cfg.CommentMode = strings.ToLower(value)
	case "format":
		cfg.Format = strings.ToLower(value)
	case "failOn":
		cfg.FailOn = strings.ToLower(value)
	case "logLevel":
		cfg.LogLevel = strings.ToLower(value)
	case "apiUrl":
		cfg.GitHub.APIURL = value
	case "repository":
		cfg.GitHub.Repository = value
	case "redactSecrets":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("redactSecrets must be a boolean: %w", err)
		}
		cfg.Privacy.RedactSecrets = b
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// SplitList splits a comma- or newline-separated list, dropping blanks.
func SplitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '\n' })
	var result []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			result = append(result, f)
		}
	}
	return result
}

// Validate checks the config once at the boundary.
func (c Config) Validate() error {
	if c.MaxFiles < 1 || c.MaxFiles > 100 {
		return fmt.Errorf("maxFiles must be between 1 and 100, got %d", c.MaxFiles)
	}
	if c.Concurrency < 1 || c.Concurrency > 16 {
		return fmt.Errorf("concurrency must be between 1 and 16, got %d", c.Concurrency)
	}
	if c.MaxTokens < 1 {
		return fmt.Errorf("maxTokens must be positive, got %d", c.MaxTokens)
	}
	checks := []struct {
		name    string
		value   string
		allowed []string
	}{
		{"provider", c.Provider, []string{"openai", "anthropic", "openrouter"}},
		{"reviewLevel", c.ReviewLevel, []string{"basic", "standard", "detailed"}},
		{"commentMode", c.CommentMode, []string{"review", "comment"}},
		{"format", c.Format, []string{"markdown", "json", "sarif"}},
		{"failOn", c.FailOn, []string{"none", "reject", "request-changes"}},
		{"logLevel", c.LogLevel, []string{"trace", "debug", "info", "warn", "error"}},
	}
	for _, ch := range checks {
		if !contains(ch.allowed, ch.value) {
			return fmt.Errorf("invalid %s %q (allowed: %s)", ch.name, ch.value, strings.Join(ch.allowed, ", "))
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
