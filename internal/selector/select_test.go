package selector

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_ExampleScenario(t *testing.T) {
	files := []ChangedFile{
		{Path: "src/auth/login.js", Status: StatusModified, Changes: 40},
		{Path: "package-lock.json", Status: StatusModified, Changes: 500},
		{Path: "logo.png", Status: StatusAdded, Changes: 0},
	}

	got := Select(files, Options{MaxFiles: 10, ExcludePatterns: []string{"*-lock.json"}})

	require.Len(t, got, 1)
	assert.Equal(t, "src/auth/login.js", got[0].Path)
	assert.Equal(t, "javascript", got[0].Language)
	assert.Equal(t, 60, got[0].Priority)
}

func TestSelect_DropsIneligible(t *testing.T) {
	files := []ChangedFile{
		{Path: "src/removed.go", Status: StatusRemoved, Changes: 10},
		{Path: "src/huge.go", Status: StatusModified, Changes: MaxChanges + 1},
		{Path: "vendor/lib/x.go", Status: StatusModified, Changes: 3},
		{Path: "assets/app.min.js", Status: StatusModified, Changes: 3},
		{Path: "fonts/Inter.WOFF2", Status: StatusAdded, Changes: 0},
		{Path: "LICENSE", Status: StatusModified, Changes: 2},
		{Path: "src/limit.go", Status: StatusModified, Changes: MaxChanges},
	}

	got := Select(files, Options{MaxFiles: 100, ExcludePatterns: []string{"vendor/**"}})

	require.Len(t, got, 1)
	assert.Equal(t, "src/limit.go", got[0].Path)
}

func TestSelect_OrderAndCap(t *testing.T) {
	files := []ChangedFile{
		{Path: "docs/guide.md", Status: StatusModified, Changes: 5},
		{Path: "src/auth/session.ts", Status: StatusModified, Changes: 120},
		{Path: "cmd/main.go", Status: StatusAdded, Changes: 60},
		{Path: "scripts/a.sh", Status: StatusModified, Changes: 1},
		{Path: "scripts/b.sh", Status: StatusModified, Changes: 1},
	}

	got := Select(files, Options{MaxFiles: 4})

	require.Len(t, got, 4)
	assert.Equal(t, "src/auth/session.ts", got[0].Path)
	assert.Equal(t, "cmd/main.go", got[1].Path)
	// Equal priorities keep input order.
	assert.Equal(t, "docs/guide.md", got[2].Path)
	assert.Equal(t, "scripts/a.sh", got[3].Path)

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Priority, got[i].Priority)
	}
}

func TestSelect_Deterministic(t *testing.T) {
	var files []ChangedFile
	for i := 0; i < 30; i++ {
		files = append(files, ChangedFile{
			Path:    fmt.Sprintf("pkg/file%02d.go", i),
			Status:  StatusModified,
			Changes: i * 7 % 150,
		})
	}
	opts := Options{MaxFiles: 12}

	first := Select(files, opts)
	second := Select(files, opts)

	assert.Equal(t, first, second)
	assert.LessOrEqual(t, len(first), 12)
}

func TestSelect_Empty(t *testing.T) {
	assert.Empty(t, Select(nil, Options{MaxFiles: 10}))
}

func TestPriority(t *testing.T) {
	tests := []struct {
		path    string
		changes int
		want    int
	}{
		{"src/auth/login.js", 40, 60},
		{"test/config.py", 60, 42},
		{"README.md", 0, 5},
		{"lib/security/spec_helper.rb", 200, 78},
		{"internal/Auth/Handler.go", 101, 45},
		{"package.json", 51, 20},
		{"api/Service.cs", 100, 17},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := Priority(tt.path, tt.changes, DetectLanguage(tt.path))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"Dockerfile", "dockerfile"},
		{"dockerfile", "dockerfile"},
		{"build/DOCKERFILE", "dockerfile"},
		{"Dockerfile.dev", "dockerfile"},
		{"deploy/api.dockerfile", "dockerfile"},
		{"Makefile", "makefile"},
		{"main.go", "go"},
		{"App.TSX", "typescript"},
		{"x.jsx", "javascript"},
		{"service.py", "python"},
		{"Program.cs", "csharp"},
		{"styles/site.scss", "scss"},
		{"ci.yml", "yaml"},
		{"notes.unknown", "text"},
		{"LICENSE", "text"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectLanguage(tt.path), tt.path)
	}
}

func TestDetectLanguage_TableIsTotal(t *testing.T) {
	for ext, lang := range languageByExt {
		assert.Equal(t, lang, DetectLanguage("dir/file"+ext), ext)
	}
}

func TestIsCodeFile(t *testing.T) {
	assert.True(t, IsCodeFile("main.go"))
	assert.True(t, IsCodeFile("Dockerfile"))
	assert.True(t, IsCodeFile("services/api/requirements.txt"))
	assert.True(t, IsCodeFile("Cargo.toml"))
	assert.True(t, IsCodeFile("Gemfile"))
	assert.False(t, IsCodeFile("LICENSE"))
	assert.False(t, IsCodeFile("data.csv"))
}

func TestIsBinary(t *testing.T) {
	assert.True(t, IsBinary("logo.PNG"))
	assert.True(t, IsBinary("dist/vendor.bundle.js"))
	assert.True(t, IsBinary("release.tar.gz"))
	assert.False(t, IsBinary("src/app.js"))
	assert.False(t, IsBinary("png.go"))
}

func TestSelect_ConcurrentCallers(t *testing.T) {
	files := make([]ChangedFile, 0, 40)
	for i := 0; i < 40; i++ {
		files = append(files, ChangedFile{
			Path:    fmt.Sprintf("src/pkg%d/file%d.go", i%5, i),
			Status:  StatusModified,
			Changes: i * 7,
		})
	}
	opts := Options{MaxFiles: 10, ExcludePatterns: []string{"src/pkg3/**"}}
	want := Select(files, opts)

	var wg sync.WaitGroup
	results := make([][]Candidate, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Select(files, opts)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
	assert.Equal(t, "src/pkg0/file0.go", files[0].Path)
}
