package ignore_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/plantocode/ptc/internal/ignore"
)

func TestParseIgnoreFileSections(t *testing.T) {
	temporaryDirectory := t.TempDir()
	ignoreFilePath := filepath.Join(temporaryDirectory, ignore.IgnoreFileName)
	ignoreFileContents := `# build artifacts
dist/
*.log

[binary]
assets/logo.png

[ignore]
node_modules/
`
	if writeError := os.WriteFile(ignoreFilePath, []byte(ignoreFileContents), 0o644); writeError != nil {
		t.Fatalf("write ignore file: %v", writeError)
	}

	ignorePatterns, binaryPatterns, parseError := ignore.ParseIgnoreFile(ignoreFilePath)
	if parseError != nil {
		t.Fatalf("ParseIgnoreFile error: %v", parseError)
	}
	expectedIgnorePatterns := []string{"dist/", "*.log", "node_modules/"}
	if !reflect.DeepEqual(ignorePatterns, expectedIgnorePatterns) {
		t.Fatalf("expected ignore patterns %v, got %v", expectedIgnorePatterns, ignorePatterns)
	}
	expectedBinaryPatterns := []string{"assets/logo.png"}
	if !reflect.DeepEqual(binaryPatterns, expectedBinaryPatterns) {
		t.Fatalf("expected binary patterns %v, got %v", expectedBinaryPatterns, binaryPatterns)
	}
}

func TestParseIgnoreFileMissing(t *testing.T) {
	ignorePatterns, binaryPatterns, parseError := ignore.ParseIgnoreFile(filepath.Join(t.TempDir(), "absent"))
	if parseError != nil {
		t.Fatalf("expected nil error for missing file, got %v", parseError)
	}
	if ignorePatterns != nil || binaryPatterns != nil {
		t.Fatalf("expected nil patterns for missing file")
	}
}

func TestMatchesPath(t *testing.T) {
	testCases := []struct {
		name         string
		relativePath string
		patterns     []string
		expected     bool
	}{
		{name: "directory pattern matches descendants", relativePath: "node_modules/react/index.js", patterns: []string{"node_modules/"}, expected: true},
		{name: "glob matches file name", relativePath: "logs/app.log", patterns: []string{"*.log"}, expected: true},
		{name: "nested directory prefix", relativePath: "subdir/node_modules/left-pad/index.js", patterns: []string{"subdir/node_modules/"}, expected: true},
		{name: "exact nested path", relativePath: "subdir/.clasp.json", patterns: []string{"subdir/.clasp.json"}, expected: true},
		{name: "exclusion prefix matches root directory", relativePath: "vendor/module/a.go", patterns: []string{ignore.ExclusionPrefix + "vendor"}, expected: true},
		{name: "service file always ignored", relativePath: "src/.gitignore", patterns: nil, expected: true},
		{name: "unmatched path", relativePath: "src/main.go", patterns: []string{"*.log", "dist/"}, expected: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			matched := ignore.MatchesPath(testCase.relativePath, testCase.patterns)
			if matched != testCase.expected {
				t.Fatalf("expected %v for %q with %v, got %v",
					testCase.expected, testCase.relativePath, testCase.patterns, matched)
			}
		})
	}
}

func TestMatchesBinaryContent(t *testing.T) {
	testCases := []struct {
		name         string
		relativePath string
		patterns     []string
		expected     bool
	}{
		{name: "directory pattern", relativePath: "assets/images/logo.png", patterns: []string{"assets/"}, expected: true},
		{name: "glob pattern", relativePath: "logo.png", patterns: []string{"*.png"}, expected: true},
		{name: "no match", relativePath: "main.go", patterns: []string{"*.png"}, expected: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			matched := ignore.MatchesBinaryContent(testCase.relativePath, testCase.patterns)
			if matched != testCase.expected {
				t.Fatalf("expected %v, got %v", testCase.expected, matched)
			}
		})
	}
}

func TestDeduplicate(t *testing.T) {
	deduplicated := ignore.Deduplicate([]string{"a", "b", "a", "c", "b"})
	expected := []string{"a", "b", "c"}
	if !reflect.DeepEqual(deduplicated, expected) {
		t.Fatalf("expected %v, got %v", expected, deduplicated)
	}
}

func TestLoadRecursivePatternsPrefixesNestedFiles(t *testing.T) {
	projectRoot := t.TempDir()
	childDirectory := filepath.Join(projectRoot, "child")
	if mkdirError := os.MkdirAll(childDirectory, 0o755); mkdirError != nil {
		t.Fatalf("create child directory: %v", mkdirError)
	}
	if writeError := os.WriteFile(filepath.Join(projectRoot, ignore.GitIgnoreFileName), []byte("dist/\n"), 0o644); writeError != nil {
		t.Fatalf("write root gitignore: %v", writeError)
	}
	if writeError := os.WriteFile(filepath.Join(childDirectory, ignore.GitIgnoreFileName), []byte("build/\n"), 0o644); writeError != nil {
		t.Fatalf("write child gitignore: %v", writeError)
	}

	patterns, _, loadError := ignore.LoadRecursivePatterns(projectRoot, ignore.LoadOptions{
		UseGitignore:  true,
		UseIgnoreFile: true,
	})
	if loadError != nil {
		t.Fatalf("LoadRecursivePatterns error: %v", loadError)
	}

	if !containsPattern(patterns, "dist/") {
		t.Fatalf("expected root pattern dist/ in %v", patterns)
	}
	if !containsPattern(patterns, "child/build/") {
		t.Fatalf("expected prefixed pattern child/build/ in %v", patterns)
	}
	if !containsPattern(patterns, ".git/") {
		t.Fatalf("expected default git exclusion in %v", patterns)
	}
}

func containsPattern(patterns []string, target string) bool {
	for _, pattern := range patterns {
		if pattern == target {
			return true
		}
	}
	return false
}
