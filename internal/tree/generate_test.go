package tree_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/plantocode/ptc/internal/scan"
	"github.com/plantocode/ptc/internal/tree"
)

func TestGenerateBlankRoot(t *testing.T) {
	testCases := []struct {
		name string
		root string
	}{
		{name: "empty", root: ""},
		{name: "whitespace", root: "   "},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			generator := &tree.Generator{
				Enumerate: func(string) ([]string, error) {
					t.Fatalf("enumerator must not run for blank roots")
					return nil, nil
				},
				Logger: zap.NewNop(),
			}
			if generated := generator.Generate(testCase.root); generated != "" {
				t.Fatalf("expected empty result, got %q", generated)
			}
		})
	}
}

func TestGenerateEnumeratorFailureDegrades(t *testing.T) {
	generator := &tree.Generator{
		Enumerate: func(string) ([]string, error) {
			return nil, errors.New("directory not accessible")
		},
		Logger: zap.NewNop(),
	}
	if generated := generator.Generate("/some/project"); generated != "" {
		t.Fatalf("expected empty result on enumeration failure, got %q", generated)
	}
}

func TestGenerateTrimsRenderedDiagram(t *testing.T) {
	generator := &tree.Generator{
		Enumerate: func(string) ([]string, error) {
			return []string{"main.go"}, nil
		},
		Logger: zap.NewNop(),
	}
	generated := generator.Generate("/some/project")
	if generated != "└── main.go" {
		t.Fatalf("expected trimmed single line, got %q", generated)
	}
}

func TestNewGeneratorScansProject(t *testing.T) {
	projectRoot := t.TempDir()
	writeProjectFile(t, projectRoot, "src/app.go", "package app\n")
	writeProjectFile(t, projectRoot, "readme.md", "hello\n")
	writeProjectFile(t, projectRoot, ".gitignore", "ignored.txt\n")
	writeProjectFile(t, projectRoot, "ignored.txt", "skip me\n")

	generator := tree.NewGenerator(scan.DefaultOptions(), zap.NewNop())
	generated := generator.Generate(projectRoot)

	if strings.Contains(generated, "ignored.txt") {
		t.Fatalf("expected ignored file to be excluded, got %q", generated)
	}
	expectedLines := []string{
		"├── src",
		"│   └── app.go",
		"└── readme.md",
	}
	if generated != strings.Join(expectedLines, "\n") {
		t.Fatalf("unexpected diagram:\n%s", generated)
	}
}

func writeProjectFile(t *testing.T, rootDirectory string, relativePath string, contents string) {
	t.Helper()
	fullPath := filepath.Join(rootDirectory, filepath.FromSlash(relativePath))
	if mkdirError := os.MkdirAll(filepath.Dir(fullPath), 0o755); mkdirError != nil {
		t.Fatalf("create directories for %s: %v", relativePath, mkdirError)
	}
	if writeError := os.WriteFile(fullPath, []byte(contents), 0o644); writeError != nil {
		t.Fatalf("write %s: %v", relativePath, writeError)
	}
}
