package output_test

import (
	"strings"
	"testing"

	"github.com/plantocode/ptc/internal/content"
	"github.com/plantocode/ptc/internal/output"
)

func TestIsSupportedFormat(t *testing.T) {
	testCases := []struct {
		name      string
		format    string
		supported bool
	}{
		{name: "Raw", format: output.FormatRaw, supported: true},
		{name: "JSON", format: output.FormatJSON, supported: true},
		{name: "Unknown", format: "xml", supported: false},
		{name: "Empty", format: "", supported: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if output.IsSupportedFormat(testCase.format) != testCase.supported {
				t.Fatalf("IsSupportedFormat(%q) != %v", testCase.format, testCase.supported)
			}
		})
	}
}

func TestRenderJSON(t *testing.T) {
	rendered, renderError := output.RenderJSON(map[string]string{"key": "value"})
	if renderError != nil {
		t.Fatalf("RenderJSON error: %v", renderError)
	}
	if !strings.Contains(rendered, "\"key\": \"value\"") {
		t.Fatalf("unexpected JSON output: %s", rendered)
	}
}

func TestRenderTreeRawSinglePathOmitsHeader(t *testing.T) {
	rendered := output.RenderTreeRaw([]output.TreeResult{
		{Path: "/project", Diagram: "└── main.go"},
	})
	if rendered != "└── main.go" {
		t.Fatalf("unexpected raw tree output: %q", rendered)
	}
}

func TestRenderTreeRawMultiplePathsIncludeHeaders(t *testing.T) {
	rendered := output.RenderTreeRaw([]output.TreeResult{
		{Path: "/alpha", Diagram: "└── a.go"},
		{Path: "/beta", Diagram: "└── b.go"},
	})
	expectedLines := []string{
		"--- Directory Tree: /alpha ---",
		"└── a.go",
		"",
		"--- Directory Tree: /beta ---",
		"└── b.go",
	}
	if rendered != strings.Join(expectedLines, "\n") {
		t.Fatalf("unexpected raw tree output:\n%s", rendered)
	}
}

func TestRenderContentRaw(t *testing.T) {
	rendered := output.RenderContentRaw([]output.ContentResult{
		{
			Path: "/project",
			Files: []content.File{
				{Path: "/project/main.go", Type: content.TypeFile, Content: "package main"},
				{Path: "/project/logo.png", Type: content.TypeBinary},
			},
		},
	})
	if !strings.Contains(rendered, "File: /project/main.go\npackage main\nEnd of file: /project/main.go\n") {
		t.Fatalf("expected framed file content:\n%s", rendered)
	}
	if strings.Contains(rendered, "logo.png") {
		t.Fatalf("expected binary file without content to be skipped:\n%s", rendered)
	}
}

func TestRenderEstimateRaw(t *testing.T) {
	estimateResults := []output.EstimateResult{
		{Path: "/alpha", TotalFiles: 2, TotalSize: "1kb", TotalTokens: 100, Model: "heuristic"},
		{Path: "/beta", TotalFiles: 1, TotalSize: "512b", TotalTokens: 50, Model: "heuristic"},
	}
	grandTotal := output.EstimateResult{TotalFiles: 3, TotalSize: "1.5kb", TotalTokens: 150}

	rendered := output.RenderEstimateRaw(estimateResults, grandTotal)
	expectedLines := []string{
		"/alpha: 2 files, 1kb, 100 tokens (heuristic)",
		"/beta: 1 files, 512b, 50 tokens (heuristic)",
		"total: 3 files, 1.5kb, 150 tokens",
	}
	if rendered != strings.Join(expectedLines, "\n") {
		t.Fatalf("unexpected estimate output:\n%s", rendered)
	}
}

func TestRenderEstimateRawSinglePathOmitsTotal(t *testing.T) {
	rendered := output.RenderEstimateRaw([]output.EstimateResult{
		{Path: "/alpha", TotalFiles: 1, TotalSize: "1kb", TotalTokens: 10, Model: "heuristic"},
	}, output.EstimateResult{})
	if strings.Contains(rendered, "total:") {
		t.Fatalf("expected no grand total line:\n%s", rendered)
	}
}
