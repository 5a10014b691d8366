package prompt_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/plantocode/ptc/internal/content"
	"github.com/plantocode/ptc/internal/prompt"
)

type fixedCounter struct {
	tokens int
}

func (counter fixedCounter) Name() string { return "fixed" }

func (counter fixedCounter) CountString(string) (int, error) { return counter.tokens, nil }

func TestBuildIncludesAllSections(t *testing.T) {
	builder := &prompt.Builder{}
	collectedFiles := []content.File{
		{RelativePath: "main.go", Type: content.TypeFile, Content: "package main\n"},
	}

	assembled, buildError := builder.Build("└── main.go", collectedFiles, "Explain the entry point.")
	if buildError != nil {
		t.Fatalf("Build error: %v", buildError)
	}
	if assembled.SystemPrompt != prompt.DefaultSystemPrompt {
		t.Fatalf("expected default system prompt, got %q", assembled.SystemPrompt)
	}

	expectedFragments := []string{
		"## Project structure",
		"└── main.go",
		"## Files",
		"File: main.go\n",
		"package main\n",
		"End of file: main.go\n",
		"## Instructions",
		"Explain the entry point.",
	}
	for _, fragment := range expectedFragments {
		if !strings.Contains(assembled.UserPrompt, fragment) {
			t.Fatalf("user prompt missing %q:\n%s", fragment, assembled.UserPrompt)
		}
	}
	if assembled.EstimatedTokens == 0 {
		t.Fatalf("expected a token estimate")
	}
}

func TestBuildOmitsEmptySections(t *testing.T) {
	builder := &prompt.Builder{SystemPrompt: "custom system"}

	assembled, buildError := builder.Build("", nil, "Just the instructions.")
	if buildError != nil {
		t.Fatalf("Build error: %v", buildError)
	}
	if assembled.SystemPrompt != "custom system" {
		t.Fatalf("expected custom system prompt, got %q", assembled.SystemPrompt)
	}
	if strings.Contains(assembled.UserPrompt, "## Project structure") {
		t.Fatalf("expected structure section to be omitted:\n%s", assembled.UserPrompt)
	}
	if strings.Contains(assembled.UserPrompt, "## Files") {
		t.Fatalf("expected files section to be omitted:\n%s", assembled.UserPrompt)
	}
	if !strings.HasPrefix(assembled.UserPrompt, "## Instructions") {
		t.Fatalf("expected prompt to start with instructions:\n%s", assembled.UserPrompt)
	}
}

func TestBuildSkipsBinaryFilesWithoutContent(t *testing.T) {
	builder := &prompt.Builder{}
	collectedFiles := []content.File{
		{RelativePath: "logo.png", Type: content.TypeBinary},
		{RelativePath: "notes.txt", Type: content.TypeFile, Content: "notes"},
	}

	assembled, buildError := builder.Build("", collectedFiles, "Summarize.")
	if buildError != nil {
		t.Fatalf("Build error: %v", buildError)
	}
	if strings.Contains(assembled.UserPrompt, "logo.png") {
		t.Fatalf("expected binary file without content to be skipped:\n%s", assembled.UserPrompt)
	}
	if !strings.Contains(assembled.UserPrompt, "File: notes.txt\nnotes\nEnd of file: notes.txt\n") {
		t.Fatalf("expected text file with trailing newline appended:\n%s", assembled.UserPrompt)
	}
}

func TestBuildEnforcesTokenBudget(t *testing.T) {
	builder := &prompt.Builder{TokenCounter: fixedCounter{tokens: 500}, TokenBudget: 100}

	_, buildError := builder.Build("", nil, "Too large.")
	if !errors.Is(buildError, prompt.ErrTokenBudgetExceeded) {
		t.Fatalf("expected ErrTokenBudgetExceeded, got %v", buildError)
	}
}

func TestBuildWithinTokenBudget(t *testing.T) {
	builder := &prompt.Builder{TokenCounter: fixedCounter{tokens: 50}, TokenBudget: 100}

	assembled, buildError := builder.Build("", nil, "Small enough.")
	if buildError != nil {
		t.Fatalf("Build error: %v", buildError)
	}
	if assembled.EstimatedTokens != 50 {
		t.Fatalf("expected estimate 50, got %d", assembled.EstimatedTokens)
	}
}
