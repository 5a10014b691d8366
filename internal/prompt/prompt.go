// Package prompt assembles directory trees, file contents, and user
// instructions into the system/user prompt pair sent to the model.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/plantocode/ptc/internal/content"
	"github.com/plantocode/ptc/internal/tokenizer"
)

// ErrTokenBudgetExceeded indicates the assembled prompt does not fit the
// configured token budget.
var ErrTokenBudgetExceeded = errors.New("prompt: token budget exceeded")

// DefaultSystemPrompt grounds the model in the supplied project context.
const DefaultSystemPrompt = `You are an expert software engineer assisting with a code project.
Ground every answer in the provided project structure and file contents.
When you reference project files, use their exact relative paths.`

const (
	structureSectionHeader    = "## Project structure"
	filesSectionHeader        = "## Files"
	instructionsSectionHeader = "## Instructions"

	fileHeaderFormat  = "File: %s\n"
	fileTrailerFormat = "End of file: %s\n"
)

// Assembled is a prompt pair ready for the model.
type Assembled struct {
	SystemPrompt    string
	UserPrompt      string
	EstimatedTokens int
}

// Builder composes prompts with an optional token budget.
type Builder struct {
	SystemPrompt string
	TokenCounter tokenizer.Counter
	// TokenBudget caps the estimated size of the assembled prompt; zero
	// disables the check.
	TokenBudget int
}

// Build assembles the prompt pair from the tree diagram, collected files, and
// user instructions. Sections with no content are omitted. When a token budget
// is set and the estimate exceeds it, Build fails with ErrTokenBudgetExceeded.
func (builder *Builder) Build(treeDiagram string, collectedFiles []content.File, instructions string) (Assembled, error) {
	var userPromptBuilder strings.Builder

	trimmedTree := strings.TrimSpace(treeDiagram)
	if trimmedTree != "" {
		userPromptBuilder.WriteString(structureSectionHeader)
		userPromptBuilder.WriteString("\n\n")
		userPromptBuilder.WriteString(trimmedTree)
		userPromptBuilder.WriteString("\n\n")
	}

	if len(collectedFiles) > 0 {
		userPromptBuilder.WriteString(filesSectionHeader)
		userPromptBuilder.WriteString("\n\n")
		for _, collectedFile := range collectedFiles {
			if collectedFile.Type == content.TypeBinary && collectedFile.Content == "" {
				continue
			}
			fmt.Fprintf(&userPromptBuilder, fileHeaderFormat, collectedFile.RelativePath)
			userPromptBuilder.WriteString(collectedFile.Content)
			if !strings.HasSuffix(collectedFile.Content, "\n") {
				userPromptBuilder.WriteString("\n")
			}
			fmt.Fprintf(&userPromptBuilder, fileTrailerFormat, collectedFile.RelativePath)
			userPromptBuilder.WriteString("\n")
		}
	}

	userPromptBuilder.WriteString(instructionsSectionHeader)
	userPromptBuilder.WriteString("\n\n")
	userPromptBuilder.WriteString(strings.TrimSpace(instructions))
	userPromptBuilder.WriteString("\n")

	systemPrompt := builder.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	userPrompt := userPromptBuilder.String()

	assembled := Assembled{
		SystemPrompt:    systemPrompt,
		UserPrompt:      userPrompt,
		EstimatedTokens: builder.estimateTokens(systemPrompt + userPrompt),
	}

	if builder.TokenBudget > 0 && assembled.EstimatedTokens > builder.TokenBudget {
		return Assembled{}, fmt.Errorf("%w: estimated %d tokens, budget %d",
			ErrTokenBudgetExceeded, assembled.EstimatedTokens, builder.TokenBudget)
	}
	return assembled, nil
}

func (builder *Builder) estimateTokens(text string) int {
	if builder.TokenCounter != nil {
		if tokens, countError := builder.TokenCounter.CountString(text); countError == nil {
			return tokens
		}
	}
	return tokenizer.EstimateTokens(text)
}
