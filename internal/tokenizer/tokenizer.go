// Package tokenizer estimates LLM token counts for prompt context content.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

// Config captures tokenizer selection parameters provided by the CLI.
type Config struct {
	Model string
}

const (
	defaultModel        = "gpt-4o"
	defaultEncodingName = "cl100k_base"

	// HeuristicModelName selects the character-ratio estimator instead of an
	// exact encoding.
	HeuristicModelName = "heuristic"
)

// NewCounter returns a Counter implementation for the requested model along
// with the resolved model name. OpenAI-style model names use their exact
// tiktoken encoding; HeuristicModelName selects the character-ratio estimator;
// anything else falls back to the default encoding.
func NewCounter(configuration Config) (Counter, string, error) {
	modelName := strings.TrimSpace(configuration.Model)
	if modelName == "" {
		modelName = defaultModel
	}
	lowerModelName := strings.ToLower(modelName)

	if lowerModelName == HeuristicModelName {
		return HeuristicCounter{}, HeuristicModelName, nil
	}

	if isOpenAIModel(lowerModelName) {
		encoding, encodingError := tiktoken.EncodingForModel(lowerModelName)
		if encodingError == nil && encoding != nil {
			return encodingCounter{encoding: encoding, name: lowerModelName}, modelName, nil
		}
	}

	fallbackEncoding, fallbackError := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackError != nil {
		return nil, "", fmt.Errorf("initialize fallback tokenizer: %w", fallbackError)
	}
	return encodingCounter{encoding: fallbackEncoding, name: defaultEncodingName}, defaultEncodingName, nil
}

func isOpenAIModel(modelName string) bool {
	recognizedPrefixes := []string{
		"gpt-",
		"text-embedding",
		"davinci",
		"curie",
		"babbage",
		"ada",
		"code-",
	}
	for _, recognizedPrefix := range recognizedPrefixes {
		if strings.HasPrefix(modelName, recognizedPrefix) {
			return true
		}
	}
	return false
}
