// Package llm wraps the Gemini generative-language API for prompt execution.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	genai "google.golang.org/genai"
)

// ErrEmptyResponse indicates the model returned no usable candidates.
var ErrEmptyResponse = errors.New("llm: empty response from model")

// ErrInvalidJSON indicates the model response was not valid JSON.
var ErrInvalidJSON = errors.New("llm: invalid JSON from model")

const (
	// DefaultModel is the Gemini model used when none is configured.
	DefaultModel = "gemini-2.5-flash"

	maxAttempts      = 3
	retryBaseBackoff = 300 * time.Millisecond
)

// GeminiClient is a thin stateless wrapper around the official genai client.
// Cross-cutting concerns beyond bounded retry belong to callers.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient constructs a client for the given model. The API key is read
// from the environment (GEMINI_API_KEY) by the genai client itself.
func NewGeminiClient(ctx context.Context, model string) (*GeminiClient, error) {
	trimmedModel := strings.TrimSpace(model)
	if trimmedModel == "" {
		trimmedModel = DefaultModel
	}
	client, clientError := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if clientError != nil {
		return nil, fmt.Errorf("llm: create gemini client: %w", clientError)
	}
	return &GeminiClient{client: client, model: trimmedModel}, nil
}

// Name identifies the client and its configured model.
func (geminiClient *GeminiClient) Name() string {
	return "Gemini:" + geminiClient.model
}

// Generate sends a system/user prompt pair and returns the model's text reply.
// Transient failures are retried with exponential backoff; the response shape
// is validated explicitly and an empty reply surfaces as ErrEmptyResponse.
func (geminiClient *GeminiClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	generateConfig := &genai.GenerateContentConfig{}
	if strings.TrimSpace(systemPrompt) != "" {
		generateConfig.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}}
	}
	return geminiClient.generateWithRetry(ctx, userPrompt, generateConfig)
}

// GenerateJSON sends a system/user prompt pair requesting application/json and
// returns the validated raw JSON payload. A reply that is not syntactically
// valid JSON surfaces as ErrInvalidJSON rather than an unchecked parse failure
// downstream.
func (geminiClient *GeminiClient) GenerateJSON(ctx context.Context, systemPrompt string, userPrompt string) (json.RawMessage, error) {
	generateConfig := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	if strings.TrimSpace(systemPrompt) != "" {
		generateConfig.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}}
	}
	replyText, generateError := geminiClient.generateWithRetry(ctx, userPrompt, generateConfig)
	if generateError != nil {
		return nil, generateError
	}
	rawPayload := json.RawMessage(replyText)
	if !json.Valid(rawPayload) {
		return nil, ErrInvalidJSON
	}
	return rawPayload, nil
}

func (geminiClient *GeminiClient) generateWithRetry(ctx context.Context, userPrompt string, generateConfig *genai.GenerateContentConfig) (string, error) {
	userContent := []*genai.Content{{Parts: []*genai.Part{{Text: userPrompt}}}}

	var lastError error
	for attemptIndex := 0; attemptIndex < maxAttempts; attemptIndex++ {
		if attemptIndex > 0 {
			backoffDelay := retryBaseBackoff * time.Duration(1<<(attemptIndex-1))
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoffDelay):
			}
		}

		response, generateError := geminiClient.client.Models.GenerateContent(ctx, geminiClient.model, userContent, generateConfig)
		if generateError != nil {
			lastError = generateError
			continue
		}

		replyText, extractionError := extractReplyText(response)
		if extractionError != nil {
			lastError = extractionError
			continue
		}
		return replyText, nil
	}
	return "", lastError
}

// extractReplyText validates the response shape and concatenates its text
// parts. Shape mismatches yield a typed error instead of an index panic.
func extractReplyText(response *genai.GenerateContentResponse) (string, error) {
	if response == nil || len(response.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	firstCandidate := response.Candidates[0]
	if firstCandidate == nil || firstCandidate.Content == nil || len(firstCandidate.Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	var replyBuilder strings.Builder
	for _, candidatePart := range firstCandidate.Content.Parts {
		if candidatePart != nil {
			replyBuilder.WriteString(candidatePart.Text)
		}
	}
	replyText := replyBuilder.String()
	if strings.TrimSpace(replyText) == "" {
		return "", ErrEmptyResponse
	}
	return replyText, nil
}
