package llm

import (
	"errors"
	"testing"

	genai "google.golang.org/genai"
)

func TestExtractReplyText(t *testing.T) {
	testCases := []struct {
		name          string
		response      *genai.GenerateContentResponse
		expectedText  string
		expectedError error
	}{
		{
			name:          "NilResponse",
			response:      nil,
			expectedError: ErrEmptyResponse,
		},
		{
			name:          "NoCandidates",
			response:      &genai.GenerateContentResponse{},
			expectedError: ErrEmptyResponse,
		},
		{
			name: "NilCandidateContent",
			response: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{}},
			},
			expectedError: ErrEmptyResponse,
		},
		{
			name: "NoParts",
			response: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{Content: &genai.Content{}}},
			},
			expectedError: ErrEmptyResponse,
		},
		{
			name: "WhitespaceOnlyReply",
			response: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []*genai.Part{{Text: "   \n"}}}}},
			},
			expectedError: ErrEmptyResponse,
		},
		{
			name: "SinglePart",
			response: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []*genai.Part{{Text: "hello"}}}}},
			},
			expectedText: "hello",
		},
		{
			name: "ConcatenatesParts",
			response: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []*genai.Part{
					{Text: "first "},
					nil,
					{Text: "second"},
				}}}},
			},
			expectedText: "first second",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			replyText, extractionError := extractReplyText(testCase.response)
			if testCase.expectedError != nil {
				if !errors.Is(extractionError, testCase.expectedError) {
					t.Fatalf("expected error %v, got %v", testCase.expectedError, extractionError)
				}
				return
			}
			if extractionError != nil {
				t.Fatalf("unexpected error: %v", extractionError)
			}
			if replyText != testCase.expectedText {
				t.Fatalf("expected %q, got %q", testCase.expectedText, replyText)
			}
		})
	}
}
