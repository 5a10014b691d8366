package tokenizer

// charactersPerToken is the approximate number of characters per LLM token.
const charactersPerToken = 4

// EstimateTokens approximates the token count of text using a character-ratio
// heuristic. The estimate errs on the generous side by rounding up; it is good
// enough for budget checks but not for billing.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	characterCount := len([]rune(text))
	return (characterCount + charactersPerToken - 1) / charactersPerToken
}

// HeuristicCounter is a Counter backed by the character-ratio estimate. It
// never fails and needs no encoding data, which keeps it usable offline.
type HeuristicCounter struct{}

// Name identifies the heuristic counter.
func (HeuristicCounter) Name() string {
	return HeuristicModelName
}

// CountString estimates tokens for the input text.
func (HeuristicCounter) CountString(input string) (int, error) {
	return EstimateTokens(input), nil
}

var _ Counter = HeuristicCounter{}
