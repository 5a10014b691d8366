package tokenizer

import "testing"

type stubCounter struct{}

func (stubCounter) Name() string { return "stub" }

func (stubCounter) CountString(input string) (int, error) { return len([]rune(input)), nil }

func TestEstimateTokens(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "empty", input: "", expected: 0},
		{name: "below one token", input: "abc", expected: 1},
		{name: "exact multiple", input: "abcdefgh", expected: 2},
		{name: "rounds up", input: "abcdefghi", expected: 3},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			estimated := EstimateTokens(testCase.input)
			if estimated != testCase.expected {
				t.Fatalf("expected %d tokens for %q, got %d", testCase.expected, testCase.input, estimated)
			}
		})
	}
}

func TestHeuristicCounter(t *testing.T) {
	counter := HeuristicCounter{}
	if counter.Name() != HeuristicModelName {
		t.Fatalf("expected counter name %q, got %q", HeuristicModelName, counter.Name())
	}
	tokens, countError := counter.CountString("four char groups here")
	if countError != nil {
		t.Fatalf("CountString error: %v", countError)
	}
	if tokens != EstimateTokens("four char groups here") {
		t.Fatalf("expected heuristic counter to match EstimateTokens")
	}
}

func TestNewCounterHeuristic(t *testing.T) {
	counter, resolvedModel, counterError := NewCounter(Config{Model: HeuristicModelName})
	if counterError != nil {
		t.Fatalf("NewCounter error: %v", counterError)
	}
	if resolvedModel != HeuristicModelName {
		t.Fatalf("expected model %q, got %q", HeuristicModelName, resolvedModel)
	}
	if _, isHeuristic := counter.(HeuristicCounter); !isHeuristic {
		t.Fatalf("expected HeuristicCounter, got %T", counter)
	}
}

func TestCountBytesText(t *testing.T) {
	countResult, countError := CountBytes(stubCounter{}, []byte("hello"))
	if countError != nil {
		t.Fatalf("CountBytes error: %v", countError)
	}
	if !countResult.Counted {
		t.Fatalf("expected counted result")
	}
	if countResult.Tokens != len([]rune("hello")) {
		t.Fatalf("expected %d tokens, got %d", len([]rune("hello")), countResult.Tokens)
	}
}

func TestCountBytesBinarySkipped(t *testing.T) {
	countResult, countError := CountBytes(stubCounter{}, []byte{0x00, 0x01, 0x02})
	if countError != nil {
		t.Fatalf("CountBytes error: %v", countError)
	}
	if countResult.Counted {
		t.Fatalf("expected binary data to be skipped")
	}
}

func TestCountBytesNilCounter(t *testing.T) {
	if _, countError := CountBytes(nil, []byte("hello")); countError == nil {
		t.Fatalf("expected error for nil counter")
	}
}
