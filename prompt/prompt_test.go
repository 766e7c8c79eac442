package prompt

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const preamble = "You are a Medical assistant for question-answering tasks. Use the following pieces of retrieved context to answer the question. If you don't know the answer, say that you don't know. Use three sentences maximum and keep the answer concise.\n\n"

func TestBuildSystemPrompt(t *testing.T) {
	tests := []struct {
		name     string
		context  string
		expected string
	}{
		{
			name:     "context is appended after the instructions",
			context:  "Hypertension is high blood pressure.",
			expected: preamble + "Hypertension is high blood pressure.",
		},
		{
			name:     "empty context keeps the instructions",
			context:  "",
			expected: preamble,
		},
		{
			name:     "placeholder text inside the context is not expanded",
			context:  "literal {context} in a passage",
			expected: preamble + "literal {context} in a passage",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := BuildSystemPrompt(tt.context)
			if diff := cmp.Diff(tt.expected, actual); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestBuildSystemPromptIsIdempotent(t *testing.T) {
	ctx := "a\n\nb\n\nc"
	first := BuildSystemPrompt(ctx)
	second := BuildSystemPrompt(ctx)
	if first != second {
		t.Errorf("expected identical output, got %q and %q", first, second)
	}
	if !strings.Contains(first, "say that you don't know") {
		t.Errorf("expected the fallback instruction in %q", first)
	}
}

func TestJoinContext(t *testing.T) {
	tests := []struct {
		name     string
		texts    []string
		expected string
	}{
		{
			name:     "texts are joined with a blank line in order",
			texts:    []string{"a", "b", "c"},
			expected: "a\n\nb\n\nc",
		},
		{
			name:     "a single text is unchanged",
			texts:    []string{"a"},
			expected: "a",
		},
		{
			name:     "no texts gives an empty context",
			texts:    nil,
			expected: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if actual := JoinContext(tt.texts); actual != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, actual)
			}
		})
	}
}
