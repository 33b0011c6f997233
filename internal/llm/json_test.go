package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  error
	}{
		{
			name:     "bare object",
			input:    `{"a": 1}`,
			expected: `{"a": 1}`,
		},
		{
			name:     "code fence wrapper",
			input:    "```json\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "prose before and after",
			input:    `Here you go: {"a": {"b": 2}} hope that helps`,
			expected: `{"a": {"b": 2}}`,
		},
		{
			name:    "no object",
			input:   "sorry, I cannot do that",
			wantErr: ErrNoJSONObject,
		},
		{
			name:    "unbalanced braces",
			input:   `{"a": {"b": 2}`,
			wantErr: ErrUnbalancedJSON,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: ErrNoJSONObject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var out struct {
		Confidence float64 `json:"confidence"`
		Reasoning  string  `json:"reasoning"`
	}
	err := DecodeJSON("noise {\"confidence\": 0.9, \"reasoning\": \"fits\"} noise", &out)
	require.NoError(t, err)
	assert.Equal(t, 0.9, out.Confidence)
	assert.Equal(t, "fits", out.Reasoning)
}
