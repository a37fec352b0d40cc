package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tagged fence",
			input:    "```json\n{\"a\":1}\n```",
			expected: `{"a":1}`,
		},
		{
			name:     "untagged fence",
			input:    "```\n{\"a\":1}\n```",
			expected: `{"a":1}`,
		},
		{
			name:     "no fence",
			input:    `{"a":1}`,
			expected: `{"a":1}`,
		},
		{
			name:     "no fence with surrounding whitespace",
			input:    "  \n{\"a\":1}\n  ",
			expected: `{"a":1}`,
		},
		{
			name:     "multiline object inside fence",
			input:    "```json\n{\n  \"overall_score\": 72,\n  \"gaps\": [\"cloud\"]\n}\n```",
			expected: "{\n  \"overall_score\": 72,\n  \"gaps\": [\"cloud\"]\n}",
		},
		{
			name:     "fence without newlines",
			input:    "```json {\"a\":1} ```",
			expected: `{"a":1}`,
		},
		{
			name:     "plain text",
			input:    "not json at all",
			expected: "not json at all",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "unterminated fence left alone",
			input:    "```json\n{\"a\":1}",
			expected: "```json\n{\"a\":1}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONResponse(tt.input))
		})
	}
}

func TestCleanJSONResponse_Idempotent(t *testing.T) {
	inputs := []string{
		"```json\n{\"a\":1}\n```",
		"```\n[1,2,3]\n```",
		`{"a":1}`,
		"  plain text  ",
		"",
	}

	for _, input := range inputs {
		once := CleanJSONResponse(input)
		assert.Equal(t, once, CleanJSONResponse(once), "clean(clean(x)) != clean(x) for %q", input)
	}
}
