package llm

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONBlock_MarkdownCodeBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "code block with language",
			input:    "```javascript\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "plain JSON",
			input:    `{"key": "value"}`,
			expected: `{"key": "value"}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "\n\n  [1, 2]  \n",
			expected: `[1, 2]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestParseJSON_Recovery(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "valid object",
			input:    `{"a": 1}`,
			expected: `{"a": 1}`,
		},
		{
			name:     "valid array",
			input:    `[{"a": 1}, {"a": 2}]`,
			expected: `[{"a": 1}, {"a": 2}]`,
		},
		{
			name:     "fenced",
			input:    "```json\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "preamble before object",
			input:    "Here is the JSON:\n{\"headlines\": [\"h\"]}",
			expected: `{"headlines": ["h"]}`,
		},
		{
			name:     "object with trailing text",
			input:    "{\"key\": \"value\"}\n\nLet me know if you need anything else!",
			expected: `{"key": "value"}`,
		},
		{
			name:     "array of strings with preamble",
			input:    `Items: ["x", "y"] done`,
			expected: `["x", "y"]`,
		},
		{
			name:     "array of objects with trailing text",
			input:    `[{"a": 1}, {"b": 2}] trailing`,
			expected: `[{"a": 1}, {"b": 2}]`,
		},
		{
			name:     "array of objects wrapped in prose",
			input:    "Here are your emails:\n[{\"Headline\": \"H\"}, {\"Headline\": \"I\"}]\nHope this helps!",
			expected: `[{"Headline": "H"}, {"Headline": "I"}]`,
		},
		{
			name:     "braces inside strings",
			input:    `Result: {"template": "Hello {name}!"}`,
			expected: `{"template": "Hello {name}!"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := ParseJSON(tt.input)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(raw))
		})
	}
}

func TestParseJSON_Failures(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no json at all", "I cannot help with that."},
		{"broken object", "{\"a\": }"},
		{"unbalanced array", `Here: [{"a": 1}, {"b": 2} trailing`},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := ParseJSON(tt.input)
			assert.Nil(t, raw)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tt.input, parseErr.Raw)

			var syntaxErr *json.SyntaxError
			if tt.input != "" {
				assert.True(t, errors.As(err, &syntaxErr), "cause should be the first decode error")
			}
		})
	}
}

func TestFirstArray(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"array passes through", `[1, 2]`, `[1, 2]`, true},
		{"first list in source order", `{"z": [1], "a": [2]}`, `[1]`, true},
		{"skips scalars and objects", `{"meta": {"x": [9]}, "count": 2, "emails": [{"a": 1}]}`, `[{"a": 1}]`, true},
		{"object without list", `{"a": 1, "b": "x"}`, ``, false},
		{"scalar", `"text"`, ``, false},
		{"empty", ``, ``, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FirstArray(json.RawMessage(tt.input))
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.JSONEq(t, tt.expected, string(got))
			}
		})
	}
}

func TestIsObject(t *testing.T) {
	assert.True(t, IsObject(json.RawMessage(` {"a": 1}`)))
	assert.False(t, IsObject(json.RawMessage(`[1]`)))
	assert.False(t, IsObject(nil))
}
