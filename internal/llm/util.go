package llm

import (
	"bytes"
	"encoding/json"
	"strings"
)

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// LLMs often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a language identifier on the first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}

// ParseJSON recovers a JSON document from a model reply.
//
// The reply is parsed as-is after fence removal. If that fails, the span from the first
// '{' to the last '}' is tried, then the span from the first '[' to the last ']'. When
// nothing parses, the error from the first attempt is returned inside a *ParseError.
func ParseJSON(text string) (json.RawMessage, error) {
	cleaned := CleanJSONBlock(text)

	firstErr := checkJSON(cleaned)
	if firstErr == nil {
		return json.RawMessage(cleaned), nil
	}

	for _, delims := range [][2]byte{{'{', '}'}, {'[', ']'}} {
		candidate, ok := span(cleaned, delims[0], delims[1])
		if ok && checkJSON(candidate) == nil {
			return json.RawMessage(candidate), nil
		}
	}

	return nil, &ParseError{Message: "reply is not valid JSON", Raw: text, Cause: firstErr}
}

// span returns text[first open : last close+1] when both exist in that order.
func span(text string, open, close byte) (string, bool) {
	start := strings.IndexByte(text, open)
	end := strings.LastIndexByte(text, close)
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

func checkJSON(s string) error {
	var v interface{}
	return json.Unmarshal([]byte(s), &v)
}

// FirstArray returns raw itself when it is a JSON array. For an object it returns
// the first array-valued member in source key order. ok is false when no array exists.
func FirstArray(raw json.RawMessage) (json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false
	}
	switch trimmed[0] {
	case '[':
		return trimmed, true
	case '{':
	default:
		return nil, false
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil { // opening brace
		return nil, false
	}
	for dec.More() {
		if _, err := dec.Token(); err != nil { // key
			return nil, false
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, false
		}
		if v := bytes.TrimSpace(value); len(v) > 0 && v[0] == '[' {
			return v, true
		}
	}
	return nil, false
}

// IsObject reports whether raw holds a JSON object.
func IsObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
