package generation

import (
	"bytes"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/jonathan/content-generator/internal/llm"
	"github.com/jonathan/content-generator/internal/schemas"
)

// itemList returns the elements of a reply that should be a list. An object reply
// yields its first list-valued member. ok is false when no list can be found.
func itemList(raw json.RawMessage) (items []json.RawMessage, ok bool) {
	if !isArray(raw) {
		if raw, ok = llm.FirstArray(raw); !ok {
			return nil, false
		}
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// objectItems decodes the object elements of items. Non-object elements are dropped
// and counted in skipped.
func objectItems(items []json.RawMessage) (objects []map[string]json.RawMessage, skipped int) {
	for _, item := range items {
		if !llm.IsObject(item) {
			skipped++
			continue
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil {
			skipped++
			continue
		}
		objects = append(objects, fields)
	}
	return objects, skipped
}

// textField returns the value of key as text.
func textField(fields map[string]json.RawMessage, key string) string {
	return rawText(fields[key])
}

// rawText renders a JSON value as text. Missing and null values are empty,
// non-string values keep their JSON text.
func rawText(v json.RawMessage) string {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return string(v)
}

// textList decodes a JSON list into strings. ok is false when raw is not a list.
func textList(raw json.RawMessage) (out []string, ok bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, false
	}
	out = make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, rawText(item))
	}
	return out, true
}

// clip caps s to limit runes.
func clip(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}

// checkSchema validates v against a content schema. Mismatches are logged and counted
// but never reject the content.
func (g *Generator) checkSchema(schema string, v interface{}) {
	err := schemas.Validate(schema, v)
	if err == nil {
		return
	}
	var vErr *schemas.ValidationError
	if errors.As(err, &vErr) {
		g.metrics.IncSchemaWarning(schema)
		g.logger.Warn("generated content does not match schema",
			zap.String("schema", schema),
			zap.Strings("errors", vErr.Fields()),
		)
		return
	}
	g.logger.Warn("schema check unavailable", zap.String("schema", schema), zap.Error(err))
}
