package llmgw

import (
	"encoding/json"
	"fmt"
	"strings"

	"briefweaver/internal/apierrors"
)

// DecodeJSON extracts and parses the first JSON object in raw model text
// (spec.md §4.2). Model responses are noisy: they may be wrapped in a
// ```json fence, preceded by prose, or have trailing commentary. The
// contract is deliberately tolerant: strip a leading/trailing fence, then
// keep the substring from the first '{' to the last '}' inclusive, then
// parse that. Tightening this without also pinning temperature to 0 for
// every call would cause more failures than it fixes (spec.md §9).
func DecodeJSON(raw string, out any) error {
	candidate := extractObject(raw)
	if candidate == "" {
		return fmt.Errorf("%w: no json object found", apierrors.ErrLLMParseFailure)
	}
	if err := json.Unmarshal([]byte(candidate), out); err != nil {
		return fmt.Errorf("%w: %v", apierrors.ErrLLMParseFailure, err)
	}
	return nil
}

func extractObject(raw string) string {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```JSON")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return text[start : end+1]
}

// TryDecodeJSON decodes into a fresh zero value of T, returning the zero
// value on any failure instead of propagating an error. Use this at call
// sites that must degrade to a documented default rather than raise to the
// user (spec.md §4.2, §7).
func TryDecodeJSON[T any](raw string) (T, bool) {
	var out T
	if err := DecodeJSON(raw, &out); err != nil {
		var zero T
		return zero, false
	}
	return out, true
}
