package llmgw

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON_PlainObject(t *testing.T) {
	var out map[string]any
	err := DecodeJSON(`{"a": 1, "b": "two"}`, &out)
	require.NoError(t, err)
	assert.EqualValues(t, 1, out["a"])
	assert.Equal(t, "two", out["b"])
}

func TestDecodeJSON_StripsFence(t *testing.T) {
	var out map[string]any
	raw := "```json\n{\"verdict\": \"VERIFIED\"}\n```"
	err := DecodeJSON(raw, &out)
	require.NoError(t, err)
	assert.Equal(t, "VERIFIED", out["verdict"])
}

func TestDecodeJSON_PrefixAndSuffixProse(t *testing.T) {
	var out map[string]any
	raw := "Sure, here is the result:\n{\"x\": true}\nLet me know if you need more."
	err := DecodeJSON(raw, &out)
	require.NoError(t, err)
	assert.Equal(t, true, out["x"])
}

func TestDecodeJSON_NoObjectFound(t *testing.T) {
	var out map[string]any
	err := DecodeJSON("no json here at all", &out)
	assert.Error(t, err)
}

func TestDecodeJSON_Idempotent(t *testing.T) {
	raw := "```json\n{\"a\": 1}\n```"
	var first, second map[string]any
	require.NoError(t, DecodeJSON(raw, &first))

	// Decoding the JSON encoding of a decoded result yields the same result.
	encoded, err := json.Marshal(first)
	require.NoError(t, err)
	require.NoError(t, DecodeJSON(string(encoded), &second))
	assert.Equal(t, first, second)
}

func TestTryDecodeJSON_FallsBackToZeroValue(t *testing.T) {
	type payload struct {
		Claims []string `json:"claims"`
	}
	out, ok := TryDecodeJSON[payload]("garbage")
	assert.False(t, ok)
	assert.Empty(t, out.Claims)
}
