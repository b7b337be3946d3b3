// Package apierrors holds the error taxonomy shared across the trust and
// curation pipelines, so every component reports the same kinds instead of
// re-declaring ad-hoc sentinels.
package apierrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions every caller can check with errors.Is.
var (
	// ErrLLMUnavailable is a transient failure from the LLM gateway.
	// Components with a documented fallback (claim extraction, verification,
	// bias and intimacy analysis, the curator's perception step, reflection)
	// absorb it into that fallback; the others return it to their caller.
	ErrLLMUnavailable = errors.New("llm unavailable")

	// ErrLLMParseFailure means the response text could not be parsed as
	// JSON. Most callers map this to a component-specific empty result;
	// the narrative synthesizer returns it to its caller.
	ErrLLMParseFailure = errors.New("llm response could not be parsed as json")

	// ErrSourceMatchAmbiguous means the authoritative source registry could
	// not confidently match a claim to a source.
	ErrSourceMatchAmbiguous = errors.New("no authoritative source matched")

	// ErrSchemaInvariantViolation means a refined synthesis document changed
	// the schema of the original; the caller must discard it.
	ErrSchemaInvariantViolation = errors.New("refined synthesis violated schema invariant")

	// ErrValidation means a required input failed validation. No component
	// in this module returns it; a missing user profile is tolerated by the
	// curator rather than reported as a validation error.
	ErrValidation = errors.New("validation error")

	// ErrStreamingUnsupported means the configured gateway doesn't
	// implement llmgw.StreamingGateway; the HTTP API answers such a
	// streaming request with 501 Not Implemented.
	ErrStreamingUnsupported = errors.New("gateway does not support streaming")
)

// FetchHTTPError wraps a non-2xx HTTP response from the web fetcher.
type FetchHTTPError struct {
	URL    string
	Status int
}

func (e *FetchHTTPError) Error() string {
	return fmt.Sprintf("fetch %s: http status %d", e.URL, e.Status)
}

// FetchTimeoutError wraps a fetch that exceeded its deadline.
type FetchTimeoutError struct {
	URL string
}

func (e *FetchTimeoutError) Error() string {
	return fmt.Sprintf("fetch %s: timed out", e.URL)
}

// FetchNetworkError wraps a lower-level network failure (DNS, connection
// refused, TLS, etc).
type FetchNetworkError struct {
	URL string
	Err error
}

func (e *FetchNetworkError) Error() string {
	return fmt.Sprintf("fetch %s: network error: %v", e.URL, e.Err)
}

func (e *FetchNetworkError) Unwrap() error { return e.Err }

// ValidationError describes a single missing or malformed field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
