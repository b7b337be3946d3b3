package llmgw

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// RecordedGateway is a fixture-backed Gateway double: each call pops the
// next queued response keyed by the exact system prompt text, so tests
// never reach a live model (spec.md §9 "LLM call boundary"). Since every
// component's system prompt is a distinct versioned constant
// (internal/promptlib), the prompt text itself is a stable, collision-free
// key. CallCount lets tests assert an expected number of invocations, e.g.
// that the verifier never calls the gateway for SPECULATION/OPINION claims.
type RecordedGateway struct {
	mu        sync.Mutex
	responses map[string][]string
	err       map[string]error
	calls     map[string]int
	Default   string
}

func NewRecordedGateway() *RecordedGateway {
	return &RecordedGateway{
		responses: make(map[string][]string),
		err:       make(map[string]error),
		calls:     make(map[string]int),
	}
}

// Enqueue appends a canned response to be returned for calls whose system
// prompt is systemPrompt, in FIFO order across repeated calls.
func (r *RecordedGateway) Enqueue(systemPrompt, response string) *RecordedGateway {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[systemPrompt] = append(r.responses[systemPrompt], response)
	return r
}

// FailNext makes the next call with this system prompt return err.
func (r *RecordedGateway) FailNext(systemPrompt string, err error) *RecordedGateway {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err[systemPrompt] = err
	return r
}

// CallCount returns how many times Analyze was invoked with this system prompt.
func (r *RecordedGateway) CallCount(systemPrompt string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[systemPrompt]
}

// TotalCalls returns how many times Analyze was invoked across all prompts.
func (r *RecordedGateway) TotalCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, n := range r.calls {
		total += n
	}
	return total
}

// Analyze implements Gateway.
func (r *RecordedGateway) Analyze(ctx context.Context, systemPrompt, userMessage string, temperature float64, maxTokens int) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls[systemPrompt]++

	if err, ok := r.err[systemPrompt]; ok {
		delete(r.err, systemPrompt)
		return "", err
	}

	queue := r.responses[systemPrompt]
	if len(queue) > 0 {
		next := queue[0]
		r.responses[systemPrompt] = queue[1:]
		return next, nil
	}
	if r.Default != "" {
		return r.Default, nil
	}
	return "", fmt.Errorf("recorded gateway: no response queued for prompt %q", truncate(systemPrompt, 40))
}

// LoadRecordedGateway reads a JSON fixture file shaped
// {"<system prompt>": ["<response 1>", "<response 2>", ...], ...} and
// returns a RecordedGateway pre-loaded with those queues, for running the
// CLI offline against a canned conversation instead of a live model.
func LoadRecordedGateway(path string) (*RecordedGateway, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recorded gateway fixture: %w", err)
	}

	var fixture map[string][]string
	if err := json.Unmarshal(body, &fixture); err != nil {
		return nil, fmt.Errorf("decode recorded gateway fixture: %w", err)
	}

	gw := NewRecordedGateway()
	for prompt, responses := range fixture {
		for _, r := range responses {
			gw.Enqueue(prompt, r)
		}
	}
	return gw, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
