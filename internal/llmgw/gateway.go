// Package llmgw is the single call boundary to the language model. Every
// other component composes prompts and parses responses; nothing outside
// this package talks to the model directly (spec.md §4.1, §9 "LLM call
// boundary").
package llmgw

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"briefweaver/internal/apierrors"
)

// Gateway is the interface every component depends on. Substituting a
// recorded-responses double (RecordedGateway) permits offline testing of
// every component without a live model.
type Gateway interface {
	// Analyze sends a system prompt + user message pair and returns the
	// model's raw text response. Temperature is a caller concern: 0.0 for
	// extraction/classification/verification/bias/intimacy/source-matching,
	// <=0.3 for perception and reflection, ~1.0 for creative synthesis.
	Analyze(ctx context.Context, systemPrompt, userMessage string, temperature float64, maxTokens int) (string, error)
}

// StreamingGateway is implemented by gateways that can stream partial
// output, used by the HTTP API's streaming trust-query route for
// incremental display.
type StreamingGateway interface {
	Gateway
	AnalyzeStream(ctx context.Context, systemPrompt, userMessage string, temperature float64, maxTokens int, chunks chan<- string) error
}

// Message is one chat turn in an OpenAI-compatible completions request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Stream      bool      `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content,omitempty"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// HTTPGateway talks to an OpenAI-compatible chat-completions endpoint.
type HTTPGateway struct {
	url     string
	model   string
	http    *http.Client
}

// NewHTTPGateway builds a gateway against the given base URL and model,
// applying the extended timeout the teacher's llm.Client uses for slow
// local inference backends.
func NewHTTPGateway(url, model string, timeout time.Duration) *HTTPGateway {
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &HTTPGateway{
		url:   url,
		model: model,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 90 * time.Second,
			},
		},
	}
}

func (g *HTTPGateway) Analyze(ctx context.Context, systemPrompt, userMessage string, temperature float64, maxTokens int) (string, error) {
	req := chatRequest{
		Model:       g.model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal llm request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build llm request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apierrors.ErrLLMUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: status %d: %s", apierrors.ErrLLMUnavailable, resp.StatusCode, string(b))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: %v", apierrors.ErrLLMUnavailable, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", apierrors.ErrLLMUnavailable)
	}

	return parsed.Choices[0].Message.Content, nil
}

// AnalyzeStream streams the response through chunks as it arrives, closing
// the channel is the caller's responsibility once this returns.
func (g *HTTPGateway) AnalyzeStream(ctx context.Context, systemPrompt, userMessage string, temperature float64, maxTokens int, chunks chan<- string) error {
	req := chatRequest{
		Model:       g.model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Stream:      true,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal llm request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build llm request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := g.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", apierrors.ErrLLMUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d: %s", apierrors.ErrLLMUnavailable, resp.StatusCode, string(b))
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")
		if data == "[DONE]" {
			break
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			log.Printf("[llmgw] skipping unparsable stream chunk: %v", err)
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		if c := chunk.Choices[0].Delta.Content; c != "" {
			select {
			case chunks <- c:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if chunk.Choices[0].FinishReason != "" {
			break
		}
	}

	return scanner.Err()
}
