// Package fetch implements the web fetcher (spec.md §4.4): retrieve a URL,
// sanitise the HTML to readable text, then ask the LLM to extract the
// specific fact requested from that content alone.
package fetch

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"briefweaver/internal/apierrors"
	"briefweaver/internal/llmgw"
	"briefweaver/internal/promptlib"
)

// maxContentChars caps sanitised content before it is handed to the model,
// to stay within context limits (spec.md §4.4: "truncates to a safe
// character cap (~50 000)").
const maxContentChars = 50_000

// DefaultTimeout is the HTTP client timeout applied to every fetch (spec.md
// §5). A context deadline can shorten a fetch but not extend it past this
// value.
const DefaultTimeout = 30 * time.Second

// Fetcher retrieves and sanitises a URL, then asks the gateway to answer a
// question using only that content.
type Fetcher struct {
	http       *http.Client
	userAgent  string
	gw         llmgw.Gateway
}

// New builds a Fetcher with a generous redirect policy (teacher/stdlib
// default of 10 redirects is kept) and a configured user agent.
func New(gw llmgw.Gateway, userAgent string) *Fetcher {
	if userAgent == "" {
		userAgent = "briefweaver/1.0 (+https://example.invalid/bot)"
	}
	return &Fetcher{
		http:      &http.Client{Timeout: DefaultTimeout},
		userAgent: userAgent,
		gw:        gw,
	}
}

// Fetch retrieves url, sanitises it to readable text, and answers question
// using only that content. Errors are one of apierrors.FetchHTTPError,
// apierrors.FetchTimeoutError, or apierrors.FetchNetworkError so callers
// can degrade gracefully (spec.md §4.4, §7).
func (f *Fetcher) Fetch(ctx context.Context, rawURL, question string) (string, error) {
	content, err := f.fetchText(ctx, rawURL)
	if err != nil {
		return "", err
	}

	userMsg := "Question: " + question + "\n\nPage content:\n" + content
	answer, err := f.gw.Analyze(ctx, promptlib.WebFetchExtractionSystem, userMsg, 0.0, 600)
	if err != nil {
		return "", err
	}
	return answer, nil
}

// FetchText retrieves and sanitises url without invoking the LLM, for
// callers that need the raw sanitised content rather than an answer.
func (f *Fetcher) FetchText(ctx context.Context, rawURL string) (string, error) {
	return f.fetchText(ctx, rawURL)
}

func (f *Fetcher) fetchText(ctx context.Context, rawURL string) (string, error) {
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return "", &apierrors.FetchNetworkError{URL: rawURL, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &apierrors.FetchNetworkError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", &apierrors.FetchTimeoutError{URL: rawURL}
		}
		if urlErr, ok := err.(*url.Error); ok && urlErr.Timeout() {
			return "", &apierrors.FetchTimeoutError{URL: rawURL}
		}
		return "", &apierrors.FetchNetworkError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &apierrors.FetchHTTPError{URL: rawURL, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 5*maxContentChars))
	if err != nil {
		return "", &apierrors.FetchNetworkError{URL: rawURL, Err: err}
	}

	text, err := SanitizeHTML(string(body))
	if err != nil {
		return "", &apierrors.FetchNetworkError{URL: rawURL, Err: err}
	}

	if len(text) > maxContentChars {
		text = text[:maxContentChars]
	}
	return text, nil
}

var stripSelectors = []string{"script", "style", "nav", "footer", "header", "noscript", "iframe"}

// adPatterns filters boilerplate navigation/ad text, adapted from the
// teacher's pkg/extraction.ContentProcessor.
var adPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(advertisement|subscribe now|sign up for our newsletter|cookie policy|privacy policy)`),
	regexp.MustCompile(`(?i)(click here|read more|follow us on|share this article)`),
}

var whitespaceRegex = regexp.MustCompile(`\s+`)

// SanitizeHTML strips non-content tags and collapses the remainder to
// readable text (spec.md §4.4).
func SanitizeHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	for _, sel := range stripSelectors {
		doc.Find(sel).Remove()
	}

	text := doc.Text()
	for _, pattern := range adPatterns {
		text = pattern.ReplaceAllString(text, "")
	}
	text = whitespaceRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(text), nil
}
