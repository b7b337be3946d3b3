package fetch

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"

	"briefweaver/internal/apierrors"
)

// BrowserFetcher renders JavaScript-dependent pages before sanitisation,
// used when an AuthoritativeSource is flagged RequiresJS (spec.md §4.3,
// §4.4). Adapted from the teacher's internal/tools/browser automation,
// which drove the same Playwright API for article scraping.
type BrowserFetcher struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

// NewBrowserFetcher launches a headless Chromium instance. Callers should
// Close it when the process is shutting down.
func NewBrowserFetcher() (*BrowserFetcher, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	return &BrowserFetcher{pw: pw, browser: browser}, nil
}

// Close releases the browser and driver process.
func (b *BrowserFetcher) Close() error {
	if err := b.browser.Close(); err != nil {
		return err
	}
	return b.pw.Stop()
}

// RenderText navigates to url, waits for network idle, and returns the
// sanitised visible text of the rendered DOM.
func (b *BrowserFetcher) RenderText(ctx context.Context, rawURL string) (string, error) {
	page, err := b.browser.NewPage()
	if err != nil {
		return "", &apierrors.FetchNetworkError{URL: rawURL, Err: err}
	}
	defer page.Close()

	if _, err := page.Goto(rawURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	}); err != nil {
		if ctx.Err() != nil {
			return "", &apierrors.FetchTimeoutError{URL: rawURL}
		}
		return "", &apierrors.FetchNetworkError{URL: rawURL, Err: err}
	}

	html, err := page.Content()
	if err != nil {
		return "", &apierrors.FetchNetworkError{URL: rawURL, Err: err}
	}

	text, err := SanitizeHTML(html)
	if err != nil {
		return "", &apierrors.FetchNetworkError{URL: rawURL, Err: err}
	}
	if len(text) > maxContentChars {
		text = text[:maxContentChars]
	}
	return text, nil
}
