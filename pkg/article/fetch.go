package article

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultMaxBodySize = 10 * 1024 * 1024 // 10 MB limit for HTML content

// Fetcher downloads web pages and extracts their article text.
type Fetcher struct {
	Client *http.Client
	// MaxBodySize caps the response body to prevent OOM from untrusted URLs.
	MaxBodySize int64
}

// NewFetcher returns a Fetcher with the given request timeout and body cap.
// Zero values fall back to 30s and 10 MB.
func NewFetcher(timeout time.Duration, maxBodySize int64) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if maxBodySize <= 0 {
		maxBodySize = defaultMaxBodySize
	}
	return &Fetcher{
		Client:      &http.Client{Timeout: timeout},
		MaxBodySize: maxBodySize,
	}
}

// Fetch retrieves rawURL and returns its readable text.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Text, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return Text{}, fmt.Errorf("parse url %q: %w", rawURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Text{}, fmt.Errorf("create request: %w", err)
	}
	// Some news sites block unknown clients (403 or Cloudflare challenges).
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ja,en-US;q=0.8,en;q=0.7")

	resp, err := f.Client.Do(req)
	if err != nil {
		return Text{}, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Text{}, fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}
	if resp.ContentLength > f.MaxBodySize {
		return Text{}, fmt.Errorf("fetch %s: content-length %d exceeds limit of %d bytes", rawURL, resp.ContentLength, f.MaxBodySize)
	}

	// Read one byte past the limit so an exactly-full body is not mistaken
	// for a truncated one.
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.MaxBodySize+1))
	if err != nil {
		return Text{}, fmt.Errorf("read response body: %w", err)
	}
	if int64(len(body)) > f.MaxBodySize {
		return Text{}, fmt.Errorf("fetch %s: body exceeded maximum size of %d bytes", rawURL, f.MaxBodySize)
	}

	return FromHTML(rawURL, body, pageURL)
}
