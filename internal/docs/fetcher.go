package docs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	userAgent    = "DocuBot/1.0"
	maxBodyBytes = 1 << 20
	separator    = "\n\n---\n\n"
)

// Fetcher retrieves documentation pages concurrently and combines them under
// per-page and aggregate character budgets.
type Fetcher struct {
	client     *http.Client
	logger     *zap.Logger
	timeout    time.Duration
	pageLimit  int
	totalLimit int
}

// NewFetcher creates a documentation fetcher. The client follows redirects
// with the default policy; each page fetch gets its own timeout.
func NewFetcher(logger *zap.Logger, timeout time.Duration, pageLimit, totalLimit int) *Fetcher {
	return &Fetcher{
		client:     &http.Client{},
		logger:     logger,
		timeout:    timeout,
		pageLimit:  pageLimit,
		totalLimit: totalLimit,
	}
}

// Fetch retrieves every URL concurrently and joins the readable text of the
// pages that succeeded, in URL order. A failed page is logged and skipped,
// never aborting its siblings. The second return is false when every page
// failed or was empty, which callers treat as "no documentation found".
func (f *Fetcher) Fetch(ctx context.Context, urls []string) (string, bool) {
	results := make([]string, len(urls))

	var wg sync.WaitGroup
	for i, url := range urls {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			content, err := f.fetchPage(ctx, url)
			if err != nil {
				f.logger.Warn("Failed to fetch documentation page",
					zap.String("url", url),
					zap.Error(err),
				)
				return
			}
			results[i] = content
		}(i, url)
	}
	wg.Wait()

	var parts []string
	for _, r := range results {
		if r != "" {
			parts = append(parts, r)
		}
	}
	if len(parts) == 0 {
		return "", false
	}

	combined := strings.Join(parts, separator)
	if len(combined) > f.totalLimit {
		combined = combined[:f.totalLimit]
	}
	return combined, true
}

// fetchPage downloads one page and reduces it to budgeted text prefixed with
// its source URL.
func (f *Fetcher) fetchPage(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}

	text := ExtractText(string(body))
	if text == "" {
		return "", nil
	}

	content := fmt.Sprintf("Source: %s\n\n%s", url, text)
	if len(content) > f.pageLimit {
		content = content[:f.pageLimit]
	}
	return content, nil
}
