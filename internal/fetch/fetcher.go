// Package fetch handles the HTTP and local-file reads feeding the
// pipelines, with config-driven retry behavior.
package fetch

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"grizstats/internal/config"
)

// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// defaultBufferSizeKb caps how much of a response body is read.
const defaultBufferSizeKb = 1024

// Fetcher performs GET requests with config-driven retry logic.
type Fetcher struct {
	client       *http.Client
	retryPolicy  *config.RetryPolicy
	bufferSizeKb int
}

// NewFetcher creates a fetcher with a default retry policy.
func NewFetcher() *Fetcher {
	return NewFetcherWithPolicy(&config.RetryPolicy{
		MaxAttempts:       3,
		InitialDelayMs:    500,
		MaxDelayMs:        30000,
		BackoffMultiplier: 2.0,
		TimeoutSec:        30,
	})
}

// NewFetcherWithPolicy creates a fetcher with a custom retry policy.
func NewFetcherWithPolicy(retryPolicy *config.RetryPolicy) *Fetcher {
	return NewFetcherWithConfig(retryPolicy, defaultBufferSizeKb)
}

// NewFetcherWithConfig creates a fetcher with a custom retry policy and
// body buffer size.
func NewFetcherWithConfig(retryPolicy *config.RetryPolicy, bufferSizeKb int) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: retryPolicy.GetTimeout(),
		},
		retryPolicy:  retryPolicy,
		bufferSizeKb: bufferSizeKb,
	}
}

// GetWithMetrics returns (body, statusCode, duration, error).
func (f *Fetcher) GetWithMetrics(url string) (string, int, time.Duration, error) {
	var lastErr error

	var lastStatusCode int

	totalDuration := time.Duration(0)

	for attempt := 1; attempt <= f.retryPolicy.MaxAttempts; attempt++ {
		startTime := time.Now()

		req, err := http.NewRequest(http.MethodGet, url, http.NoBody)
		if err != nil {
			lastErr = fmt.Errorf("failed to create request: %w", err)

			continue
		}

		// Set user agent to avoid being blocked
		req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

		resp, err := f.client.Do(req)
		duration := time.Since(startTime)
		totalDuration += duration

		if err != nil {
			lastErr = fmt.Errorf("request failed (attempt %d/%d): %w", attempt, f.retryPolicy.MaxAttempts, err)

			f.backoff(attempt)

			continue
		}

		lastStatusCode = resp.StatusCode

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)

			if isRetryableStatus(resp.StatusCode) {
				f.backoff(attempt)
			}

			continue
		}

		// Read with buffer limit
		// bufferSizeKb is in KB, convert to bytes
		limit := int64(f.bufferSizeKb) * 1024
		reader := io.LimitReader(resp.Body, limit)

		body, err := io.ReadAll(reader)
		resp.Body.Close()

		if err != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", err)

			continue
		}

		return string(body), resp.StatusCode, totalDuration, nil
	}

	return "", lastStatusCode, totalDuration, lastErr
}

// Get fetches and returns the body from the given URL.
func (f *Fetcher) Get(url string) (string, error) {
	body, _, _, err := f.GetWithMetrics(url)

	return body, err
}

// ReadLocalFile reads content from a local file path.
func (f *Fetcher) ReadLocalFile(filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read local file %s: %w", filePath, err)
	}

	return string(content), nil
}

// backoff sleeps for the policy's delay when more attempts remain.
func (f *Fetcher) backoff(attempt int) {
	if attempt >= f.retryPolicy.MaxAttempts {
		return
	}

	delay := f.retryPolicy.GetRetryDelay(attempt)
	if delay > 0 {
		time.Sleep(delay)
	}
}

// isRetryableStatus determines if we should retry based on HTTP status code.
func isRetryableStatus(statusCode int) bool {
	// Retry on temporary failures
	switch statusCode {
	case http.StatusServiceUnavailable: // 503
		return true
	case http.StatusGatewayTimeout: // 504
		return true
	case http.StatusTooManyRequests: // 429
		return true
	case http.StatusRequestTimeout: // 408
		return true
	}

	return false
}
