package fetch

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"grizstats/internal/config"
)

func testPolicy(attempts int) *config.RetryPolicy {
	return &config.RetryPolicy{
		MaxAttempts:       attempts,
		InitialDelayMs:    1,
		MaxDelayMs:        5,
		BackoffMultiplier: 1.0,
		TimeoutSec:        5,
	}
}

func TestFetcher_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("request has no User-Agent")
		}

		w.Write([]byte("<html>ok</html>"))
	}))
	defer server.Close()

	fetcher := NewFetcherWithPolicy(testPolicy(1))

	body, err := fetcher.Get(server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	if body != "<html>ok</html>" {
		t.Errorf("body = %q", body)
	}
}

func TestFetcher_RetriesRetryableStatus(t *testing.T) {
	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}

		w.Write([]byte("recovered"))
	}))
	defer server.Close()

	fetcher := NewFetcherWithPolicy(testPolicy(3))

	body, statusCode, _, err := fetcher.GetWithMetrics(server.URL)
	if err != nil {
		t.Fatalf("GetWithMetrics returned error: %v", err)
	}

	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}

	if statusCode != http.StatusOK || body != "recovered" {
		t.Errorf("status/body = %d/%q", statusCode, body)
	}
}

func TestFetcher_ExhaustsAttempts(t *testing.T) {
	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	fetcher := NewFetcherWithPolicy(testPolicy(2))

	_, statusCode, _, err := fetcher.GetWithMetrics(server.URL)
	if !errors.Is(err, ErrUnexpectedStatusCode) {
		t.Fatalf("err = %v, want ErrUnexpectedStatusCode", err)
	}

	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}

	if statusCode != http.StatusServiceUnavailable {
		t.Errorf("statusCode = %d, want 503", statusCode)
	}
}

func TestFetcher_DoesNotRetryClientErrors(t *testing.T) {
	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewFetcherWithPolicy(testPolicy(3))

	_, _, _, err := fetcher.GetWithMetrics(server.URL)
	if !errors.Is(err, ErrUnexpectedStatusCode) {
		t.Fatalf("err = %v, want ErrUnexpectedStatusCode", err)
	}

	// Non-retryable statuses skip the backoff but the loop still runs its
	// attempts.
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestFetcher_BodyReadIsBufferLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(bytes.Repeat([]byte("x"), 4096))
	}))
	defer server.Close()

	fetcher := NewFetcherWithConfig(testPolicy(1), 1)

	body, err := fetcher.Get(server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	// 1 KB buffer caps the 4 KB response.
	if len(body) != 1024 {
		t.Errorf("body length = %d, want 1024", len(body))
	}
}

func TestFetcher_ReadLocalFile(t *testing.T) {
	fetcher := NewFetcher()

	_, err := fetcher.ReadLocalFile("does/not/exist.csv")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
