package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestExecutorTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	exec := NewExecutor(WithTimeout(20 * time.Millisecond))

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}

	resp, err := exec.Do(context.Background(), req)
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if resp.Duration <= 0 {
		t.Fatalf("expected duration to be set")
	}
}

func TestExecutorDefaultHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.Header.Get("User-Agent") + "|" + r.Header.Get("Accept")))
	}))
	defer server.Close()

	cfg := DefaultConfig()
	cfg.UserAgent = "cardlist-test/1.0"
	exec := NewExecutor(WithClient(New(cfg)))

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	resp, err := exec.Do(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.Status)
	}
	if got := string(resp.BodyBytes); got != "cardlist-test/1.0|application/json" {
		t.Fatalf("expected default headers, server saw %q", got)
	}
	if req.Header.Get("User-Agent") != "" {
		t.Fatalf("caller request must not be modified")
	}
}

func TestExecutorTruncatesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer server.Close()

	exec := NewExecutor(WithMaxBodyBytes(16))
	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)

	resp, err := exec.Do(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Truncated || len(resp.BodyBytes) != 16 {
		t.Fatalf("expected truncated 16-byte body, got truncated=%v len=%d", resp.Truncated, len(resp.BodyBytes))
	}
}

func TestExecutorRateLimitSpacesRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	exec := NewExecutor(WithRateLimit(20)) // one request every 50ms

	start := time.Now()
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
		if _, err := exec.Do(context.Background(), req); err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed < 90*time.Millisecond {
		t.Fatalf("expected requests to be spaced by the limiter, took %s", elapsed)
	}
}

func TestExecutorRateLimitHonorsCancel(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	exec := NewExecutor(WithRateLimit(0.5)) // one request every 2s

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	if _, err := exec.Do(context.Background(), req); err != nil {
		t.Fatalf("first request: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := exec.Do(ctx, req)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if n := hits.Load(); n != 1 {
		t.Fatalf("expected the canceled request not to reach the server, hits=%d", n)
	}
}
