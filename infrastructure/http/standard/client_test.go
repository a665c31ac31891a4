package standard

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewStandardHTTPClient(t *testing.T) {
	client := NewStandardHTTPClient(10 * time.Second)

	if client.client.Timeout != 10*time.Second {
		t.Errorf("Client timeout = %v, want 10s", client.client.Timeout)
	}
	if client.attempts != 1 {
		t.Errorf("attempts = %d, want 1 (no retries by default)", client.attempts)
	}
	if client.userAgent != DefaultUserAgent {
		t.Errorf("userAgent = %q, want %q", client.userAgent, DefaultUserAgent)
	}
}

func TestStandardHTTPClient_Get_SendsFeedHeaders(t *testing.T) {
	var userAgent, accept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		accept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte("<rss/>"))
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10*time.Second, WithUserAgent("TestAgent/2.0"))
	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	defer resp.Body().Close()

	body, _ := io.ReadAll(resp.Body())
	if string(body) != "<rss/>" {
		t.Errorf("Body = %s, want <rss/>", body)
	}
	if resp.Header("content-type") != "application/rss+xml" {
		t.Errorf("Header(content-type) = %s", resp.Header("content-type"))
	}
	if userAgent != "TestAgent/2.0" {
		t.Errorf("User-Agent = %s, want TestAgent/2.0", userAgent)
	}
	if !strings.Contains(accept, "application/rss+xml") {
		t.Errorf("Accept = %s, should prefer RSS", accept)
	}
}

func TestStandardHTTPClient_Get_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10*time.Second, WithRetries(2))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.Get(ctx, server.URL)

	if err == nil {
		t.Fatal("Get should return error for context timeout")
	}
	if !strings.Contains(err.Error(), "context deadline exceeded") {
		t.Errorf("Error should mention context deadline, got: %v", err)
	}
	if time.Since(start) > 90*time.Millisecond {
		t.Error("a cancelled context should not be retried")
	}
}

func TestStandardHTTPClient_Get_InvalidURL(t *testing.T) {
	client := NewStandardHTTPClient(10 * time.Second)

	if _, err := client.Get(context.Background(), "://missing-scheme"); err == nil {
		t.Error("Get should return error for invalid URL")
	}
}

func TestStandardHTTPClient_Get_NoRetryByDefault(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	resp, err := NewStandardHTTPClient(10*time.Second).Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	resp.Body().Close()

	if atomic.LoadInt32(&attempts) != 1 {
		t.Errorf("Attempts = %d, want 1", attempts)
	}
	if resp.StatusCode() != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want 503", resp.StatusCode())
	}
}

func TestStandardHTTPClient_Get_RetriesServerErrors(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	resp, err := NewStandardHTTPClient(10*time.Second, WithRetries(2)).Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	resp.Body().Close()

	if atomic.LoadInt32(&attempts) != 3 {
		t.Errorf("Attempts = %d, want 3", attempts)
	}
	if resp.StatusCode() != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode())
	}
}

func TestStandardHTTPClient_Get_NoRetryOn4xx(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	resp, err := NewStandardHTTPClient(10*time.Second, WithRetries(2)).Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	resp.Body().Close()

	if atomic.LoadInt32(&attempts) != 1 {
		t.Errorf("Attempts = %d, want 1 (no retry on 4xx)", attempts)
	}
}

type countingTransport struct {
	next  http.RoundTripper
	calls int32
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	atomic.AddInt32(&c.calls, 1)
	return c.next.RoundTrip(r)
}

func TestStandardHTTPClient_WithTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	counter := &countingTransport{}
	client := NewStandardHTTPClient(time.Second, WithTransport(func(next http.RoundTripper) http.RoundTripper {
		counter.next = next
		return counter
	}))

	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	resp.Body().Close()

	if atomic.LoadInt32(&counter.calls) != 1 {
		t.Errorf("wrapped transport calls = %d, want 1", counter.calls)
	}
}
