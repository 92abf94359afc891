package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetWithContext_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "config-forge/1.0" {
			t.Errorf("User-Agent = %q, want %q", got, "config-forge/1.0")
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewClient(nil)
	resp, err := client.GetWithContext(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("GetWithContext() error = %v", err)
	}

	body, err := ReadResponseBody(resp)
	if err != nil {
		t.Fatalf("ReadResponseBody() error = %v", err)
	}
	if string(body) != "ok" {
		t.Errorf("body = %q, want %q", body, "ok")
	}
}

func TestGetWithContext_RetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	config := DefaultConfig()
	config.RetryBackoff = time.Millisecond

	client := NewClient(config)
	resp, err := client.GetWithContext(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("GetWithContext() error = %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server called %d times, want 3", got)
	}
}

func TestGetWithContext_NonRetryableStatusReturned(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	config := DefaultConfig()
	config.RetryBackoff = time.Millisecond

	client := NewClient(config)
	resp, err := client.GetWithContext(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("GetWithContext() error = %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server called %d times, want 1 (404 is not retryable)", got)
	}

	if err := EnsureStatusOK(resp); err == nil {
		t.Error("EnsureStatusOK() expected error for 404 response")
	}
}

func TestGetWithContext_BearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sekrit" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer sekrit")
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	config := DefaultConfig()
	config.AuthToken = "sekrit"

	client := NewClient(config)
	resp, err := client.GetWithContext(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("GetWithContext() error = %v", err)
	}
	resp.Body.Close()
}

func TestGetWithContext_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	config := DefaultConfig()
	config.RetryBackoff = time.Hour // would stall without cancellation

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewClient(config)
	if _, err := client.GetWithContext(ctx, server.URL); err == nil {
		t.Error("GetWithContext() expected error after context cancellation")
	}
}

func TestIsRetryableStatusCode(t *testing.T) {
	tests := []struct {
		code     int
		expected bool
	}{
		{http.StatusOK, false},
		{http.StatusNotFound, false},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusBadGateway, true},
		{http.StatusServiceUnavailable, true},
		{http.StatusGatewayTimeout, true},
	}

	for _, tt := range tests {
		if got := IsRetryableStatusCode(tt.code); got != tt.expected {
			t.Errorf("IsRetryableStatusCode(%d) = %v, want %v", tt.code, got, tt.expected)
		}
	}
}
