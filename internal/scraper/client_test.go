// internal/scraper/client_test.go
package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientGetDocument(t *testing.T) {
	var gotHeaders http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		w.Write([]byte(`<html><body><h1 id="heading">hello</h1></body></html>`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		Delay:     time.Millisecond,
		UserAgent: "test-agent",
		Headers:   map[string]string{"X-Custom": "yes"},
	})
	defer client.Close()

	doc, err := client.GetDocument(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if got := doc.Find("#heading").Text(); got != "hello" {
		t.Errorf("document text = %q", got)
	}

	if ua := gotHeaders.Get("User-Agent"); ua != "test-agent" {
		t.Errorf("User-Agent = %q", ua)
	}
	if al := gotHeaders.Get("Accept-Language"); al != "en-US,en;q=0.5" {
		t.Errorf("Accept-Language = %q", al)
	}
	if custom := gotHeaders.Get("X-Custom"); custom != "yes" {
		t.Errorf("X-Custom = %q", custom)
	}
}

func TestClientGetDocumentStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{Delay: time.Millisecond})
	defer client.Close()

	if _, err := client.GetDocument(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for 403 response")
	}
}

func TestClientGetDocumentCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	client := NewClient(ClientConfig{Delay: time.Millisecond})
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.GetDocument(ctx, server.URL); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestClientDelayBetweenRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html></html>`))
	}))
	defer server.Close()

	delay := 50 * time.Millisecond
	client := NewClient(ClientConfig{Delay: delay})
	defer client.Close()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := client.GetDocument(context.Background(), server.URL); err != nil {
			t.Fatalf("GetDocument: %v", err)
		}
	}
	// The first request passes immediately; the next two each wait a token.
	if elapsed := time.Since(start); elapsed < 2*delay {
		t.Errorf("3 requests completed in %v, want at least %v", elapsed, 2*delay)
	}
}
