// ABOUTME: Tests for the embedding client's HTTP contract, retry, and result cache
package embedclient

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/memexlabs/memex/internal/memerr"
)

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	return New(Config{BaseURL: url, Model: "test-model", MaxRetries: 2, RetryDelay: time.Millisecond})
}

func TestEmbed_DecodesVectorOnSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(embedResponse{Embedding: []float32{0.1, 0.2, 0.3}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	res, err := c.Embed(t.Context(), "hello world")
	if err != nil {
		t.Fatal(err)
	}
	if res.Dimensions != 3 || res.Model != "test-model" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestEmbed_CachesRepeatedQuery(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode(embedResponse{Embedding: []float32{1, 2}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, err := c.Embed(t.Context(), "same query"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Embed(t.Context(), "same query"); err != nil {
		t.Fatal(err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("want 1 HTTP call for two identical queries, got %d", got)
	}
}

func TestEmbed_RetriesOnServerErrorThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(embedResponse{Embedding: []float32{1, 2}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	res, err := c.Embed(t.Context(), "retry me")
	if err != nil {
		t.Fatalf("want eventual success after one retry, got %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("want exactly 2 HTTP attempts, got %d", calls.Load())
	}
	if res.Dimensions != 2 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestEmbed_EmptyEmbeddingIsProtocolErrorWithoutRetrying(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode(embedResponse{Embedding: nil})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Embed(t.Context(), "x")
	if err == nil {
		t.Fatal("want an error for an empty embedding vector")
	}
	if !errors.Is(err, memerr.ErrProtocolError) {
		t.Errorf("want errors.Is(err, memerr.ErrProtocolError), got %v", err)
	}
	if errors.Is(err, memerr.ErrServiceUnavailable) {
		t.Error("want a protocol error, not reclassified as ServiceUnavailable")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("want exactly 1 HTTP attempt (no retry on protocol error), got %d", got)
	}
}

func TestEmbed_MalformedJSONIsProtocolErrorWithoutRetrying(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Embed(t.Context(), "x")
	if !errors.Is(err, memerr.ErrProtocolError) {
		t.Errorf("want errors.Is(err, memerr.ErrProtocolError), got %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("want exactly 1 HTTP attempt (no retry on protocol error), got %d", got)
	}
}

func TestEmbed_TruncatesOverlongInput(t *testing.T) {
	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req embedRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotPrompt = req.Prompt
		_ = json.NewEncoder(w).Encode(embedResponse{Embedding: []float32{1}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	long := make([]byte, defaultMaxInputChars+1000)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := c.Embed(t.Context(), string(long)); err != nil {
		t.Fatal(err)
	}
	if len(gotPrompt) != defaultMaxInputChars {
		t.Errorf("want the prompt truncated to %d chars, got %d", defaultMaxInputChars, len(gotPrompt))
	}
}
