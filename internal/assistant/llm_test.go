package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestLLMClientNotConfigured(t *testing.T) {
	client := NewLLMClient("", LLMOptions{})
	_, err := client.Generate(context.Background(), "hello", 50)
	if !errors.Is(err, ErrLLMNotConfigured) {
		t.Fatalf("err = %v, want ErrLLMNotConfigured", err)
	}
}

func TestLLMClientGenerate(t *testing.T) {
	var gotBody generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate" {
			t.Errorf("path = %q, want /generate", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		json.NewEncoder(w).Encode(generateResponse{Text: "generated reply", ResponseLength: 15})
	}))
	defer server.Close()

	client := NewLLMClient(server.URL, LLMOptions{RateLimit: 1000})
	text, err := client.Generate(context.Background(), "say something", 80)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != "generated reply" {
		t.Errorf("text = %q", text)
	}
	if gotBody.Prompt != "say something" || gotBody.MaxTokens != 80 {
		t.Errorf("request body = %+v", gotBody)
	}
}

func TestLLMClientRetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(generateResponse{Text: "second try"})
	}))
	defer server.Close()

	client := NewLLMClient(server.URL, LLMOptions{MaxRetries: 2, RateLimit: 1000})
	text, err := client.Generate(context.Background(), "p", 10)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != "second try" {
		t.Errorf("text = %q", text)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestLLMClientGivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewLLMClient(server.URL, LLMOptions{MaxRetries: 3, RateLimit: 1000})
	_, err := client.Generate(context.Background(), "p", 10)
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestLLMClientContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(generateResponse{Text: "too late"})
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	client := NewLLMClient(server.URL, LLMOptions{MaxRetries: 1, RateLimit: 1000})
	_, err := client.Generate(ctx, "p", 10)
	if err == nil {
		t.Fatal("expected error on cancelled context")
	}
}
