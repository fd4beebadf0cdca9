package commands

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diogo/geminichat/internal/config"
	"github.com/diogo/geminichat/internal/models"
)

type capturedRequest struct {
	path   string
	apiKey string
}

func TestNewGeminiGateway_BaseURL(t *testing.T) {
	requests := make(chan capturedRequest, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests <- capturedRequest{path: r.URL.Path, apiKey: r.Header.Get("x-goog-api-key")}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"pong"}]}}]}`)
	}))
	defer srv.Close()

	cfg := config.DefaultConfig()
	cfg.BaseURL = srv.URL + "/"

	gw, err := NewGeminiGateway(context.Background(), "test-key", cfg)
	if err != nil {
		t.Fatalf("NewGeminiGateway: %v", err)
	}

	text, err := gw.Generate(context.Background(), "ping")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != "pong" {
		t.Errorf("Generate() = %q, want pong", text)
	}

	select {
	case req := <-requests:
		if !strings.Contains(req.path, models.DefaultModel+":generateContent") {
			t.Errorf("request path = %q", req.path)
		}
		if req.apiKey != "test-key" {
			t.Errorf("api key header = %q", req.apiKey)
		}
	default:
		t.Fatal("configured endpoint was never called")
	}
}

func TestNewGeminiGateway_MissingKey(t *testing.T) {
	gw, err := NewGeminiGateway(context.Background(), "  ", config.DefaultConfig())
	if err == nil {
		t.Fatal("expected error for empty key")
	}
	if gw != nil {
		t.Errorf("gateway should be nil on error, got %T", gw)
	}
}
