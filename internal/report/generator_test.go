package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

func newTestGenerator(t *testing.T, handler http.HandlerFunc) *Generator {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	client := openai.NewClientWithConfig(cfg)

	return NewGenerator(zap.NewNop(), client, "gpt-4o-mini")
}

func TestGenerate(t *testing.T) {
	var gotBody []byte
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"choices": [
				{"message": {"role": "assistant", "content": "A soft grey morning. #708090"}}
			]
		}`)
	})

	imageURLs := []string{"https://example.com/left.jpg", "https://example.com/right.jpg"}
	got, err := g.Generate(context.Background(), "Describe the weather.", imageURLs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "A soft grey morning. #708090" {
		t.Fatalf("raw text = %q", got)
	}

	// The request carried the prompt and both image URLs as message parts.
	var req struct {
		Model    string `json:"model"`
		Messages []struct {
			Content []struct {
				Type     string `json:"type"`
				Text     string `json:"text"`
				ImageURL struct {
					URL string `json:"url"`
				} `json:"image_url"`
			} `json:"content"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(gotBody, &req); err != nil {
		t.Fatalf("request body not JSON: %v", err)
	}
	if req.Model != "gpt-4o-mini" {
		t.Fatalf("model = %q", req.Model)
	}
	if len(req.Messages) != 1 || len(req.Messages[0].Content) != 3 {
		t.Fatalf("unexpected message shape: %s", gotBody)
	}
	if req.Messages[0].Content[0].Text != "Describe the weather." {
		t.Fatalf("prompt part = %q", req.Messages[0].Content[0].Text)
	}
	for i, want := range imageURLs {
		if got := req.Messages[0].Content[i+1].ImageURL.URL; got != want {
			t.Fatalf("image part %d = %q, want %q", i, got, want)
		}
	}
}

func TestGenerateServiceError(t *testing.T) {
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "overloaded"}}`, http.StatusServiceUnavailable)
	})

	_, err := g.Generate(context.Background(), "Describe the weather.", nil)
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("error = %v, want ErrGeneration", err)
	}
	if !strings.Contains(err.Error(), "generation failed") {
		t.Fatalf("error text = %q", err)
	}
}

func TestGenerateEmptyChoices(t *testing.T) {
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices": []}`)
	})

	_, err := g.Generate(context.Background(), "Describe the weather.", nil)
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("error = %v, want ErrGeneration", err)
	}
}
