package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"emoticare/internal/domain"
	"emoticare/internal/prompt"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func jsonResponse(code int, body string) *http.Response {
	return &http.Response{
		StatusCode: code,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newTestClient(t *testing.T, rt roundTripFunc) *Client {
	t.Helper()
	c, err := NewClient(Options{
		APIKey:     "dummy",
		HTTPClient: &http.Client{Transport: rt},
	})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func TestGenerateTextReturnsCandidateText(t *testing.T) {
	var captured *http.Request
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		captured = r
		return jsonResponse(200, `{"candidates":[{"content":{"parts":[{"text":"hello there"}]}}]}`), nil
	})

	text, err := c.GenerateText(context.Background(), &prompt.Prompt{Text: "hi"})
	if err != nil {
		t.Fatalf("GenerateText returned error: %v", err)
	}
	if text != "hello there" {
		t.Errorf("text = %q", text)
	}
	if captured.Header.Get("x-goog-api-key") != "dummy" {
		t.Error("api key header missing")
	}
	if !strings.Contains(captured.URL.Path, "gemma-3-27b-it") {
		t.Errorf("text prompts should use the text model, path = %s", captured.URL.Path)
	}
}

func TestGenerateTextRoutesImagePromptsToVisionModel(t *testing.T) {
	var captured *http.Request
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		captured = r
		return jsonResponse(200, `{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`), nil
	})

	_, err := c.GenerateText(context.Background(), &prompt.Prompt{
		Text:      "analyze",
		Image:     []byte{0xff, 0xd8},
		ImageMIME: "image/jpeg",
	})
	if err != nil {
		t.Fatalf("GenerateText returned error: %v", err)
	}
	if !strings.Contains(captured.URL.Path, "gemini-1.5-flash") {
		t.Errorf("image prompts should use the vision model, path = %s", captured.URL.Path)
	}

	var payload struct {
		Contents []struct {
			Parts []struct {
				InlineData *struct {
					MimeType string `json:"mime_type"`
					Data     string `json:"data"`
				} `json:"inline_data"`
			} `json:"parts"`
		} `json:"contents"`
	}
	body, _ := io.ReadAll(captured.Body)
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode request body: %v", err)
	}
	found := false
	for _, part := range payload.Contents[0].Parts {
		if part.InlineData != nil && part.InlineData.MimeType == "image/jpeg" && part.InlineData.Data != "" {
			found = true
		}
	}
	if !found {
		t.Error("request should carry the image inline")
	}
}

func TestGenerateTextErrorClassification(t *testing.T) {
	cases := []struct {
		name string
		code int
		body string
		kind domain.GenerationKind
	}{
		{"rate limited", 429, `{"error":{"code":429,"status":"RESOURCE_EXHAUSTED","message":"quota"}}`, domain.GenerationRateLimited},
		{"timeout", 504, `{"error":{"message":"deadline"}}`, domain.GenerationTimeout},
		{"refused", 403, `{"error":{"message":"blocked"}}`, domain.GenerationUpstreamRefused},
		{"server error", 500, `{"error":{"message":"boom"}}`, domain.GenerationUpstreamMalformed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
				return jsonResponse(tc.code, tc.body), nil
			})
			_, err := c.GenerateText(context.Background(), &prompt.Prompt{Text: "hi"})
			gen, ok := domain.AsGeneration(err)
			if !ok {
				t.Fatalf("expected GenerationError, got %v", err)
			}
			if gen.Kind != tc.kind {
				t.Errorf("kind = %q, want %q", gen.Kind, tc.kind)
			}
		})
	}
}

func TestGenerateTextBlockedPromptIsRefused(t *testing.T) {
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(200, `{"promptFeedback":{"blockReason":"SAFETY"}}`), nil
	})
	_, err := c.GenerateText(context.Background(), &prompt.Prompt{Text: "hi"})
	gen, ok := domain.AsGeneration(err)
	if !ok || gen.Kind != domain.GenerationUpstreamRefused {
		t.Fatalf("expected refused, got %v", err)
	}
}

func TestGenerateTextEmptyCandidatesIsMalformed(t *testing.T) {
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(200, `{"candidates":[]}`), nil
	})
	_, err := c.GenerateText(context.Background(), &prompt.Prompt{Text: "hi"})
	gen, ok := domain.AsGeneration(err)
	if !ok || gen.Kind != domain.GenerationUpstreamMalformed {
		t.Fatalf("expected malformed, got %v", err)
	}
}

func TestGenerateTextDeadlineExceededIsTimeout(t *testing.T) {
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return nil, context.DeadlineExceeded
	})
	_, err := c.GenerateText(context.Background(), &prompt.Prompt{Text: "hi"})
	gen, ok := domain.AsGeneration(err)
	if !ok || gen.Kind != domain.GenerationTimeout {
		t.Fatalf("expected timeout, got %v", err)
	}
}

func TestGenerateTextRejectsEmptyPrompt(t *testing.T) {
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		t.Fatal("no request should be sent")
		return nil, nil
	})
	if _, err := c.GenerateText(context.Background(), &prompt.Prompt{}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Options{}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
