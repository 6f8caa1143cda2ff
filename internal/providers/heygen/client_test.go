package heygen

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"emoticare/internal/domain"
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
	c, err := NewClient(Options{APIKey: "dummy", HTTPClient: &http.Client{Transport: rt}})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func TestGenerateReturnsQueuedJob(t *testing.T) {
	var captured *http.Request
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		captured = r
		return jsonResponse(200, `{"data":{"video_id":"vid-123"}}`), nil
	})

	job, err := c.Generate(context.Background(), GenerateRequest{
		InputText: "take a deep breath",
		AvatarID:  "Daisy-inskirt-20220818",
		VoiceID:   "voice-1",
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if job.ID != "vid-123" || job.Status != domain.VideoQueued {
		t.Errorf("job = %+v", job)
	}
	if job.EstimatedSeconds == 0 {
		t.Error("queued jobs should carry an estimate")
	}
	if captured.Header.Get("X-Api-Key") != "dummy" {
		t.Error("api key header missing")
	}

	var payload struct {
		VideoInputs []struct {
			Character struct {
				AvatarID string `json:"avatar_id"`
			} `json:"character"`
			Voice struct {
				InputText string `json:"input_text"`
			} `json:"voice"`
		} `json:"video_inputs"`
	}
	body, _ := io.ReadAll(captured.Body)
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode request: %v", err)
	}
	if payload.VideoInputs[0].Character.AvatarID != "Daisy-inskirt-20220818" {
		t.Errorf("avatar = %q", payload.VideoInputs[0].Character.AvatarID)
	}
	if payload.VideoInputs[0].Voice.InputText != "take a deep breath" {
		t.Errorf("input text = %q", payload.VideoInputs[0].Voice.InputText)
	}
}

func TestGenerateAppliesRenderingDefaults(t *testing.T) {
	var body []byte
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		body, _ = io.ReadAll(r.Body)
		return jsonResponse(200, `{"data":{"video_id":"vid-123"}}`), nil
	})

	if _, err := c.Generate(context.Background(), GenerateRequest{InputText: "hello"}); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	var payload struct {
		VideoInputs []struct {
			Character struct {
				AvatarStyle string `json:"avatar_style"`
			} `json:"character"`
			Background struct {
				Value string `json:"value"`
			} `json:"background"`
		} `json:"video_inputs"`
		Dimension struct {
			Width  int `json:"width"`
			Height int `json:"height"`
		} `json:"dimension"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode request: %v", err)
	}
	if payload.Dimension.Width != 1280 || payload.Dimension.Height != 720 {
		t.Errorf("dimension = %dx%d, want 1280x720", payload.Dimension.Width, payload.Dimension.Height)
	}
	if got := payload.VideoInputs[0].Character.AvatarStyle; got != "normal" {
		t.Errorf("avatar_style = %q, want %q", got, "normal")
	}
	if got := payload.VideoInputs[0].Background.Value; got != "#FFFFFF" {
		t.Errorf("background = %q, want %q", got, "#FFFFFF")
	}
}

func TestGenerateKeepsCallerParameters(t *testing.T) {
	var body []byte
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		body, _ = io.ReadAll(r.Body)
		return jsonResponse(200, `{"data":{"video_id":"vid-123"}}`), nil
	})

	_, err := c.Generate(context.Background(), GenerateRequest{
		InputText:       "hello",
		AvatarStyle:     "circle",
		BackgroundColor: "#000000",
		Width:           640,
		Height:          360,
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	var payload struct {
		VideoInputs []struct {
			Character struct {
				AvatarStyle string `json:"avatar_style"`
			} `json:"character"`
			Background struct {
				Value string `json:"value"`
			} `json:"background"`
		} `json:"video_inputs"`
		Dimension struct {
			Width  int `json:"width"`
			Height int `json:"height"`
		} `json:"dimension"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode request: %v", err)
	}
	if payload.Dimension.Width != 640 || payload.Dimension.Height != 360 {
		t.Errorf("dimension = %dx%d, want 640x360", payload.Dimension.Width, payload.Dimension.Height)
	}
	if got := payload.VideoInputs[0].Character.AvatarStyle; got != "circle" {
		t.Errorf("avatar_style = %q", got)
	}
	if got := payload.VideoInputs[0].Background.Value; got != "#000000" {
		t.Errorf("background = %q", got)
	}
}

func TestGenerateRequiresText(t *testing.T) {
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		t.Fatal("no request should be sent")
		return nil, nil
	})
	if _, err := c.Generate(context.Background(), GenerateRequest{}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestStatusSequenceProcessingToCompleted(t *testing.T) {
	responses := []string{
		`{"data":{"status":"processing"}}`,
		`{"data":{"status":"completed","video_url":"https://cdn.example.com/vid-123.mp4"}}`,
	}
	call := 0
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		resp := jsonResponse(200, responses[call])
		call++
		return resp, nil
	})

	first, err := c.Status(context.Background(), "vid-123")
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if first.Status != domain.VideoProcessing {
		t.Errorf("first status = %q, want processing", first.Status)
	}
	if first.Status.Terminal() {
		t.Error("processing must not be terminal")
	}

	second, err := c.Status(context.Background(), "vid-123")
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if second.Status != domain.VideoCompleted {
		t.Errorf("second status = %q, want completed", second.Status)
	}
	if second.ResultURL == "" {
		t.Error("completed jobs must carry a non-empty video URL")
	}
	if !second.Status.Terminal() {
		t.Error("completed must be terminal")
	}
}

func TestStatusMapsProviderStates(t *testing.T) {
	cases := []struct {
		body string
		want domain.VideoStatus
	}{
		{`{"data":{"status":"pending"}}`, domain.VideoQueued},
		{`{"data":{"status":"waiting"}}`, domain.VideoQueued},
		{`{"data":{"status":"rendering"}}`, domain.VideoProcessing},
		{`{"data":{"status":"failed","error":{"message":"render error"}}}`, domain.VideoFailed},
	}
	for _, tc := range cases {
		c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
			return jsonResponse(200, tc.body), nil
		})
		job, err := c.Status(context.Background(), "vid-1")
		if err != nil {
			t.Fatalf("Status(%s) returned error: %v", tc.body, err)
		}
		if job.Status != tc.want {
			t.Errorf("Status(%s) = %q, want %q", tc.body, job.Status, tc.want)
		}
	}
}

func TestStatusFailedCarriesProviderMessage(t *testing.T) {
	c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
		return jsonResponse(200, `{"data":{"status":"failed","error":{"message":"avatar not found"}}}`), nil
	})
	job, err := c.Status(context.Background(), "vid-1")
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if job.Message != "avatar not found" {
		t.Errorf("message = %q", job.Message)
	}
}

func TestInvokeErrorClassification(t *testing.T) {
	cases := []struct {
		code int
		kind domain.GenerationKind
	}{
		{429, domain.GenerationRateLimited},
		{504, domain.GenerationTimeout},
		{403, domain.GenerationUpstreamRefused},
		{500, domain.GenerationUpstreamMalformed},
	}
	for _, tc := range cases {
		c := newTestClient(t, func(r *http.Request) (*http.Response, error) {
			return jsonResponse(tc.code, `{}`), nil
		})
		_, err := c.Status(context.Background(), "vid-1")
		gen, ok := domain.AsGeneration(err)
		if !ok {
			t.Fatalf("status %d: expected GenerationError, got %v", tc.code, err)
		}
		if gen.Kind != tc.kind {
			t.Errorf("status %d: kind = %q, want %q", tc.code, gen.Kind, tc.kind)
		}
	}
}
