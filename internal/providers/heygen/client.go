package heygen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"emoticare/internal/domain"
)

// Options controls how the HeyGen client is configured.
type Options struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zerolog.Logger
}

// Client talks to the HeyGen avatar-video API. Generation is asynchronous:
// Generate returns a job identifier immediately and Status relays the
// provider-reported state when polled. There is no webhook listener; callers
// poll and impose their own timeout.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// GenerateRequest selects the avatar, voice and script for a video.
type GenerateRequest struct {
	InputText       string `json:"text"`
	AvatarID        string `json:"avatar_id"`
	AvatarStyle     string `json:"avatar_style"`
	VoiceID         string `json:"voice_id"`
	BackgroundColor string `json:"background_color"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
}

type generatePayload struct {
	VideoInputs []videoInput `json:"video_inputs"`
	Dimension   dimension    `json:"dimension"`
}

type videoInput struct {
	Character  character  `json:"character"`
	Voice      voice      `json:"voice"`
	Background background `json:"background"`
}

type character struct {
	Type        string `json:"type"`
	AvatarID    string `json:"avatar_id"`
	AvatarStyle string `json:"avatar_style"`
}

type voice struct {
	Type      string `json:"type"`
	InputText string `json:"input_text"`
	VoiceID   string `json:"voice_id"`
}

type background struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type dimension struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type generateResponse struct {
	Data struct {
		VideoID string `json:"video_id"`
	} `json:"data"`
	Error *struct {
		Code    string `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error,omitempty"`
}

type statusResponse struct {
	Data struct {
		Status   string `json:"status"`
		VideoURL string `json:"video_url,omitempty"`
		Error    *struct {
			Message string `json:"message,omitempty"`
		} `json:"error,omitempty"`
	} `json:"data"`
}

// NewClient constructs a HeyGen client. The API key is required.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("heygen api key is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.heygen.com"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		httpClient: client,
		logger:     logger,
	}, nil
}

// Default rendering parameters applied when the caller leaves them unset.
const (
	defaultAvatarStyle     = "normal"
	defaultBackgroundColor = "#FFFFFF"
	defaultWidth           = 1280
	defaultHeight          = 720
)

// Generate submits a video job and returns it in the queued state. The
// provider renders out-of-band; poll Status with the returned ID.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*domain.VideoJob, error) {
	if strings.TrimSpace(req.InputText) == "" {
		return nil, domain.NewValidationError("text", "is required")
	}
	if req.AvatarStyle == "" {
		req.AvatarStyle = defaultAvatarStyle
	}
	if req.BackgroundColor == "" {
		req.BackgroundColor = defaultBackgroundColor
	}
	if req.Width <= 0 {
		req.Width = defaultWidth
	}
	if req.Height <= 0 {
		req.Height = defaultHeight
	}
	payload := generatePayload{
		VideoInputs: []videoInput{{
			Character:  character{Type: "avatar", AvatarID: req.AvatarID, AvatarStyle: req.AvatarStyle},
			Voice:      voice{Type: "text", InputText: req.InputText, VoiceID: req.VoiceID},
			Background: background{Type: "color", Value: req.BackgroundColor},
		}},
		Dimension: dimension{Width: req.Width, Height: req.Height},
	}

	var out generateResponse
	if err := c.invoke(ctx, http.MethodPost, c.baseURL+"/v2/video/generate", payload, &out); err != nil {
		return nil, err
	}
	if out.Data.VideoID == "" {
		msg := "missing video_id in generate response"
		if out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		return nil, domain.NewGenerationError(domain.GenerationUpstreamMalformed, errors.New(msg))
	}

	c.logger.Info().Str("video_id", out.Data.VideoID).Msg("heygen: video generation started")

	return &domain.VideoJob{
		ID:               out.Data.VideoID,
		Status:           domain.VideoQueued,
		Message:          "video generation started",
		EstimatedSeconds: 60,
	}, nil
}

// Status polls the provider for the current job state. It relays the
// provider-reported status without any local transition logic.
func (c *Client) Status(ctx context.Context, videoID string) (*domain.VideoJob, error) {
	if strings.TrimSpace(videoID) == "" {
		return nil, domain.NewValidationError("video_id", "is required")
	}
	endpoint := fmt.Sprintf("%s/v1/video_status.get?video_id=%s", c.baseURL, url.QueryEscape(videoID))

	var out statusResponse
	if err := c.invoke(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}

	job := &domain.VideoJob{ID: videoID}
	switch strings.ToLower(out.Data.Status) {
	case "completed":
		job.Status = domain.VideoCompleted
		job.Message = "video generation completed"
		job.ResultURL = out.Data.VideoURL
	case "failed":
		job.Status = domain.VideoFailed
		job.Message = "video generation failed"
		if out.Data.Error != nil && out.Data.Error.Message != "" {
			job.Message = out.Data.Error.Message
		}
	case "pending", "waiting", "queued":
		job.Status = domain.VideoQueued
		job.Message = "video is queued"
		job.EstimatedSeconds = 60
	default:
		job.Status = domain.VideoProcessing
		job.Message = "video is still being generated"
		job.EstimatedSeconds = 30
	}
	return job, nil
}

func (c *Client) invoke(ctx context.Context, method, endpoint string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return domain.NewGenerationError(domain.GenerationUpstreamMalformed, fmt.Errorf("marshal request: %w", err))
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return domain.NewGenerationError(domain.GenerationUpstreamMalformed, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.NewGenerationError(domain.GenerationTimeout, fmt.Errorf("invoke heygen: %w", err))
		}
		return domain.NewGenerationError(domain.GenerationUpstreamMalformed, fmt.Errorf("invoke heygen: %w", err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusMultipleChoices {
		data, _ := io.ReadAll(resp.Body)
		kind := domain.GenerationUpstreamMalformed
		switch resp.StatusCode {
		case http.StatusTooManyRequests:
			kind = domain.GenerationRateLimited
		case http.StatusRequestTimeout, http.StatusGatewayTimeout:
			kind = domain.GenerationTimeout
		case http.StatusForbidden:
			kind = domain.GenerationUpstreamRefused
		}
		return domain.NewGenerationError(kind, fmt.Errorf("heygen status %d: %s", resp.StatusCode, strings.TrimSpace(string(data))))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewGenerationError(domain.GenerationUpstreamMalformed, fmt.Errorf("decode heygen response: %w", err))
	}
	return nil
}
