package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"emoticare/internal/domain"
	"emoticare/internal/prompt"
)

// Options controls how the Gemini client is configured.
type Options struct {
	APIKey      string
	BaseURL     string
	Model       string
	VisionModel string
	HTTPClient  *http.Client
	Logger      *zerolog.Logger
}

// Client invokes the Gemini generateContent endpoint over raw HTTP and
// returns the model's text verbatim. It performs no retries; the HTTP client
// is injectable so callers can layer their own policy on top.
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	visionModel string
	httpClient  *http.Client
	logger      zerolog.Logger
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiGenerationConfig struct {
	Temperature    float64 `json:"temperature"`
	CandidateCount int     `json:"candidateCount,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason,omitempty"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason,omitempty"`
	} `json:"promptFeedback,omitempty"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Status  string `json:"status,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error"`
}

// NewClient constructs a Gemini client. The API key is required; everything
// else has defaults.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("gemini api key is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "gemma-3-27b-it"
	}
	visionModel := strings.TrimSpace(opts.VisionModel)
	if visionModel == "" {
		visionModel = "gemini-1.5-flash"
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Client{
		apiKey:      strings.TrimSpace(opts.APIKey),
		baseURL:     baseURL,
		model:       model,
		visionModel: visionModel,
		httpClient:  client,
		logger:      logger,
	}, nil
}

// Model returns the configured text model identifier.
func (c *Client) Model() string {
	return c.model
}

// GenerateText sends the prompt to Gemini and returns the raw model text.
// Prompts carrying an image are routed to the vision model with the image as
// an inline part. Failures come back as *domain.GenerationError.
func (c *Client) GenerateText(ctx context.Context, p *prompt.Prompt) (string, error) {
	if p == nil || strings.TrimSpace(p.Text) == "" {
		return "", domain.NewValidationError("prompt", "is empty")
	}

	model := c.model
	parts := []geminiPart{{Text: p.Text}}
	if len(p.Image) > 0 {
		model = c.visionModel
		mime := p.ImageMIME
		if mime == "" {
			mime = http.DetectContentType(p.Image)
		}
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{
			MimeType: mime,
			Data:     base64.StdEncoding.EncodeToString(p.Image),
		}})
	}

	payload := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: parts}},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:    0,
			CandidateCount: 1,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", domain.NewGenerationError(domain.GenerationUpstreamMalformed, fmt.Errorf("marshal request: %w", err))
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", domain.NewGenerationError(domain.GenerationUpstreamMalformed, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", domain.NewGenerationError(classifyTransport(err), fmt.Errorf("invoke gemini: %w", err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", c.statusError(resp)
	}

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", domain.NewGenerationError(domain.GenerationUpstreamMalformed, fmt.Errorf("decode gemini response: %w", err))
	}

	if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
		return "", domain.NewGenerationError(domain.GenerationUpstreamRefused, fmt.Errorf("prompt blocked: %s", out.PromptFeedback.BlockReason))
	}

	text := extractText(out)
	if text == "" {
		for _, cand := range out.Candidates {
			if strings.EqualFold(cand.FinishReason, "SAFETY") {
				return "", domain.NewGenerationError(domain.GenerationUpstreamRefused, errors.New("candidate blocked for safety"))
			}
		}
		return "", domain.NewGenerationError(domain.GenerationUpstreamMalformed, errors.New("no text candidates returned"))
	}

	c.logger.Debug().
		Str("model", model).
		Int("chars", len(text)).
		Msg("gemini: generation complete")

	return text, nil
}

func (c *Client) statusError(resp *http.Response) error {
	var apiErr geminiErrorResponse
	msg := ""
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil {
		msg = apiErr.Error.Message
	} else {
		data, _ := io.ReadAll(resp.Body)
		msg = strings.TrimSpace(string(data))
	}
	err := fmt.Errorf("gemini status %d: %s", resp.StatusCode, msg)
	return domain.NewGenerationError(classifyStatus(resp.StatusCode, apiErr.Error.Status), err)
}

func classifyStatus(code int, status string) domain.GenerationKind {
	switch {
	case code == http.StatusTooManyRequests || strings.EqualFold(status, "RESOURCE_EXHAUSTED"):
		return domain.GenerationRateLimited
	case code == http.StatusRequestTimeout || code == http.StatusGatewayTimeout:
		return domain.GenerationTimeout
	case code == http.StatusForbidden || code == http.StatusUnavailableForLegalReasons:
		return domain.GenerationUpstreamRefused
	default:
		return domain.GenerationUpstreamMalformed
	}
}

func classifyTransport(err error) domain.GenerationKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.GenerationTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.GenerationTimeout
	}
	return domain.GenerationUpstreamMalformed
}

func extractText(resp geminiResponse) string {
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if strings.TrimSpace(part.Text) != "" {
				return part.Text
			}
		}
	}
	return ""
}
