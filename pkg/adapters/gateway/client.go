package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"gatelab/pkg/domain"
)

// Client calls the multi-provider gateway's responses endpoint. It performs
// one outbound call per Send and never retries; retry policy belongs to the
// caller. Safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	probeModel string
	httpClient *http.Client
	logger     *zap.Logger
}

// Config holds gateway client configuration
type Config struct {
	BaseURL string
	APIKey  string

	// ProbeModel is the model used by connectivity probes
	ProbeModel string

	Timeout time.Duration
	Logger  *zap.Logger
}

// NewClient creates a gateway client
func NewClient(cfg *Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gateway API key is required")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("gateway base URL is required")
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		probeModel: cfg.ProbeModel,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     cfg.Logger,
	}, nil
}

// wirePayload is the request body of the responses endpoint
type wirePayload struct {
	Model           string  `json:"model"`
	Input           string  `json:"input"`
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"max_output_tokens,omitempty"`
	TopP            float64 `json:"top_p,omitempty"`
}

// wireResponse covers the field variants the gateway emits across providers
type wireResponse struct {
	Output  string `json:"output"`
	Text    string `json:"text"`
	Content string `json:"content"`
	Usage   struct {
		PromptTokens     int `json:"prompt_tokens"`
		InputTokens      int `json:"input_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		OutputTokens     int `json:"output_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// wireError is the gateway's error envelope
type wireError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Send dispatches one request and returns the parsed response. Failures are
// reported as *domain.CallError classified per the error taxonomy.
func (c *Client) Send(ctx context.Context, req domain.Request) (*domain.Response, error) {
	url := c.baseURL + "/responses/"

	payload := wirePayload{
		Model:           modelName(req.Model),
		Input:           req.Prompt,
		Temperature:     req.Temperature,
		MaxOutputTokens: req.MaxTokens,
		TopP:            req.TopP,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &domain.CallError{Kind: domain.ErrUnknown, Message: "failed to encode payload", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &domain.CallError{Kind: domain.ErrUnknown, Message: "failed to build request", Cause: err}
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.Debug("sending gateway request",
		zap.String("request_id", req.ID),
		zap.String("model", req.Model),
		zap.Float64("temperature", req.Temperature),
		zap.Int("max_tokens", req.MaxTokens))

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, transportError(err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	latency := time.Since(start)
	if err != nil {
		return nil, transportError(err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, c.statusError(httpResp.StatusCode, respBody)
	}

	var wire wireResponse
	if err := json.Unmarshal(respBody, &wire); err != nil {
		return nil, &domain.CallError{
			Kind:    domain.ErrUnknown,
			Message: fmt.Sprintf("unparseable response body (HTTP %d)", httpResp.StatusCode),
			Cause:   err,
		}
	}

	resp := &domain.Response{
		Text:       firstNonEmpty(wire.Output, wire.Text, wire.Content),
		Usage:      normalizeUsage(wire),
		Latency:    latency,
		StatusCode: httpResp.StatusCode,
	}

	c.logger.Info("gateway request completed",
		zap.String("request_id", req.ID),
		zap.String("model", req.Model),
		zap.Duration("latency", latency),
		zap.Int("total_tokens", resp.Usage.TotalTokens))

	return resp, nil
}

// Probe issues a minimal request to verify credentials and reachability.
// A failure here is fatal to the run.
func (c *Client) Probe(ctx context.Context) error {
	_, err := c.Send(ctx, domain.Request{
		ID:          "probe",
		Model:       c.probeModel,
		Prompt:      "Say hello",
		Temperature: 0.7,
		MaxTokens:   10,
	})
	if err != nil {
		return fmt.Errorf("gateway probe failed: %w", err)
	}
	return nil
}

// statusError maps a non-200 status and error envelope onto the taxonomy
func (c *Client) statusError(status int, body []byte) *domain.CallError {
	var wire wireError
	msg := fmt.Sprintf("HTTP %d", status)
	errType := ""
	if json.Unmarshal(body, &wire) == nil && wire.Error.Message != "" {
		msg = fmt.Sprintf("HTTP %d: %s", status, wire.Error.Message)
		errType = wire.Error.Type
	}

	// only 4xx responses can indicate a bad model; a 5xx mentioning
	// "model" is still the gateway's failure
	kind := domain.ErrUnknown
	switch {
	case status == http.StatusNotFound:
		kind = domain.ErrInvalidModel
	case status >= 400 && status < 500:
		if strings.Contains(errType, "model") ||
			strings.Contains(strings.ToLower(wire.Error.Message), "model") {
			kind = domain.ErrInvalidModel
		} else {
			kind = domain.ErrMalformedRequest
		}
	}

	c.logger.Warn("gateway request failed",
		zap.Int("status", status),
		zap.String("kind", string(kind)),
		zap.String("error_type", errType))

	return &domain.CallError{Kind: kind, Message: msg}
}

// transportError classifies request-level failures (no HTTP status available)
func transportError(err error) *domain.CallError {
	kind := domain.ErrTransport
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = domain.ErrTimeout
	}
	return &domain.CallError{Kind: kind, Message: err.Error(), Cause: err}
}

// modelName strips the provider prefix; the gateway routes on the bare name
func modelName(model string) string {
	if i := strings.LastIndex(model, "/"); i >= 0 {
		return model[i+1:]
	}
	return model
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func normalizeUsage(wire wireResponse) domain.Usage {
	u := domain.Usage{
		PromptTokens:     wire.Usage.PromptTokens,
		CompletionTokens: wire.Usage.CompletionTokens,
		TotalTokens:      wire.Usage.TotalTokens,
	}
	if u.PromptTokens == 0 {
		u.PromptTokens = wire.Usage.InputTokens
	}
	if u.CompletionTokens == 0 {
		u.CompletionTokens = wire.Usage.OutputTokens
	}
	if u.TotalTokens == 0 {
		u.TotalTokens = u.PromptTokens + u.CompletionTokens
	}
	return u
}
