package anthropic

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

	"visionboard/internal/imageenc"
	"visionboard/internal/vision"
)

const (
	defaultBaseURL     = "https://api.anthropic.com"
	apiVersion         = "2023-06-01"
	defaultHTTPTimeout = 60 * time.Second
	maxTokens          = 2048

	// KeyPrefix is the format gate for stored credentials; keys that do not
	// carry it are treated as absent rather than sent to the API.
	KeyPrefix = "sk-"
)

// DefaultModels is the ordered list of vision-capable variants tried when the
// configuration does not name its own.
var DefaultModels = []string{
	"claude-sonnet-4-5",
	"claude-3-7-sonnet-latest",
	"claude-3-5-haiku-latest",
}

// Config captures the runtime settings required to talk to the Anthropic API.
type Config struct {
	APIKey         string
	BaseURL        string
	Models         []string
	TimeoutSeconds int
}

// Client wraps the Anthropic messages API for vision analysis.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs an Anthropic client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	models := make([]string, 0, len(cfg.Models))
	for _, model := range cfg.Models {
		if trimmed := strings.TrimSpace(model); trimmed != "" {
			models = append(models, trimmed)
		}
	}
	if len(models) == 0 {
		models = append(models, DefaultModels...)
	}
	client := &Client{
		cfg: Config{
			APIKey:  strings.TrimSpace(cfg.APIKey),
			BaseURL: strings.TrimSpace(cfg.BaseURL),
			Models:  models,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = defaultBaseURL
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

// HasCredential reports whether a key with the expected format is configured.
func HasCredential(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && strings.HasPrefix(key, KeyPrefix)
}

// Analyze sends the encoded image through the configured model variants in
// order and returns the first parseable structured result. Credential-class
// failures stop the cascade immediately; a model that is not served or that
// replies unparseably hands over to the next variant.
func (c *Client) Analyze(ctx context.Context, img imageenc.Encoded) (vision.Result, error) {
	if !HasCredential(c.cfg.APIKey) {
		return vision.Result{}, fmt.Errorf("anthropic analyze: %w", vision.ErrNoCredential)
	}
	var lastErr error
	for _, model := range c.cfg.Models {
		result, err := c.analyzeWithModel(ctx, model, img)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if vision.Terminal(err) {
			return vision.Result{}, err
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("anthropic analyze: no models configured: %w", vision.ErrProviderUnavailable)
	}
	return vision.Result{}, lastErr
}

func (c *Client) analyzeWithModel(ctx context.Context, model string, img imageenc.Encoded) (vision.Result, error) {
	text, err := c.sendMessage(ctx, model, img)
	if err != nil {
		return vision.Result{}, err
	}
	result, err := vision.ParseResult(text)
	if err != nil {
		return vision.Result{}, fmt.Errorf("anthropic analyze: model %s: %w", model, err)
	}
	return result, nil
}

type messagesRequest struct {
	Model     string         `json:"model"`
	MaxTokens int            `json:"max_tokens"`
	System    string         `json:"system"`
	Messages  []message      `json:"messages"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (c *Client) sendMessage(ctx context.Context, model string, img imageenc.Encoded) (string, error) {
	payload := messagesRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    vision.SystemPrompt,
		Messages: []message{{
			Role: "user",
			Content: []contentBlock{
				{Type: "image", Source: &imageSource{Type: "base64", MediaType: img.MediaType, Data: img.Base64}},
				{Type: "text", Text: vision.InstructionPrompt},
			},
		}},
	}
	endpoint, err := url.JoinPath(c.cfg.BaseURL, "/v1/messages")
	if err != nil {
		return "", fmt.Errorf("anthropic request: build url: %w", err)
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("anthropic request: encode body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("anthropic request: new request: %w", err)
	}
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("anthropic request: %w", err)
		}
		return "", fmt.Errorf("anthropic request: http error: %v: %w", err, vision.ErrNetwork)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("anthropic request: read body: %v: %w", err, vision.ErrNetwork)
	}

	var decoded messagesResponse
	if unmarshalErr := json.Unmarshal(body, &decoded); unmarshalErr == nil && decoded.Error != nil {
		return "", classifyAPIError(resp.StatusCode, decoded.Error)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", classifyStatus(resp.StatusCode, body)
	}
	for _, block := range decoded.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("anthropic request: empty content: %w", vision.ErrProviderUnavailable)
}

func classifyAPIError(status int, apiErr *apiError) error {
	message := strings.TrimSpace(apiErr.Message)
	lower := strings.ToLower(apiErr.Type + " " + message)
	switch {
	case apiErr.Type == "authentication_error" || apiErr.Type == "permission_error":
		return fmt.Errorf("anthropic request: %s: %w", message, vision.ErrProviderAuth)
	case apiErr.Type == "rate_limit_error",
		strings.Contains(lower, "billing"),
		strings.Contains(lower, "credit"),
		strings.Contains(lower, "quota"):
		return fmt.Errorf("anthropic request: %s: %w", message, vision.ErrProviderBilling)
	case apiErr.Type == "not_found_error":
		return fmt.Errorf("anthropic request: %s: %w", message, vision.ErrProviderUnavailable)
	default:
		return fmt.Errorf("anthropic request: api error %s (http %d): %s: %w", apiErr.Type, status, message, vision.ErrProviderUnavailable)
	}
}

func classifyStatus(status int, body []byte) error {
	snippet := strings.TrimSpace(string(body))
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("anthropic request: http %d: %s: %w", status, snippet, vision.ErrProviderAuth)
	case status == http.StatusPaymentRequired || status == http.StatusTooManyRequests:
		return fmt.Errorf("anthropic request: http %d: %s: %w", status, snippet, vision.ErrProviderBilling)
	case status == http.StatusNotFound:
		return fmt.Errorf("anthropic request: http %d: %s: %w", status, snippet, vision.ErrProviderUnavailable)
	default:
		return fmt.Errorf("anthropic request: http %d: %s: %w", status, snippet, vision.ErrNetwork)
	}
}
