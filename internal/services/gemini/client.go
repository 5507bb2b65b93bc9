package gemini

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
	defaultBaseURL     = "https://generativelanguage.googleapis.com"
	defaultModel       = "gemini-2.0-flash"
	defaultHTTPTimeout = 60 * time.Second

	// KeyPrefix is the format gate for stored credentials.
	KeyPrefix = "AI"
)

// Config captures the runtime settings required to talk to the Gemini API.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	TimeoutSeconds int
}

// Client wraps the Gemini generateContent API for vision analysis. The
// credential travels in the request URL, matching the provider's wire format.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the Gemini client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a Gemini API client.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			APIKey:  strings.TrimSpace(cfg.APIKey),
			BaseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			Model:   strings.TrimSpace(cfg.Model),
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = defaultBaseURL
	}
	if client.cfg.Model == "" {
		client.cfg.Model = defaultModel
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

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Analyze sends the encoded image plus the instruction template and parses the
// reply into the canonical result.
func (c *Client) Analyze(ctx context.Context, img imageenc.Encoded) (vision.Result, error) {
	if !HasCredential(c.cfg.APIKey) {
		return vision.Result{}, fmt.Errorf("gemini analyze: %w", vision.ErrNoCredential)
	}
	text, err := c.generate(ctx, img)
	if err != nil {
		return vision.Result{}, err
	}
	result, err := vision.ParseResult(text)
	if err != nil {
		return vision.Result{}, fmt.Errorf("gemini analyze: %w", err)
	}
	return result, nil
}

func (c *Client) generate(ctx context.Context, img imageenc.Encoded) (string, error) {
	payload := generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: vision.SystemPrompt + "\n\n" + vision.InstructionPrompt},
				{InlineData: &inlineData{MimeType: img.MediaType, Data: img.Base64}},
			},
		}},
	}
	endpoint := fmt.Sprintf(
		"%s/v1beta/models/%s:generateContent?key=%s",
		c.cfg.BaseURL,
		url.PathEscape(c.cfg.Model),
		url.QueryEscape(c.cfg.APIKey),
	)
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("gemini request: encode body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("gemini request: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("gemini request: %w", err)
		}
		return "", fmt.Errorf("gemini request: http error: %v: %w", err, vision.ErrNetwork)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini request: read body: %v: %w", err, vision.ErrNetwork)
	}

	var decoded generateResponse
	if unmarshalErr := json.Unmarshal(body, &decoded); unmarshalErr == nil && decoded.Error != nil {
		return "", classifyAPIError(decoded.Error)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", classifyStatus(resp.StatusCode, body)
	}
	for _, candidate := range decoded.Candidates {
		for _, part := range candidate.Content.Parts {
			if strings.TrimSpace(part.Text) != "" {
				return part.Text, nil
			}
		}
	}
	return "", fmt.Errorf("gemini request: empty candidates: %w", vision.ErrProviderUnavailable)
}

func classifyAPIError(apiErr *apiError) error {
	message := strings.TrimSpace(apiErr.Message)
	switch {
	case apiErr.Code == http.StatusUnauthorized,
		apiErr.Code == http.StatusForbidden,
		apiErr.Status == "UNAUTHENTICATED",
		apiErr.Status == "PERMISSION_DENIED",
		strings.Contains(message, "API key"):
		return fmt.Errorf("gemini request: %s: %w", message, vision.ErrProviderAuth)
	case apiErr.Code == http.StatusTooManyRequests, apiErr.Status == "RESOURCE_EXHAUSTED":
		return fmt.Errorf("gemini request: %s: %w", message, vision.ErrProviderBilling)
	case apiErr.Code == http.StatusNotFound, apiErr.Status == "NOT_FOUND":
		return fmt.Errorf("gemini request: %s: %w", message, vision.ErrProviderUnavailable)
	default:
		return fmt.Errorf("gemini request: api error %s (code %d): %s: %w", apiErr.Status, apiErr.Code, message, vision.ErrProviderUnavailable)
	}
}

func classifyStatus(status int, body []byte) error {
	snippet := strings.TrimSpace(string(body))
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("gemini request: http %d: %s: %w", status, snippet, vision.ErrProviderAuth)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("gemini request: http %d: %s: %w", status, snippet, vision.ErrProviderBilling)
	case status == http.StatusNotFound:
		return fmt.Errorf("gemini request: http %d: %s: %w", status, snippet, vision.ErrProviderUnavailable)
	default:
		return fmt.Errorf("gemini request: http %d: %s: %w", status, snippet, vision.ErrNetwork)
	}
}
