package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"visionboard/internal/imageenc"
	"visionboard/internal/vision"
)

var testImage = imageenc.Encoded{Base64: "dGVzdA==", MediaType: "image/jpeg", Width: 4, Height: 4}

const resultJSON = `{
  "visualDNA": {"colorPalette": ["#FFF"], "materials": ["wool"], "lighting": "dim", "spatialFeeling": "cozy", "emotionalCore": ["calm"], "archetype": "The Hearth Keeper"},
  "lifestyle": {"pace": "slow", "values": ["comfort"], "dailyRituals": ["reading"]},
  "sensory": {"smell": "woodsmoke", "sound": "fire", "touch": "wool"},
  "sopMapping": [{"module": "DO", "subSystem": "Environment", "visualCue": "hearth", "actions": ["Light a candle at dusk"]}]
}`

func textReply(text string) map[string]any {
	return map[string]any{
		"content": []any{map[string]any{"type": "text", "text": text}},
	}
}

func TestAnalyzeSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "sk-test" {
			t.Fatalf("missing api key header")
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Fatalf("missing version header")
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if payload["model"] != "test-model" {
			t.Fatalf("unexpected model %v", payload["model"])
		}
		if err := json.NewEncoder(w).Encode(textReply("```json\n" + resultJSON + "\n```")); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "sk-test", BaseURL: server.URL, Models: []string{"test-model"}})
	result, err := client.Analyze(context.Background(), testImage)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if result.VisualDNA.Archetype != "The Hearth Keeper" {
		t.Fatalf("unexpected archetype %q", result.VisualDNA.Archetype)
	}
}

func TestAnalyzeModelFallthrough(t *testing.T) {
	var models []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Model string `json:"model"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		models = append(models, payload.Model)
		if payload.Model == "retired-model" {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"type":  "error",
				"error": map[string]any{"type": "not_found_error", "message": "model: retired-model"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(textReply(resultJSON))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "sk-test", BaseURL: server.URL, Models: []string{"retired-model", "live-model"}})
	result, err := client.Analyze(context.Background(), testImage)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if result.VisualDNA.Archetype == "" {
		t.Fatal("expected parsed result after fallthrough")
	}
	if len(models) != 2 || models[0] != "retired-model" || models[1] != "live-model" {
		t.Fatalf("unexpected model order %v", models)
	}
}

func TestAnalyzeAuthErrorTerminal(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": "authentication_error", "message": "invalid x-api-key"},
		})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "sk-bad", BaseURL: server.URL, Models: []string{"a", "b", "c"}})
	_, err := client.Analyze(context.Background(), testImage)
	if !errors.Is(err, vision.ErrProviderAuth) {
		t.Fatalf("expected ErrProviderAuth, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("auth error must stop the cascade, made %d calls", calls)
	}
}

func TestAnalyzeBillingError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": "invalid_request_error", "message": "Your credit balance is too low"},
		})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "sk-test", BaseURL: server.URL, Models: []string{"a"}})
	_, err := client.Analyze(context.Background(), testImage)
	if !errors.Is(err, vision.ErrProviderBilling) {
		t.Fatalf("expected ErrProviderBilling, got %v", err)
	}
}

func TestAnalyzeUnparseableReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(textReply("I cannot describe this image."))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "sk-test", BaseURL: server.URL, Models: []string{"a"}})
	_, err := client.Analyze(context.Background(), testImage)
	if !errors.Is(err, vision.ErrResponseParse) {
		t.Fatalf("expected ErrResponseParse, got %v", err)
	}
}

func TestAnalyzeWithoutCredential(t *testing.T) {
	client := NewClient(Config{APIKey: "", Models: []string{"a"}})
	_, err := client.Analyze(context.Background(), testImage)
	if !errors.Is(err, vision.ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}
}

func TestHasCredential(t *testing.T) {
	if HasCredential("") || HasCredential("AIza-something") {
		t.Fatal("unexpected credential acceptance")
	}
	if !HasCredential("sk-ant-abc123") {
		t.Fatal("expected sk- prefix to pass the format gate")
	}
}
