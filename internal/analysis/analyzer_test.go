package analysis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"visionboard/internal/config"
	"visionboard/internal/imageenc"
	"visionboard/internal/vision"
)

type fakeProvider struct {
	calls  int
	result vision.Result
	err    error
}

func (f *fakeProvider) Analyze(ctx context.Context, img imageenc.Encoded) (vision.Result, error) {
	f.calls++
	return f.result, f.err
}

func stubEncoder(t *testing.T) func(string) (imageenc.Encoded, error) {
	t.Helper()
	return func(path string) (imageenc.Encoded, error) {
		return imageenc.Encoded{Data: []byte{1}, Base64: "AQ==", MediaType: "image/jpeg", Width: 1, Height: 1}, nil
	}
}

func testConfig() *config.Config {
	cfg := config.Default()
	return &cfg
}

func TestAnalyzeOneNoCredentialSubstitutesWithoutNetwork(t *testing.T) {
	anthropic := &fakeProvider{}
	gemini := &fakeProvider{}
	cfg := testConfig()

	analyzer := New(cfg, nil,
		WithAnthropic(anthropic),
		WithGemini(gemini),
		WithEncoder(stubEncoder(t)))

	record, err := analyzer.AnalyzeOne(context.Background(), "/boards/coast.jpg", 0)
	if err != nil {
		t.Fatalf("AnalyzeOne: %v", err)
	}
	if anthropic.calls != 0 || gemini.calls != 0 {
		t.Fatalf("expected zero provider calls, got anthropic=%d gemini=%d", anthropic.calls, gemini.calls)
	}
	if err := record.Result.Validate(); err != nil {
		t.Fatalf("substituted result invalid: %v", err)
	}
	if record.Archetype() != fallbackLibrary[0].VisualDNA.Archetype {
		t.Fatalf("expected first library entry, got %q", record.Archetype())
	}
	if len(record.Path) != 4 {
		t.Fatalf("expected 4-week path, got %d", len(record.Path))
	}
}

func TestAnalyzeOneBillingFailureSkipsSecondProvider(t *testing.T) {
	anthropic := &fakeProvider{err: fmt.Errorf("credit exhausted: %w", vision.ErrProviderBilling)}
	gemini := &fakeProvider{}
	cfg := testConfig()
	cfg.Providers.Anthropic.APIKey = "sk-ant-test"
	cfg.Providers.Gemini.APIKey = "AItest"

	analyzer := New(cfg, nil,
		WithAnthropic(anthropic),
		WithGemini(gemini),
		WithEncoder(stubEncoder(t)))

	record, err := analyzer.AnalyzeOne(context.Background(), "/boards/loft.png", 1)
	if err != nil {
		t.Fatalf("AnalyzeOne: %v", err)
	}
	if anthropic.calls != 1 {
		t.Fatalf("anthropic calls = %d, want 1", anthropic.calls)
	}
	if gemini.calls != 0 {
		t.Fatalf("gemini must not be attempted after anthropic failure, calls = %d", gemini.calls)
	}
	if record.Archetype() != fallbackLibrary[1].VisualDNA.Archetype {
		t.Fatalf("expected library entry 1, got %q", record.Archetype())
	}
}

func TestAnalyzeOneGeminiServesWhenNoAnthropicKey(t *testing.T) {
	want := DemoResult()
	want.VisualDNA.Archetype = "The Tide Reader"
	gemini := &fakeProvider{result: want}
	cfg := testConfig()
	cfg.Providers.Gemini.APIKey = "AItest"

	analyzer := New(cfg, nil,
		WithGemini(gemini),
		WithEncoder(stubEncoder(t)))

	record, err := analyzer.AnalyzeOne(context.Background(), "/boards/sea.jpg", 0)
	if err != nil {
		t.Fatalf("AnalyzeOne: %v", err)
	}
	if gemini.calls != 1 {
		t.Fatalf("gemini calls = %d, want 1", gemini.calls)
	}
	if record.Archetype() != "The Tide Reader" {
		t.Fatalf("archetype = %q", record.Archetype())
	}
}

func TestAnalyzeOneDemoAssetShortCircuits(t *testing.T) {
	anthropic := &fakeProvider{}
	cfg := testConfig()
	cfg.Providers.Anthropic.APIKey = "sk-ant-test"

	analyzer := New(cfg, nil,
		WithAnthropic(anthropic),
		WithEncoder(stubEncoder(t)))

	record, err := analyzer.AnalyzeOne(context.Background(), "/boards/demo.png", 0)
	if err != nil {
		t.Fatalf("AnalyzeOne: %v", err)
	}
	if anthropic.calls != 0 {
		t.Fatalf("demo asset must not hit the provider, calls = %d", anthropic.calls)
	}
	if record.Archetype() != DemoArchetype {
		t.Fatalf("archetype = %q, want %q", record.Archetype(), DemoArchetype)
	}
}

func TestAnalyzeOneDemoDisabledUsesProvider(t *testing.T) {
	want := DemoResult()
	want.VisualDNA.Archetype = "The Live Reading"
	anthropic := &fakeProvider{result: want}
	cfg := testConfig()
	cfg.Analysis.DemoEnabled = false
	cfg.Providers.Anthropic.APIKey = "sk-ant-test"

	analyzer := New(cfg, nil,
		WithAnthropic(anthropic),
		WithEncoder(stubEncoder(t)))

	record, err := analyzer.AnalyzeOne(context.Background(), "/boards/demo.png", 0)
	if err != nil {
		t.Fatalf("AnalyzeOne: %v", err)
	}
	if anthropic.calls != 1 {
		t.Fatalf("provider calls = %d, want 1", anthropic.calls)
	}
	if record.Archetype() != "The Live Reading" {
		t.Fatalf("archetype = %q", record.Archetype())
	}
}

func TestAnalyzeOneRecordShape(t *testing.T) {
	cfg := testConfig()
	at := time.UnixMilli(1_700_000_000_000)
	analyzer := New(cfg, nil,
		WithEncoder(stubEncoder(t)),
		WithClock(func() time.Time { return at }))

	record, err := analyzer.AnalyzeOne(context.Background(), "/boards/a.jpg", 3)
	if err != nil {
		t.Fatalf("AnalyzeOne: %v", err)
	}
	if record.ID != "1700000000000-3" {
		t.Fatalf("record ID = %q", record.ID)
	}
	if record.UploadedAt != at.UnixMilli() {
		t.Fatalf("uploadedAt = %d", record.UploadedAt)
	}
	if record.ImagePath != "/boards/a.jpg" {
		t.Fatalf("imagePath = %q", record.ImagePath)
	}
}

func TestAnalyzeBatchAllFailuresStillCompletes(t *testing.T) {
	anthropic := &fakeProvider{err: fmt.Errorf("socket closed: %w", vision.ErrNetwork)}
	cfg := testConfig()
	cfg.Providers.Anthropic.APIKey = "sk-ant-test"

	analyzer := New(cfg, nil,
		WithAnthropic(anthropic),
		WithEncoder(stubEncoder(t)))

	var progress []int
	images := []string{"/boards/a.jpg", "/boards/b.jpg", "/boards/c.jpg"}
	records, err := analyzer.AnalyzeBatch(context.Background(), images, func(done, total int) {
		if total != len(images) {
			t.Fatalf("total = %d", total)
		}
		progress = append(progress, done)
	})
	if err != nil {
		t.Fatalf("provider failures must not fail the batch: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}
	for i, record := range records {
		if err := record.Result.Validate(); err != nil {
			t.Fatalf("record %d invalid: %v", i, err)
		}
	}
	if len(progress) != 3 || progress[2] != 3 {
		t.Fatalf("progress = %v", progress)
	}
	for i := 1; i < len(progress); i++ {
		if progress[i] <= progress[i-1] {
			t.Fatalf("progress not monotonic: %v", progress)
		}
	}
}

func TestAnalyzeBatchVariesFallbacks(t *testing.T) {
	cfg := testConfig()
	analyzer := New(cfg, nil, WithEncoder(stubEncoder(t)))

	images := []string{"/boards/a.jpg", "/boards/b.jpg"}
	records, err := analyzer.AnalyzeBatch(context.Background(), images, nil)
	if err != nil {
		t.Fatalf("AnalyzeBatch: %v", err)
	}
	if records[0].Archetype() == records[1].Archetype() {
		t.Fatalf("adjacent substitutions should differ, both %q", records[0].Archetype())
	}
}

func TestAnalyzeBatchReportsUnreadableImage(t *testing.T) {
	cfg := testConfig()
	cfg.Providers.Anthropic.APIKey = "sk-ant-test"
	analyzer := New(cfg, nil,
		WithAnthropic(&fakeProvider{result: DemoResult()}),
		WithEncoder(func(path string) (imageenc.Encoded, error) {
			if path == "/boards/bad.jpg" {
				return imageenc.Encoded{}, errors.New("decode image: unexpected EOF")
			}
			return imageenc.Encoded{Data: []byte{1}, Base64: "AQ==", MediaType: "image/jpeg"}, nil
		}))

	records, err := analyzer.AnalyzeBatch(context.Background(),
		[]string{"/boards/ok.jpg", "/boards/bad.jpg", "/boards/ok2.jpg"}, nil)
	if err == nil {
		t.Fatal("expected joined error for unreadable image")
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
}

func TestFallbackResultCycles(t *testing.T) {
	n := len(fallbackLibrary)
	for i := 0; i < n; i++ {
		a := FallbackResult(i)
		b := FallbackResult(i + n)
		if a.VisualDNA.Archetype != b.VisualDNA.Archetype {
			t.Fatalf("cycle broken at %d: %q vs %q", i, a.VisualDNA.Archetype, b.VisualDNA.Archetype)
		}
		if err := a.Validate(); err != nil {
			t.Fatalf("library entry %d invalid: %v", i, err)
		}
	}
	if got := FallbackResult(-1); got.VisualDNA.Archetype == "" {
		t.Fatal("negative index must still resolve")
	}
}

func TestIsDemoAsset(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"/boards/demo.png", true},
		{"/boards/DEMO.JPG", true},
		{"demo.webp", true},
		{"/boards/demolition.png", false},
		{"/boards/my-demo.png", false},
	}
	for _, tc := range cases {
		if got := isDemoAsset(tc.path); got != tc.want {
			t.Fatalf("isDemoAsset(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestCategorize(t *testing.T) {
	wrapped := fmt.Errorf("provider: %w", vision.ErrProviderAuth)
	if got := Categorize(wrapped); got != "provider_auth" {
		t.Fatalf("Categorize = %q", got)
	}
	if got := Categorize(errors.New("plain")); got != "internal" {
		t.Fatalf("Categorize = %q", got)
	}
}
