package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"visionboard/internal/config"
	"visionboard/internal/imageenc"
	"visionboard/internal/logging"
	"visionboard/internal/sop"
	"visionboard/internal/vision"
)

// demoBasename is the sentinel filename (sans extension) that short-circuits
// straight to the canonical demo result.
const demoBasename = "demo"

// Provider analyzes one encoded image into the canonical structured result.
// Both vision backends satisfy this; tests inject fakes.
type Provider interface {
	Analyze(ctx context.Context, img imageenc.Encoded) (vision.Result, error)
}

// ProgressFunc receives batch progress after each image completes. done grows
// monotonically to total.
type ProgressFunc func(done, total int)

// Analyzer resolves images into vision records, degrading silently to the
// fallback library when no provider can serve them. It never fails outwardly
// for provider-class errors; only unreadable input surfaces as a per-image
// error.
type Analyzer struct {
	cfg       *config.Config
	logger    *slog.Logger
	anthropic Provider
	gemini    Provider
	encode    func(path string) (imageenc.Encoded, error)
	now       func() time.Time
}

// Option customizes the analyzer.
type Option func(*Analyzer)

// WithAnthropic overrides the priority provider client.
func WithAnthropic(p Provider) Option {
	return func(a *Analyzer) { a.anthropic = p }
}

// WithGemini overrides the secondary provider client.
func WithGemini(p Provider) Option {
	return func(a *Analyzer) { a.gemini = p }
}

// WithEncoder overrides the image encoder (useful for tests).
func WithEncoder(encode func(path string) (imageenc.Encoded, error)) Option {
	return func(a *Analyzer) {
		if encode != nil {
			a.encode = encode
		}
	}
}

// WithClock overrides the time source (useful for tests).
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// New constructs an analyzer from configuration. Provider clients default to
// nil and are attached by the caller (or via options); a nil provider simply
// never gets attempted.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Analyzer {
	if logger == nil {
		logger = logging.NewNop()
	}
	analyzer := &Analyzer{
		cfg:    cfg,
		logger: logging.WithComponent(logger, "analyzer"),
		encode: imageenc.EncodeFile,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(analyzer)
	}
	return analyzer
}

// AnalyzeOne resolves a single image into a record. Every provider failure is
// classified, logged, and converted into a fallback substitution; the returned
// record is always schema-valid. The only error path is unreadable or corrupt
// input, which is fatal for this image alone.
func (a *Analyzer) AnalyzeOne(ctx context.Context, imagePath string, batchIndex int) (*vision.Record, error) {
	if a == nil || a.cfg == nil {
		return nil, errors.New("analyze: analyzer not configured")
	}

	if a.cfg.Analysis.DemoEnabled && isDemoAsset(imagePath) {
		a.logger.Info("demo asset detected, using canonical demo result", slog.String("image", imagePath))
		return a.buildRecord(imagePath, batchIndex, DemoResult()), nil
	}

	result, err := a.resolve(ctx, imagePath, batchIndex)
	if err != nil {
		return nil, err
	}
	return a.buildRecord(imagePath, batchIndex, result), nil
}

func (a *Analyzer) resolve(ctx context.Context, imagePath string, batchIndex int) (vision.Result, error) {
	switch {
	case a.cfg.HasAnthropicCredential() && a.anthropic != nil:
		encoded, err := a.encode(imagePath)
		if err != nil {
			return vision.Result{}, fmt.Errorf("analyze %s: %w", imagePath, err)
		}
		result, err := a.anthropic.Analyze(ctx, encoded)
		if err != nil {
			// Once degraded, stay degraded: a failed priority-provider call
			// never cascades to the secondary provider.
			a.logSubstitution("anthropic", imagePath, err)
			return FallbackResult(batchIndex), nil
		}
		return result, nil

	case a.cfg.HasGeminiCredential() && a.gemini != nil:
		encoded, err := a.encode(imagePath)
		if err != nil {
			return vision.Result{}, fmt.Errorf("analyze %s: %w", imagePath, err)
		}
		result, err := a.gemini.Analyze(ctx, encoded)
		if err != nil {
			a.logSubstitution("gemini", imagePath, err)
			return FallbackResult(batchIndex), nil
		}
		return result, nil

	default:
		a.logger.Debug("no usable credential, substituting fallback",
			slog.String("image", imagePath),
			slog.Int("index", batchIndex))
		return FallbackResult(batchIndex), nil
	}
}

func (a *Analyzer) logSubstitution(provider, imagePath string, err error) {
	a.logger.Warn("provider failed, substituting fallback",
		slog.String("provider", provider),
		slog.String("image", imagePath),
		slog.String("category", Categorize(err)),
		slog.Any("error", err))
}

func (a *Analyzer) buildRecord(imagePath string, batchIndex int, result vision.Result) *vision.Record {
	now := a.now()
	return &vision.Record{
		ID:         vision.NewRecordID(now, batchIndex),
		ImagePath:  imagePath,
		UploadedAt: now.UnixMilli(),
		Result:     result,
		Path:       sop.DeriveManifestationPath(result),
	}
}

// AnalyzeBatch processes images strictly sequentially: each image completes
// (record or reported failure) before the next begins. Progress fires after
// every image, including failed ones, so the fraction always reaches the
// batch total. Per-image failures are joined into the returned error; the
// records slice holds every image that produced a record.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, imagePaths []string, progress ProgressFunc) ([]*vision.Record, error) {
	if a == nil {
		return nil, errors.New("analyze batch: analyzer not configured")
	}
	batchID := uuid.NewString()
	logger := a.logger.With(slog.String("batch", batchID))
	logger.Info("starting batch", slog.Int("images", len(imagePaths)))

	records := make([]*vision.Record, 0, len(imagePaths))
	var failures []error
	for i, imagePath := range imagePaths {
		record, err := a.AnalyzeOne(ctx, imagePath, i)
		if err != nil {
			logger.Error("image failed", slog.String("image", imagePath), slog.Any("error", err))
			failures = append(failures, err)
		} else {
			records = append(records, record)
		}
		if progress != nil {
			progress(i+1, len(imagePaths))
		}
	}

	logger.Info("batch complete",
		slog.Int("records", len(records)),
		slog.Int("failures", len(failures)))
	return records, errors.Join(failures...)
}

func isDemoAsset(imagePath string) bool {
	base := filepath.Base(imagePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.EqualFold(strings.TrimSpace(base), demoBasename)
}
