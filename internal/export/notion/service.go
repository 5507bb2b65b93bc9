package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"visionboard/internal/config"
	"visionboard/internal/store"
	"visionboard/internal/vision"
)

const (
	userAgent      = "Visionboard-Go/0.1.0"
	defaultBaseURL = "https://api.notion.com"
	apiVersion     = "2022-06-28"
)

// Service defines the export surface exposed to commands. ExportRecord
// publishes one record as a page under the configured parent and returns the
// created page URL.
type Service interface {
	ExportRecord(ctx context.Context, record *vision.Record, completions []store.Completion) (string, error)
	TestConnection(ctx context.Context) error
}

// NewService builds an exporter backed by the Notion API when a token is
// configured. Without a token a noop implementation is returned so commands
// can call it unconditionally.
func NewService(cfg *config.Config) Service {
	token := strings.TrimSpace(cfg.Export.Token)
	if token == "" {
		return noopService{}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.Export.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := time.Duration(cfg.Export.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &notionService{
		token:        token,
		baseURL:      baseURL,
		parentPageID: strings.TrimSpace(cfg.Export.ParentPageID),
		client:       &http.Client{Timeout: timeout},
	}
}

type notionService struct {
	token        string
	baseURL      string
	parentPageID string
	client       *http.Client
}

type block map[string]any

type createPageRequest struct {
	Parent     map[string]string `json:"parent"`
	Properties map[string]any    `json:"properties"`
	Children   []block           `json:"children"`
}

type createPageResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func (n *notionService) ExportRecord(ctx context.Context, record *vision.Record, completions []store.Completion) (string, error) {
	if record == nil {
		return "", errors.New("record is nil")
	}
	if n.parentPageID == "" {
		return "", errors.New("export parent page not configured")
	}

	payload := createPageRequest{
		Parent: map[string]string{"page_id": n.parentPageID},
		Properties: map[string]any{
			"title": map[string]any{
				"title": []block{richText(record.Archetype())},
			},
		},
		Children: buildBlocks(record, completions),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal page: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/v1/pages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build export request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.token)
	req.Header.Set("Notion-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := n.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send export request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("export returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var created createPageResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("decode export response: %w", err)
	}
	return created.URL, nil
}

func (n *notionService) TestConnection(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/v1/users/me", nil)
	if err != nil {
		return fmt.Errorf("build connection test: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.token)
	req.Header.Set("Notion-Version", apiVersion)
	req.Header.Set("User-Agent", userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("connection test: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("connection test returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// buildBlocks renders the record as a Notion block tree: visual DNA first,
// then lifestyle and sensory sections, then the 4-week path as to-do items
// carrying stored completion state.
func buildBlocks(record *vision.Record, completions []store.Completion) []block {
	checked := make(map[[2]int]bool, len(completions))
	for _, c := range completions {
		checked[[2]int{c.WeekIndex, c.ActionIndex}] = c.Done
	}

	dna := record.Result.VisualDNA
	blocks := []block{
		heading(2, "Visual DNA"),
		paragraph(fmt.Sprintf("Lighting: %s", dna.Lighting)),
		paragraph(fmt.Sprintf("Spatial feeling: %s", dna.SpatialFeeling)),
	}
	for _, color := range dna.ColorPalette {
		blocks = append(blocks, bullet(color))
	}
	if len(dna.EmotionalCore) > 0 {
		blocks = append(blocks, paragraph("Emotional core: "+strings.Join(dna.EmotionalCore, ", ")))
	}

	lifestyle := record.Result.Lifestyle
	blocks = append(blocks, heading(2, "Lifestyle"))
	blocks = append(blocks, paragraph("Pace: "+lifestyle.Pace))
	if len(lifestyle.Values) > 0 {
		blocks = append(blocks, paragraph("Values: "+strings.Join(lifestyle.Values, ", ")))
	}
	for _, ritual := range lifestyle.DailyRituals {
		blocks = append(blocks, bullet(ritual))
	}

	sensory := record.Result.Sensory
	blocks = append(blocks, heading(2, "Sensory"))
	blocks = append(blocks, bullet("Smell: "+sensory.Smell))
	blocks = append(blocks, bullet("Sound: "+sensory.Sound))
	blocks = append(blocks, bullet("Touch: "+sensory.Touch))

	blocks = append(blocks, heading(2, "Manifestation Path"))
	for weekIndex, entry := range record.Path {
		blocks = append(blocks, heading(3, fmt.Sprintf("Week %d: %s", entry.Week, entry.Focus)))
		for actionIndex, action := range entry.Actions {
			blocks = append(blocks, todo(action, checked[[2]int{weekIndex, actionIndex}]))
		}
	}
	return blocks
}

func richText(content string) block {
	return block{"text": map[string]any{"content": content}}
}

func heading(level int, content string) block {
	key := fmt.Sprintf("heading_%d", level)
	return block{
		"object": "block",
		"type":   key,
		key:      map[string]any{"rich_text": []block{richText(content)}},
	}
}

func paragraph(content string) block {
	return block{
		"object":    "block",
		"type":      "paragraph",
		"paragraph": map[string]any{"rich_text": []block{richText(content)}},
	}
}

func bullet(content string) block {
	return block{
		"object":             "block",
		"type":               "bulleted_list_item",
		"bulleted_list_item": map[string]any{"rich_text": []block{richText(content)}},
	}
}

func todo(content string, checked bool) block {
	return block{
		"object": "block",
		"type":   "to_do",
		"to_do": map[string]any{
			"rich_text": []block{richText(content)},
			"checked":   checked,
		},
	}
}

type noopService struct{}

func (noopService) ExportRecord(context.Context, *vision.Record, []store.Completion) (string, error) {
	return "", nil
}
func (noopService) TestConnection(context.Context) error { return nil }
