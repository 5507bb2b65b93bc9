package vision

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrResponseParse marks a model reply that could not be decoded into a Result
// at any extraction stage. Parsing is all-or-nothing; no partial results leak.
var ErrResponseParse = errors.New("response not parseable")

// ParseResult extracts a Result from free-form model text. Extraction order:
//  1. a fenced code block labeled json,
//  2. the substring between the first '{' and the last '}',
//  3. the whole text verbatim.
//
// Every stage must decode cleanly or the next one is tried; when all three
// fail, the error wraps ErrResponseParse.
func ParseResult(text string) (Result, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Result{}, fmt.Errorf("parse result: empty reply: %w", ErrResponseParse)
	}

	candidates := make([]string, 0, 3)
	if fenced, ok := fencedJSONBlock(trimmed); ok {
		candidates = append(candidates, fenced)
	}
	if braced, ok := bracedSubstring(trimmed); ok {
		candidates = append(candidates, braced)
	}
	candidates = append(candidates, trimmed)

	var lastErr error
	for _, candidate := range candidates {
		var result Result
		if err := json.Unmarshal([]byte(candidate), &result); err != nil {
			lastErr = err
			continue
		}
		if err := result.Validate(); err != nil {
			lastErr = err
			continue
		}
		return result, nil
	}
	return Result{}, fmt.Errorf("parse result: %v (reply snippet: %s): %w", lastErr, snippet(trimmed), ErrResponseParse)
}

func fencedJSONBlock(text string) (string, bool) {
	start := strings.Index(text, "```")
	if start < 0 {
		return "", false
	}
	body := text[start+3:]
	body = strings.TrimLeft(body, " \t")
	if len(body) >= 4 && strings.EqualFold(body[:4], "json") {
		body = body[4:]
	}
	end := strings.Index(body, "```")
	if end < 0 {
		return "", false
	}
	block := strings.TrimSpace(body[:end])
	if block == "" {
		return "", false
	}
	return block, true
}

func bracedSubstring(text string) (string, bool) {
	start := strings.Index(text, "{")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(text, "}")
	if end <= start {
		return "", false
	}
	return strings.TrimSpace(text[start : end+1]), true
}

func snippet(text string) string {
	replacer := strings.NewReplacer("\r", " ", "\n", " ", "\t", " ")
	clean := strings.Join(strings.Fields(replacer.Replace(text)), " ")
	const limit = 160
	runes := []rune(clean)
	if len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return clean
}
