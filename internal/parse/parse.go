// Package parse turns free-form model output into typed results. Upstream
// text format is not contractually guaranteed, so every parser tries an
// embedded-JSON decode first and falls back to line-oriented heuristics.
// Parsers never fail: unusable text degrades to a placeholder result with
// confidence zero.
package parse

import (
	"encoding/json"
	"strings"
)

// Strategy extracts a structured result of type T from raw model text. One
// implementation exists per use case so a stricter upstream contract can swap
// in a real parser without touching the pipeline.
type Strategy[T any] interface {
	Parse(text string) T
}

func decodePayload[T any](raw string) (T, bool) {
	var zero T
	cleaned := extractJSONFragment(raw)
	if cleaned == "" {
		return zero, false
	}
	var decoded T
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return zero, false
	}
	return decoded, true
}

func extractJSONFragment(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	text = trimCodeFence(text)
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "]}")
	if start >= 0 && end >= start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}

func coalesce(values ...string) string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			return v
		}
	}
	return ""
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

var refusalHints = []string{
	"i can't",
	"i cannot",
	"i'm sorry",
	"i am sorry",
	"unable to assist",
	"not able to help",
}

// looksLikeRefusal is a logging hint only: refused and unparseable text take
// the same zero-confidence path externally.
func looksLikeRefusal(text string) bool {
	lower := strings.ToLower(text)
	for _, hint := range refusalHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// splitKeyValue splits "Key: value" and reports whether a separator existed.
func splitKeyValue(segment string) (string, string, bool) {
	idx := strings.Index(segment, ":")
	if idx <= 0 {
		return "", "", false
	}
	key := strings.ToLower(strings.TrimSpace(segment[:idx]))
	value := strings.TrimSpace(segment[idx+1:])
	if key == "" || value == "" {
		return "", "", false
	}
	return key, value, true
}
