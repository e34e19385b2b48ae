package services

import (
	"math"
	"strings"
)

// NormalizeURL strips the query string so tracking parameters don't defeat
// deduplication. An empty input stays empty.
func NormalizeURL(url string) string {
	url = strings.TrimSpace(url)
	if i := strings.Index(url, "?"); i >= 0 {
		url = url[:i]
	}
	return url
}

// SanitizeReasoning removes markdown code fences the scoring pipeline wraps
// structured JSON in, ex: "```json\n{...}\n```".
func SanitizeReasoning(reasoning string) string {
	if !strings.Contains(reasoning, "```") {
		return strings.TrimSpace(reasoning)
	}
	reasoning = strings.ReplaceAll(reasoning, "```json", "")
	reasoning = strings.ReplaceAll(reasoning, "```", "")
	return strings.TrimSpace(reasoning)
}

// RoundScore coerces the scorer's numeric output to the stored integer scale.
func RoundScore(score float64) int {
	return int(math.Round(score))
}
