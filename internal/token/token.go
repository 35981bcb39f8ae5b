package token

import (
	"math"
	"strings"
)

// Counter approximates the token count of a text block. Implementations
// must be deterministic and pure; callers may swap in an exact model
// tokenizer without touching the segmentation code.
type Counter interface {
	Count(text string) int
}

// Estimator is the default heuristic Counter. It averages a character-based
// estimate (~4 chars per token for mixed-language prose) with the whitespace
// word count, which tracks sub-word tokenizers closely enough for budgeting.
type Estimator struct{}

func (Estimator) Count(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	chars := float64(len(text)) / 4
	words := float64(len(strings.Fields(text)))
	return int(math.Round((chars + words) / 2))
}
