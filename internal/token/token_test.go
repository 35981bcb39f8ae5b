package token

import (
	"strings"
	"testing"
)

func TestEstimator_EmptyAndWhitespace(t *testing.T) {
	e := Estimator{}
	if got := e.Count(""); got != 0 {
		t.Errorf("expected 0 for empty string, got %d", got)
	}
	if got := e.Count("   \n\t  "); got != 0 {
		t.Errorf("expected 0 for whitespace-only string, got %d", got)
	}
}

func TestEstimator_Deterministic(t *testing.T) {
	e := Estimator{}
	text := "The quick brown fox jumps over the lazy dog."
	first := e.Count(text)
	for i := 0; i < 10; i++ {
		if got := e.Count(text); got != first {
			t.Fatalf("run %d: expected %d, got %d", i, first, got)
		}
	}
}

func TestEstimator_AveragesCharAndWordEstimates(t *testing.T) {
	e := Estimator{}
	// "aaaa bbbb" = 9 chars -> 2.25 char-based, 2 words -> round(4.25/2) = 2.
	if got := e.Count("aaaa bbbb"); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
	// A single 4-char word: (1 + 1) / 2 = 1.
	if got := e.Count("word"); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
}

func TestEstimator_ScalesWithLength(t *testing.T) {
	e := Estimator{}
	short := strings.Repeat("word ", 10)
	long := strings.Repeat("word ", 1000)
	if e.Count(long) <= e.Count(short) {
		t.Errorf("expected longer text to count more tokens: short=%d long=%d",
			e.Count(short), e.Count(long))
	}
}
