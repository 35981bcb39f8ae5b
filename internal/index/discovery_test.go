package index

import (
	"testing"

	"github.com/dgallion1/docseg/internal/corpus"
)

func contentPage(n int) corpus.Page {
	return corpus.Page{Number: n, Lines: []string{
		"Some ordinary prose without any structure to it.",
		"More prose continues here across the page.",
	}}
}

func TestDetectIndexPage_KeywordMatch(t *testing.T) {
	c := corpus.Corpus{
		contentPage(1),
		{Number: 2, Lines: []string{"Table of Contents"}},
		contentPage(3),
	}
	page, ok := DetectIndexPage(c)
	if !ok {
		t.Fatal("expected an index page")
	}
	if page != 2 {
		t.Errorf("expected page 2, got %d", page)
	}
}

func TestDetectIndexPage_SpanishKeyword(t *testing.T) {
	c := corpus.Corpus{
		{Number: 1, Lines: []string{"Índice general"}},
	}
	if _, ok := DetectIndexPage(c); !ok {
		t.Error("expected keyword match on índice")
	}
}

func TestDetectIndexPage_StructuralLines(t *testing.T) {
	// Four dotted-leader lines qualify the page on structure alone.
	c := corpus.Corpus{
		contentPage(1),
		{Number: 2, Lines: []string{
			"Prologue .......... 3",
			"The Journey Begins .......... 9",
			"The Middle Passage .......... 21",
			"Homecoming .......... 44",
		}},
		contentPage(3),
	}
	page, ok := DetectIndexPage(c)
	if !ok {
		t.Fatal("expected an index page")
	}
	if page != 2 {
		t.Errorf("expected page 2, got %d", page)
	}
}

func TestDetectIndexPage_TooFewStructuralLines(t *testing.T) {
	c := corpus.Corpus{
		{Number: 1, Lines: []string{
			"Prose without numbers at line ends.",
			"Only one line looks like an entry .......... 3",
			"And the rest is narrative text again.",
		}},
	}
	if page, ok := DetectIndexPage(c); ok {
		t.Errorf("expected no index page, got %d", page)
	}
}

func TestDetectIndexPage_ScanWindowIsTenPages(t *testing.T) {
	var c corpus.Corpus
	for i := 1; i <= 11; i++ {
		c = append(c, contentPage(i))
	}
	// An index-like page beyond the scan window must not be found.
	c[10] = corpus.Page{Number: 11, Lines: []string{"Contents"}}
	if page, ok := DetectIndexPage(c); ok {
		t.Errorf("expected no detection past page 10, got %d", page)
	}
}

func TestDiscover_ExplicitRange(t *testing.T) {
	c := corpus.Corpus{
		{Number: 1, Lines: []string{
			"Introduction .......... 2",
			"Methodology .......... 7",
		}},
		contentPage(2),
	}
	res, ok := Discover(c, Options{HasIndex: true, FromPage: 1, ToPage: 1})
	if !ok {
		t.Fatal("expected discovery to succeed")
	}
	if res.Source != SourceExplicit {
		t.Errorf("expected explicit source, got %q", res.Source)
	}
	if len(res.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(res.Candidates))
	}
	if res.Candidates[0].Title != "Introduction" || res.Candidates[1].Title != "Methodology" {
		t.Errorf("unexpected candidates: %+v", res.Candidates)
	}
}

func TestDiscover_ExplicitRangeEmptyFallsBackToHeuristic(t *testing.T) {
	c := corpus.Corpus{
		{Number: 1, Lines: []string{
			"Chapter One .......... 2",
			"Chapter Two .......... 5",
			"Chapter Three .......... 9",
		}},
	}
	// Range [40, 50] matches no pages; the heuristic should still find page 1.
	res, ok := Discover(c, Options{HasIndex: true, FromPage: 40, ToPage: 50})
	if !ok {
		t.Fatal("expected heuristic fallback to succeed")
	}
	if res.Source != SourceHeuristic {
		t.Errorf("expected heuristic source, got %q", res.Source)
	}
	if len(res.Warnings) == 0 {
		t.Error("expected a warning about the empty explicit range")
	}
}

func TestDiscover_NoIndexAnywhere(t *testing.T) {
	c := corpus.Corpus{contentPage(1), contentPage(2)}
	if _, ok := Discover(c, Options{}); ok {
		t.Error("expected discovery to fail on an indexless document")
	}
}
