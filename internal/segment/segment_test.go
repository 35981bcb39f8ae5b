package segment

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dgallion1/docseg/internal/corpus"
	"github.com/dgallion1/docseg/internal/resolve"
)

// wordCounter makes token arithmetic exact in tests: disjoint texts sum.
type wordCounter struct{}

func (wordCounter) Count(text string) int { return len(strings.Fields(text)) }

func pageWith(n int, lines ...string) corpus.Page {
	return corpus.Page{Number: n, Lines: lines}
}

func TestAssembleChapter_OwnTextExcludesSubchapterPages(t *testing.T) {
	c := corpus.Corpus{
		pageWith(1, "alpha one"),
		pageWith(2, "alpha two"),
		pageWith(3, "sub three"),
		pageWith(4, "sub four"),
		pageWith(5, "alpha five"),
	}
	n := resolve.Node{
		Title: "Alpha", FromPage: 1, ToPage: 5, Found: true,
		Children: []resolve.Node{
			{Title: "Inner", FromPage: 3, ToPage: 4, Found: true},
		},
	}
	ch := assembleChapter(c, n, wordCounter{})

	if strings.Contains(ch.Text, "sub three") || strings.Contains(ch.Text, "sub four") {
		t.Errorf("chapter text must not include subchapter pages, got %q", ch.Text)
	}
	for _, want := range []string{"alpha one", "alpha two", "alpha five"} {
		if !strings.Contains(ch.Text, want) {
			t.Errorf("chapter text missing %q", want)
		}
	}
	if len(ch.Subchapters) != 1 {
		t.Fatalf("expected 1 subchapter, got %d", len(ch.Subchapters))
	}
	sub := ch.Subchapters[0]
	if sub.ChapterTitle != "Alpha" {
		t.Errorf("expected back-reference Alpha, got %q", sub.ChapterTitle)
	}
	if !strings.Contains(sub.Text, "sub three") || !strings.Contains(sub.Text, "sub four") {
		t.Errorf("subchapter text wrong: %q", sub.Text)
	}
	// 6 own words + 4 subchapter words.
	if sub.TokenCount != 4 {
		t.Errorf("expected subchapter token count 4, got %d", sub.TokenCount)
	}
	if ch.TokenCount != 10 {
		t.Errorf("expected chapter token count 10, got %d", ch.TokenCount)
	}
}

func TestAssembleChapter_UnfoundHasNoText(t *testing.T) {
	c := corpus.Corpus{pageWith(1, "whatever words")}
	n := resolve.Node{Title: "Ghost", FromPage: 1, ToPage: 1}
	ch := assembleChapter(c, n, wordCounter{})

	if ch.Text != "" {
		t.Errorf("unfound chapter must carry no text, got %q", ch.Text)
	}
	if ch.TokenCount != 0 {
		t.Errorf("unfound chapter must count 0 tokens, got %d", ch.TokenCount)
	}
	if ch.FromPage != 1 || ch.ToPage != 1 {
		t.Errorf("collapsed range lost: [%d,%d]", ch.FromPage, ch.ToPage)
	}
}

func TestAssembleChapter_NoSubchapters(t *testing.T) {
	c := corpus.Corpus{
		pageWith(1, "one two"),
		pageWith(2, "three"),
	}
	n := resolve.Node{Title: "Solo", FromPage: 1, ToPage: 2, Found: true}
	ch := assembleChapter(c, n, wordCounter{})

	if len(ch.Subchapters) != 0 {
		t.Errorf("expected no subchapters, got %d", len(ch.Subchapters))
	}
	if ch.TokenCount != 3 {
		t.Errorf("expected 3 tokens, got %d", ch.TokenCount)
	}
}

func TestMergeChapters_DuplicateTitle(t *testing.T) {
	chapters := []Chapter{
		{
			Title: "Results", FromPage: 3, ToPage: 8, Text: "first pass", TokenCount: 2,
			Subchapters: []Subchapter{{ChapterTitle: "Results", Title: "3.1 Data"}},
		},
		{Title: "Discussion", FromPage: 13, ToPage: 15, Text: "talk", TokenCount: 1},
		{
			Title: "Results", FromPage: 9, ToPage: 12, Text: "second pass", TokenCount: 2,
			Subchapters: []Subchapter{{ChapterTitle: "Results", Title: "3.2 Analysis"}},
		},
	}
	merged, duplicates := mergeChapters(chapters)

	if len(merged) != 2 {
		t.Fatalf("expected 2 chapters after merge, got %d", len(merged))
	}
	r := merged[0]
	if r.Title != "Results" {
		t.Fatalf("first-seen order lost, got %q first", r.Title)
	}
	if r.FromPage != 3 || r.ToPage != 12 {
		t.Errorf("expected widened range [3,12], got [%d,%d]", r.FromPage, r.ToPage)
	}
	if r.TokenCount != 4 {
		t.Errorf("expected summed token count 4, got %d", r.TokenCount)
	}
	if len(r.Subchapters) != 2 ||
		r.Subchapters[0].Title != "3.1 Data" || r.Subchapters[1].Title != "3.2 Analysis" {
		t.Errorf("subchapters not appended in encounter order: %+v", r.Subchapters)
	}
	if r.Text != "first pass\n\nsecond pass" {
		t.Errorf("text concatenation wrong: %q", r.Text)
	}
	if !reflect.DeepEqual(duplicates, []string{"Results"}) {
		t.Errorf("expected duplicates [Results], got %v", duplicates)
	}
}

func TestMergeChapters_OrderPreserved(t *testing.T) {
	chapters := []Chapter{
		{Title: "A"}, {Title: "B"}, {Title: "A"}, {Title: "C"},
	}
	merged, _ := mergeChapters(chapters)
	got := make([]string, len(merged))
	for i, ch := range merged {
		got[i] = ch.Title
	}
	if !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Errorf("expected first-seen order [A B C], got %v", got)
	}
}

func TestMergeChapters_TripleDuplicateReportedOnce(t *testing.T) {
	chapters := []Chapter{
		{Title: "X", TokenCount: 1},
		{Title: "X", TokenCount: 2},
		{Title: "X", TokenCount: 3},
	}
	merged, duplicates := mergeChapters(chapters)
	if len(merged) != 1 || merged[0].TokenCount != 6 {
		t.Fatalf("expected one chapter with 6 tokens, got %+v", merged)
	}
	if !reflect.DeepEqual(duplicates, []string{"X"}) {
		t.Errorf("expected duplicates [X], got %v", duplicates)
	}
}

func TestMergeChapters_Idempotent(t *testing.T) {
	chapters := []Chapter{
		{Title: "Results", FromPage: 3, ToPage: 8, Text: "one", TokenCount: 1},
		{Title: "Results", FromPage: 9, ToPage: 12, Text: "two", TokenCount: 1},
	}
	once, _ := mergeChapters(chapters)
	twice, dups := mergeChapters(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("merge not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
	if len(dups) != 0 {
		t.Errorf("re-merging merged output must report no duplicates, got %v", dups)
	}
}

func TestFinalize_IDsAndTotal(t *testing.T) {
	doc := finalize([]Chapter{
		{Title: "Getting Started!", FromPage: 2, TokenCount: 5},
		{Title: "Results", FromPage: 9, TokenCount: 7},
	})
	if doc.TotalTokens != 12 {
		t.Errorf("expected total 12, got %d", doc.TotalTokens)
	}
	if doc.Chapters[0].ID != "getting-started-p2" {
		t.Errorf("unexpected ID %q", doc.Chapters[0].ID)
	}
	if doc.Chapters[1].ID != "results-p9" {
		t.Errorf("unexpected ID %q", doc.Chapters[1].ID)
	}
}
