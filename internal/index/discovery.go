package index

import (
	"regexp"
	"strings"

	"github.com/dgallion1/docseg/internal/corpus"
)

// detectWindow is the number of leading pages scanned for an index page.
const detectWindow = 10

// minStructuralLines is how many index-shaped lines a page needs before it
// counts as an index page on structure alone.
const minStructuralLines = 3

// Keyword indicators for an index/table-of-contents page. Matched
// case-insensitively against every line.
var indexKeywords = []string{
	"contents",
	"índice",
	"indice",
	"chapter",
	"capítulo",
	"capitulo",
	"section",
	"sección",
	"seccion",
}

// Structural shapes an index line can take: dotted leader with a trailing
// page number, bare trailing page number, and a numbered entry.
var structuralPatterns = []*regexp.Regexp{
	regexp.MustCompile(`.*\.{2,}.*\d+\s*$`),
	regexp.MustCompile(`.*\s+\d+\s*$`),
	regexp.MustCompile(`^\d+[.\s]+.*\s+\d+\s*$`),
}

// Options control how the index is located.
type Options struct {
	// HasIndex with FromPage/ToPage makes the caller's range authoritative;
	// heuristic detection is skipped unless the range is empty.
	HasIndex bool
	FromPage int
	ToPage   int
}

// Result is the outcome of index discovery.
type Result struct {
	Candidates []Candidate
	Source     Source
	IndexPage  int // first page of the index source, 0 when none
	IndexEnd   int // last page of the index source, 0 when none
	Warnings   []string
}

// Discover locates the document's index and parses it into candidates.
// ok is false when no usable index exists; the caller then consults the
// proposal oracle or falls back to a single-chapter document.
func Discover(c corpus.Corpus, opts Options) (Result, bool) {
	var res Result

	if opts.HasIndex {
		window := c.Window(opts.FromPage, opts.ToPage)
		if len(window) > 0 {
			res.Source = SourceExplicit
			res.IndexPage = window[0].Number
			res.IndexEnd = window[len(window)-1].Number
			res.Candidates = ParseIndexLines(windowLines(window))
			if len(res.Candidates) > 0 {
				return res, true
			}
			res.Warnings = append(res.Warnings, "explicit index range produced no entries, trying heuristic detection")
		} else {
			res.Warnings = append(res.Warnings, "explicit index range matched no pages, trying heuristic detection")
		}
	}

	page, ok := DetectIndexPage(c)
	if !ok {
		res.Source = ""
		res.IndexPage = 0
		res.IndexEnd = 0
		res.Candidates = nil
		return res, false
	}

	res.Source = SourceHeuristic
	res.IndexPage = page
	res.IndexEnd = page
	res.Candidates = ParseIndexLines(windowLines(c.Window(page, page)))
	return res, len(res.Candidates) > 0
}

// DetectIndexPage scans at most the first 10 pages for one that looks like
// a table of contents. The first qualifying page wins and scanning stops.
func DetectIndexPage(c corpus.Corpus) (int, bool) {
	for i, p := range c {
		if i >= detectWindow {
			break
		}
		if pageLooksLikeIndex(p) {
			return p.Number, true
		}
	}
	return 0, false
}

func pageLooksLikeIndex(p corpus.Page) bool {
	structural := 0
	for _, line := range p.Lines {
		lower := strings.ToLower(line)
		for _, kw := range indexKeywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
		for _, re := range structuralPatterns {
			if re.MatchString(line) {
				structural++
				break
			}
		}
	}
	return structural >= minStructuralLines
}

func windowLines(pages corpus.Corpus) []string {
	var lines []string
	for _, p := range pages {
		lines = append(lines, p.Lines...)
	}
	return lines
}
