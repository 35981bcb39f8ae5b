package resolve

import (
	"strings"

	"github.com/dgallion1/docseg/internal/corpus"
	"github.com/dgallion1/docseg/internal/index"
)

// Node is a candidate whose boundaries have been anchored to actual pages.
// An unfound node keeps its title but collapses to the next available page
// so that the caller can audit oracle hallucinations instead of losing them.
type Node struct {
	Title    string
	FromPage int
	ToPage   int
	Found    bool
	Children []Node
}

// Result carries the resolved tree plus the counts for the report.
type Result struct {
	Nodes      []Node
	Resolved   int
	Unresolved int
}

// Resolve anchors every candidate to the page where its title text first
// appears, scanning the document front to back. fromPage excludes the index
// pages themselves, where every title occurs as an entry line. Top-level
// candidates split the rest of the document; each candidate's children are
// resolved inside the parent's window only, so a subchapter can never leak
// into a sibling chapter's pages.
func Resolve(c corpus.Corpus, cands []index.Candidate, fromPage int) Result {
	var res Result
	if len(c) == 0 || len(cands) == 0 {
		return res
	}
	windowFrom := c.FirstPage()
	if fromPage > windowFrom {
		windowFrom = fromPage
	}
	res.Nodes = resolveLevel(c, cands, windowFrom, c.LastPage(), &res)
	return res
}

func resolveLevel(c corpus.Corpus, cands []index.Candidate, windowFrom, windowTo int, res *Result) []Node {
	nodes := make([]Node, len(cands))
	searchFrom := windowFrom

	for i, cand := range cands {
		page, ok := findTitle(c, cand.Title, searchFrom, windowTo)
		if ok {
			nodes[i] = Node{Title: cand.Title, FromPage: page, Found: true}
			// The next sibling starts strictly later, so a running header
			// repeating an earlier title resolves to its later occurrence.
			searchFrom = page + 1
			res.Resolved++
		} else {
			// Collapsed to the next available page, still emitted.
			nodes[i] = Node{Title: cand.Title, FromPage: searchFrom, ToPage: searchFrom}
			res.Unresolved++
		}
	}

	// End pages: a found node runs until the next found sibling starts.
	nextFrom := windowTo + 1
	for i := len(nodes) - 1; i >= 0; i-- {
		if !nodes[i].Found {
			continue
		}
		to := nextFrom - 1
		if to < nodes[i].FromPage {
			to = nodes[i].FromPage
		}
		nodes[i].ToPage = to
		nextFrom = nodes[i].FromPage
	}

	for i := range nodes {
		if len(cands[i].Children) == 0 {
			continue
		}
		nodes[i].Children = resolveLevel(c, cands[i].Children, nodes[i].FromPage, nodes[i].ToPage, res)
	}

	return nodes
}

// findTitle returns the earliest page in [from, to] containing the title as
// a case-insensitive trimmed substring. Ties go to the lowest page and then
// the lowest line index, which the scan order gives for free.
func findTitle(c corpus.Corpus, title string, from, to int) (int, bool) {
	needle := strings.ToLower(strings.TrimSpace(title))
	if needle == "" {
		return 0, false
	}
	for _, p := range c.Window(from, to) {
		for _, line := range p.Lines {
			if strings.Contains(strings.ToLower(line), needle) {
				return p.Number, true
			}
		}
	}
	return 0, false
}
