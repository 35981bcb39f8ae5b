package oracle

import (
	"strings"

	"github.com/dgallion1/docseg/internal/index"
)

const (
	minTitleLen = 3
	maxTitleLen = 200
	maxChildren = 50
	maxPageHint = 10000
)

// SanitizeCandidates filters an oracle proposal down to usable candidates:
// titles trimmed and length-bounded, implausible page hints zeroed, nesting
// flattened to a single subchapter level, child lists capped.
func SanitizeCandidates(cands []index.Candidate) []index.Candidate {
	out := make([]index.Candidate, 0, len(cands))
	for _, c := range cands {
		if !validTitle(c.Title) {
			continue
		}
		clean := index.Candidate{
			Title:    strings.TrimSpace(c.Title),
			FromHint: clampHint(c.FromHint),
			ToHint:   clampHint(c.ToHint),
		}
		for _, child := range c.Children {
			if len(clean.Children) >= maxChildren {
				break
			}
			if !validTitle(child.Title) {
				continue
			}
			clean.Children = append(clean.Children, index.Candidate{
				Title:    strings.TrimSpace(child.Title),
				FromHint: clampHint(child.FromHint),
				ToHint:   clampHint(child.ToHint),
			})
		}
		out = append(out, clean)
	}
	return out
}

func validTitle(s string) bool {
	n := len([]rune(strings.TrimSpace(s)))
	return n >= minTitleLen && n <= maxTitleLen
}

func clampHint(n int) int {
	if n <= 0 || n >= maxPageHint {
		return 0
	}
	return n
}
