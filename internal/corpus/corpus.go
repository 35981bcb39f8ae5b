package corpus

import (
	"fmt"
	"strings"
)

// Page is one page of extracted text as produced by the upstream
// document-analysis step. Pages are read-only once constructed.
type Page struct {
	Number int      `json:"page_number"`
	Lines  []string `json:"lines"`
}

// Corpus is the ordered page list for a whole document.
type Corpus []Page

// Validate checks the page-numbering preconditions: numbers must be
// positive, unique and strictly increasing. Violations indicate a broken
// upstream extractor and are surfaced as errors rather than worked around.
func (c Corpus) Validate() error {
	prev := 0
	for i, p := range c {
		if p.Number <= 0 {
			return fmt.Errorf("page at position %d has non-positive number %d", i, p.Number)
		}
		if p.Number <= prev {
			return fmt.Errorf("page number %d at position %d is not increasing (previous %d)", p.Number, i, prev)
		}
		prev = p.Number
	}
	return nil
}

// Empty reports whether the corpus has no pages or no text at all.
func (c Corpus) Empty() bool {
	for _, p := range c {
		for _, line := range p.Lines {
			if strings.TrimSpace(line) != "" {
				return false
			}
		}
	}
	return true
}

// FirstPage returns the lowest page number, or 0 for an empty corpus.
func (c Corpus) FirstPage() int {
	if len(c) == 0 {
		return 0
	}
	return c[0].Number
}

// LastPage returns the highest page number, or 0 for an empty corpus.
func (c Corpus) LastPage() int {
	if len(c) == 0 {
		return 0
	}
	return c[len(c)-1].Number
}

// Window returns the pages whose number falls in [from, to], inclusive.
func (c Corpus) Window(from, to int) Corpus {
	var out Corpus
	for _, p := range c {
		if p.Number < from {
			continue
		}
		if p.Number > to {
			break
		}
		out = append(out, p)
	}
	return out
}

// Text concatenates, in page order, all lines on pages in [from, to].
func (c Corpus) Text(from, to int) string {
	var sb strings.Builder
	for _, p := range c.Window(from, to) {
		for _, line := range p.Lines {
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(line)
		}
	}
	return sb.String()
}
