package parser

import (
	"strings"

	"github.com/dgallion1/docseg/internal/corpus"
)

// DefaultLinesPerPage is the pagination applied to formats with no real
// page boundaries.
const DefaultLinesPerPage = 40

// paginateLines cuts a flat line list into fixed-size pages, numbered
// from 1. Trailing whitespace-only lines on a page boundary are kept so
// line offsets stay stable.
func paginateLines(lines []string, perPage int) corpus.Corpus {
	if perPage <= 0 {
		perPage = DefaultLinesPerPage
	}
	var pages corpus.Corpus
	for start := 0; start < len(lines); start += perPage {
		end := start + perPage
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, corpus.Page{
			Number: len(pages) + 1,
			Lines:  lines[start:end],
		})
	}
	return pages
}

// pagesFromFormFeeds splits text on form feeds into real pages; each page's
// text becomes its line list. Returns nil when there is no form feed, in
// which case the caller paginates by line count instead.
func pagesFromFormFeeds(text string) corpus.Corpus {
	if !strings.Contains(text, "\f") {
		return nil
	}
	parts := strings.Split(text, "\f")
	var pages corpus.Corpus
	for _, part := range parts {
		pages = append(pages, corpus.Page{
			Number: len(pages) + 1,
			Lines:  splitLines(part),
		})
	}
	return pages
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(strings.Trim(text, "\n"), "\n")
}
