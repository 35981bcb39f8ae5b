package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/docseg/internal/corpus"
)

// TextParser handles plain text files. Form feeds mark real page breaks;
// without them the text is paginated at LinesPerPage.
type TextParser struct {
	LinesPerPage int
}

func (p *TextParser) Parse(r io.Reader, filename string) (corpus.Corpus, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var sb strings.Builder
	for scanner.Scan() {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return corpus.Corpus{}, nil
	}
	if pages := pagesFromFormFeeds(text); pages != nil {
		return pages, nil
	}
	return paginateLines(splitLines(text), p.LinesPerPage), nil
}
