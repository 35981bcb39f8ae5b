package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docseg/internal/corpus"
)

// Parser converts raw document bytes into an ordered page corpus. Formats
// without real page boundaries (text, markdown, html, docx) are paginated
// at a fixed line count so the segmentation engine has windows to work with.
type Parser interface {
	Parse(r io.Reader, filename string) (corpus.Corpus, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, linesPerPage int) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{LinesPerPage: linesPerPage}, nil
	case ".md", ".markdown":
		return &MarkdownParser{LinesPerPage: linesPerPage}, nil
	case ".html", ".htm":
		return &HTMLParser{LinesPerPage: linesPerPage}, nil
	case ".pdf":
		return &PDFParser{}, nil
	case ".docx":
		return &DOCXParser{LinesPerPage: linesPerPage}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
