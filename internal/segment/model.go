package segment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dgallion1/docseg/internal/index"
)

// Subchapter is a structural unit nested inside a chapter. ChapterTitle is
// a display back-reference to the owning chapter, not a pointer cycle.
type Subchapter struct {
	ChapterTitle string `json:"chapter_title"`
	Title        string `json:"title"`
	FromPage     int    `json:"from_page"`
	ToPage       int    `json:"to_page"`
	Text         string `json:"text"`
	TokenCount   int    `json:"token_count"`
}

// Chapter is a top-level structural unit with a contiguous page range.
// TokenCount covers the chapter's own unattributed text plus the sum of its
// subchapter counts.
type Chapter struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	FromPage    int          `json:"from_page"`
	ToPage      int          `json:"to_page"`
	Text        string       `json:"text"`
	TokenCount  int          `json:"token_count"`
	Subchapters []Subchapter `json:"subchapters"`
}

// Document is the final segmented model handed to the structure store.
type Document struct {
	Chapters    []Chapter `json:"chapters"`
	TotalTokens int       `json:"total_tokens"`
}

// Report summarizes how the segmentation went, for the caller to audit.
type Report struct {
	Source     index.Source `json:"source"`
	IndexPage  int          `json:"index_page,omitempty"`
	Resolved   int          `json:"resolved_titles"`
	Unresolved int          `json:"unresolved_titles"`
	Merged     []string     `json:"merged_titles,omitempty"`
	Warnings   []string     `json:"warnings,omitempty"`
}

var (
	slugStripRe    = regexp.MustCompile(`[^a-z0-9-]`)
	slugCollapseRe = regexp.MustCompile(`-+`)
)

// chapterID derives a stable identifier from the title and start page.
func chapterID(title string, fromPage int) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStripRe.ReplaceAllString(s, "-")
	s = slugCollapseRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 50 {
		s = s[:50]
	}
	if s == "" {
		s = "chapter"
	}
	return fmt.Sprintf("%s-p%d", s, fromPage)
}
