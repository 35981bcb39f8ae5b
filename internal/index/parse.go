package index

import (
	"regexp"
	"strconv"
	"strings"
)

// maxPageHint bounds a plausible page number; anything outside (0, 10000)
// marks the line as noise rather than an index entry.
const maxPageHint = 10000

// entryPattern pairs a line shape with an extractor for its capture groups.
// The pattern order matters: the first match wins.
type entryPattern struct {
	re      *regexp.Regexp
	extract func(m []string) (number, title string, page int)
}

var entryPatterns = []entryPattern{
	// "Chapter 3: Getting Started ..... 27"
	{
		re: regexp.MustCompile(`(?i)^\s*(?:chapter|capítulo|capitulo)\s+(\d+)\s*[:.\-]?\s*(.+?)\s*\.{2,}\s*(\d+)\s*$`),
		extract: func(m []string) (string, string, int) {
			return m[1], m[2], atoiOr(m[3])
		},
	},
	// "3. Getting Started ..... 27" (also matches dotted "3.1" sub-entries)
	{
		re: regexp.MustCompile(`^\s*(\d+(?:\.\d+)*)[.)]?\s+(.+?)\s*\.{2,}\s*(\d+)\s*$`),
		extract: func(m []string) (string, string, int) {
			return m[1], m[2], atoiOr(m[3])
		},
	},
	// "Getting Started ..... 27"
	{
		re: regexp.MustCompile(`^(\s*)(.+?)\s*\.{2,}\s*(\d+)\s*$`),
		extract: func(m []string) (string, string, int) {
			return "", m[2], atoiOr(m[3])
		},
	},
	// "GETTING STARTED 27" (all caps, no leaders)
	{
		re: regexp.MustCompile(`^\s*([A-ZÁÉÍÓÚÑ][A-ZÁÉÍÓÚÑ0-9 ,'&\-]+?)\s+(\d+)\s*$`),
		extract: func(m []string) (string, string, int) {
			return "", m[1], atoiOr(m[2])
		},
	},
}

// ParseIndexLines turns raw index-page lines into an ordered candidate list.
// Lines that look like sub-index entries (dotted numeric prefixes such as
// "1.1", indentation, very short titles) are demoted to subchapters of the
// preceding top-level entry rather than emitted as chapters of their own.
func ParseIndexLines(lines []string) []Candidate {
	var out []Candidate
	for _, line := range lines {
		number, title, page, ok := parseIndexLine(line)
		if !ok {
			continue
		}
		cand := Candidate{Title: title, FromHint: page}
		if isSubEntry(line, number, title) {
			if len(out) == 0 {
				continue
			}
			parent := &out[len(out)-1]
			parent.Children = append(parent.Children, cand)
			continue
		}
		out = append(out, cand)
	}
	return out
}

func parseIndexLine(line string) (number, title string, page int, ok bool) {
	if strings.TrimSpace(line) == "" {
		return "", "", 0, false
	}
	for _, p := range entryPatterns {
		m := p.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		number, title, page = p.extract(m)
		title = strings.TrimSpace(title)
		if page <= 0 || page >= maxPageHint || title == "" {
			return "", "", 0, false
		}
		return number, title, page, true
	}
	return "", "", 0, false
}

// isSubEntry flags index lines that belong one level down.
func isSubEntry(line, number, title string) bool {
	if strings.Contains(number, ".") {
		return true
	}
	if len(line) > 0 && (line[0] == ' ' || line[0] == '\t') {
		return true
	}
	return len([]rune(title)) < 3
}

func atoiOr(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
