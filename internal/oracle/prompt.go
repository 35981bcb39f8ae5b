package oracle

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docseg/internal/corpus"
)

const ProposalPrompt = `You are given the paginated text of a document that has no table of contents. Propose a chapter structure for it. Return a JSON array where each element is a chapter object with these fields:

- "title": the chapter heading exactly as it appears in the text (string)
- "from_page": best guess for the page the chapter starts on (integer, optional)
- "to_page": best guess for the page the chapter ends on (integer, optional)
- "subchapters": nested array of the same shape for sections inside the chapter (default [])

Rules:
- Titles MUST be copied verbatim from the text so they can be located again; never invent or paraphrase a heading
- Only one level of nesting: subchapters of subchapters are not allowed
- Skip page headers, footers and page numbers
- Keep the chapters in reading order
- Return an empty array [] if the document has no discernible structure

Respond with ONLY the JSON array, no other text.`

// maxLinesPerPage bounds how much of each page goes into the prompt.
const maxLinesPerPage = 12

// BuildProposalPrompt serializes a per-page sample of the corpus into the
// proposal prompt. Long pages are truncated; headings sit at the top of a
// page often enough that the leading lines carry the structure.
func BuildProposalPrompt(pages corpus.Corpus) string {
	var sb strings.Builder
	sb.WriteString(ProposalPrompt)
	sb.WriteString("\n\n---\n")
	for _, p := range pages {
		sb.WriteString(fmt.Sprintf("[page %d]\n", p.Number))
		lines := p.Lines
		if len(lines) > maxLinesPerPage {
			lines = lines[:maxLinesPerPage]
		}
		for _, line := range lines {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
