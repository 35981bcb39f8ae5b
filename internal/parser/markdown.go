package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/docseg/internal/corpus"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Headings become
// their own lines so the boundary resolver can anchor titles, and the
// flattened line stream is paginated at LinesPerPage.
type MarkdownParser struct {
	LinesPerPage int
}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (corpus.Corpus, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var lines []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := string(node.Text(src))
			if title != "" {
				lines = append(lines, title)
			}
		default:
			t := extractText(n, src)
			if t != "" {
				for _, line := range strings.Split(t, "\n") {
					lines = append(lines, line)
				}
			}
		}
	}

	return paginateLines(lines, p.LinesPerPage), nil
}

// extractText gets the text content of a goldmark AST node. Nodes with
// inline children render from those; leaf blocks (code fences) fall back to
// their raw source lines.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.HasChildren() {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				buf.Write(t.Value(src))
				if t.HardLineBreak() || t.SoftLineBreak() {
					buf.WriteByte('\n')
				}
			} else {
				// Recurse for nested inlines and list items.
				buf.WriteString(extractText(c, src))
			}
		}
	} else if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
	}
	return strings.TrimSpace(buf.String())
}
