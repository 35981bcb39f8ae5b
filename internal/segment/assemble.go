package segment

import (
	"strings"

	"github.com/dgallion1/docseg/internal/corpus"
	"github.com/dgallion1/docseg/internal/resolve"
	"github.com/dgallion1/docseg/internal/token"
)

// assembleChapter builds one chapter subtree: text spans, subchapter nesting
// and per-node token counts. Each call owns exactly one top-level chapter,
// so the fan-out workers never touch each other's nodes.
func assembleChapter(c corpus.Corpus, n resolve.Node, counter token.Counter) Chapter {
	ch := Chapter{
		Title:    n.Title,
		FromPage: n.FromPage,
		ToPage:   n.ToPage,
	}
	if !n.Found {
		// Unresolved: collapsed range, no text, zero tokens.
		ch.Subchapters = assembleSubchapters(c, n, counter)
		for _, sub := range ch.Subchapters {
			ch.TokenCount += sub.TokenCount
		}
		return ch
	}

	ch.Subchapters = assembleSubchapters(c, n, counter)

	// The chapter's own text is the portion of its pages not claimed by any
	// subchapter window: the lead-in before the first subchapter plus any
	// trailing pages after the last one ends.
	claimed := make(map[int]bool)
	for _, sub := range n.Children {
		if !sub.Found {
			continue
		}
		for p := sub.FromPage; p <= sub.ToPage; p++ {
			claimed[p] = true
		}
	}

	var sb strings.Builder
	for _, p := range c.Window(n.FromPage, n.ToPage) {
		if claimed[p.Number] {
			continue
		}
		for _, line := range p.Lines {
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(line)
		}
	}
	ch.Text = sb.String()

	ch.TokenCount = counter.Count(ch.Text)
	for _, sub := range ch.Subchapters {
		ch.TokenCount += sub.TokenCount
	}
	return ch
}

func assembleSubchapters(c corpus.Corpus, parent resolve.Node, counter token.Counter) []Subchapter {
	if len(parent.Children) == 0 {
		return nil
	}
	subs := make([]Subchapter, len(parent.Children))
	for i, child := range parent.Children {
		sub := Subchapter{
			ChapterTitle: parent.Title,
			Title:        child.Title,
			FromPage:     child.FromPage,
			ToPage:       child.ToPage,
		}
		if child.Found {
			sub.Text = c.Text(child.FromPage, child.ToPage)
			sub.TokenCount = counter.Count(sub.Text)
		}
		subs[i] = sub
	}
	return subs
}
