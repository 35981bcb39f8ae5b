package segment

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/docseg/internal/corpus"
	"github.com/dgallion1/docseg/internal/index"
	"github.com/dgallion1/docseg/internal/resolve"
	"github.com/dgallion1/docseg/internal/token"
)

// FallbackTitle names the single chapter produced when no index can be
// found and the oracle is unavailable.
const FallbackTitle = "Complete Document"

// Oracle proposes a candidate index for a document that has no detectable
// table of contents. Page hints in the result are untrusted.
type Oracle interface {
	ProposeIndex(ctx context.Context, c corpus.Corpus) ([]index.Candidate, error)
}

// Options control one segmentation run.
type Options struct {
	// Explicit index range, passed through to discovery.
	HasIndex  bool
	IndexFrom int
	IndexTo   int
	// UseOracle permits consulting the proposal oracle when discovery finds
	// nothing. Without it (or without an oracle) the run degrades to a
	// single-chapter document.
	UseOracle bool
}

// Engine runs the segmentation pipeline: discovery, boundary resolution,
// per-chapter assembly, merge and aggregation. It is a pure transformation
// over the in-memory corpus; the only I/O is the one oracle call at the
// pipeline boundary.
type Engine struct {
	counter token.Counter
	oracle  Oracle
	log     *slog.Logger
	workers int
}

// New wires an engine. counter and log are required; oracle may be nil.
func New(counter token.Counter, oracle Oracle, log *slog.Logger, workers int) *Engine {
	if workers <= 0 {
		workers = 4
	}
	return &Engine{counter: counter, oracle: oracle, log: log, workers: workers}
}

// Segment produces the chapter model for one document. An empty corpus
// yields an empty model; broken page numbering is the only fatal input.
func (e *Engine) Segment(ctx context.Context, c corpus.Corpus, opts Options) (Document, Report, error) {
	var rep Report

	if c.Empty() {
		return Document{Chapters: []Chapter{}}, rep, nil
	}
	if err := c.Validate(); err != nil {
		return Document{}, rep, fmt.Errorf("invalid page corpus: %w", err)
	}

	cands, rep2, indexEnd := e.discover(ctx, c, opts)
	rep = rep2

	if rep.Source == index.SourceFallback {
		// The fallback title never occurs in the text; span the whole
		// document directly instead of searching for it.
		node := resolve.Node{Title: FallbackTitle, FromPage: c.FirstPage(), ToPage: c.LastPage(), Found: true}
		doc := finalize([]Chapter{assembleChapter(c, node, e.counter)})
		e.log.Info("segmented document without index", "total_tokens", doc.TotalTokens)
		return doc, rep, nil
	}

	// Titles always occur inside the index pages as entry lines, so the
	// boundary scan starts on the first page after the index.
	searchFrom := c.FirstPage()
	if indexEnd >= searchFrom {
		searchFrom = indexEnd + 1
	}
	res := resolve.Resolve(c, cands, searchFrom)
	rep.Resolved = res.Resolved
	rep.Unresolved = res.Unresolved

	chapters, err := e.assembleAll(ctx, c, res.Nodes)
	if err != nil {
		return Document{}, rep, err
	}

	merged, duplicates := mergeChapters(chapters)
	rep.Merged = duplicates

	doc := finalize(merged)
	e.log.Info("segmented document",
		"chapters", len(doc.Chapters),
		"total_tokens", doc.TotalTokens,
		"resolved", rep.Resolved,
		"unresolved", rep.Unresolved,
		"merged", len(rep.Merged),
		"source", rep.Source,
	)
	return doc, rep, nil
}

// discover obtains the candidate index: explicit range or heuristic first,
// then the oracle, and finally the whole-document fallback. The last return
// is the final page of the index source, 0 when the candidates did not come
// from pages of the document itself.
func (e *Engine) discover(ctx context.Context, c corpus.Corpus, opts Options) ([]index.Candidate, Report, int) {
	var rep Report

	disc, ok := index.Discover(c, index.Options{
		HasIndex: opts.HasIndex,
		FromPage: opts.IndexFrom,
		ToPage:   opts.IndexTo,
	})
	rep.Warnings = disc.Warnings
	for _, w := range disc.Warnings {
		e.log.Warn(w)
	}
	if ok {
		rep.Source = disc.Source
		rep.IndexPage = disc.IndexPage
		return disc.Candidates, rep, disc.IndexEnd
	}

	if opts.UseOracle && e.oracle != nil {
		cands, err := e.oracle.ProposeIndex(ctx, c)
		if err != nil {
			e.log.Warn("index oracle failed, falling back to single chapter", "error", err)
			rep.Warnings = append(rep.Warnings, "index oracle failed: "+err.Error())
		} else if len(cands) > 0 {
			rep.Source = index.SourceOracle
			return cands, rep, 0
		}
	}

	rep.Source = index.SourceFallback
	return []index.Candidate{{Title: FallbackTitle}}, rep, 0
}

// assembleAll extracts text and token counts per chapter on a bounded
// worker pool. Once resolution has produced disjoint page ranges, each
// top-level chapter's subtree is independent, so the fan-out is safe; the
// merge pass runs strictly after the join.
func (e *Engine) assembleAll(ctx context.Context, c corpus.Corpus, nodes []resolve.Node) ([]Chapter, error) {
	if len(nodes) == 0 {
		return []Chapter{}, nil
	}

	chapters := make([]Chapter, len(nodes))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, node := range nodes {
		i, node := i, node
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			chapters[i] = assembleChapter(c, node, e.counter)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return chapters, nil
}
