package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/docseg/internal/corpus"
	"github.com/dgallion1/docseg/internal/indexer"
	"github.com/dgallion1/docseg/internal/parser"
	"github.com/dgallion1/docseg/internal/search"
	"github.com/dgallion1/docseg/internal/segment"
)

// Worker processes a single segmentation job.
type Worker struct {
	engine  *segment.Engine
	store   *indexer.Client
	search  *search.Index
	log     *slog.Logger
	parsing ParserConfig
}

// ParserConfig carries the upload-parsing knobs.
type ParserConfig struct {
	LinesPerPage      int
	FallbackPdftotext bool
}

func NewWorker(engine *segment.Engine, store *indexer.Client, idx *search.Index, log *slog.Logger, parsing ParserConfig) *Worker {
	return &Worker{
		engine:  engine,
		store:   store,
		search:  idx,
		log:     log,
		parsing: parsing,
	}
}

// Process runs the full segmentation pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)

	// Phase 1: obtain the page corpus — parse the upload, or take the
	// caller-supplied pages as-is.
	pages := job.Pages()
	if pages == nil {
		job.SetStatus(StatusParsing, "parsing")
		var err error
		pages, err = w.parse(job)
		if err != nil {
			log.Error("parse failed", "error", err)
			job.AddError(fmt.Sprintf("parse: %s", err))
			job.SetStatus(StatusFailed, "parsing")
			return
		}
	}

	// Phase 2: segment.
	job.SetStatus(StatusSegmenting, "segmenting")
	doc, rep, err := w.engine.Segment(ctx, pages, segment.Options{
		HasIndex:  job.HasIndex,
		IndexFrom: job.IndexFrom,
		IndexTo:   job.IndexTo,
		UseOracle: job.UseOracle,
	})
	if err != nil {
		log.Error("segmentation failed", "error", err)
		job.AddError(fmt.Sprintf("segment: %s", err))
		job.SetStatus(StatusFailed, "segmenting")
		return
	}
	job.SetResult(len(pages), len(doc.Chapters), doc.TotalTokens, rep)
	log.Info("segmented", "chapters", len(doc.Chapters), "unresolved", rep.Unresolved)

	// Phase 3: hand off to the search index and the structure store.
	job.SetStatus(StatusIndexing, "indexing")
	hadErrors := false

	if w.search != nil {
		if err := w.search.IndexDocument(job.DocID, doc); err != nil {
			log.Error("search indexing failed", "error", err)
			job.AddError(fmt.Sprintf("search: %s", err))
			hadErrors = true
		}
	}

	if w.store != nil {
		stored := indexer.StoredDocument{
			DocID:     job.DocID,
			Title:     job.Title,
			Filename:  job.Filename,
			Document:  doc,
			Report:    rep,
			CreatedAt: job.CreatedAt.Format(time.RFC3339),
		}
		if err := w.store.PutDocument(ctx, stored); err != nil {
			log.Error("store failed", "error", err)
			job.AddError(fmt.Sprintf("store: %s", err))
			hadErrors = true
		}
	}

	if hadErrors {
		job.SetStatus(StatusPartial, "done")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
}

func (w *Worker) parse(job *Job) (corpus.Corpus, error) {
	p, err := parser.ForFile(job.Filename, w.parsing.LinesPerPage)
	if err != nil {
		return nil, err
	}
	if pdfParser, ok := p.(*parser.PDFParser); ok {
		pdfParser.FallbackPdftotext = w.parsing.FallbackPdftotext
	}
	return p.Parse(bytes.NewReader(job.FileData()), job.Filename)
}
