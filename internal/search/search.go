package search

import (
	"fmt"
	"os"

	"github.com/blevesearch/bleve/v2"

	"github.com/dgallion1/docseg/internal/segment"
)

// Entry is one indexed node: a chapter or a subchapter.
type Entry struct {
	DocID    string `json:"doc_id"`
	Kind     string `json:"kind"` // "chapter" or "subchapter"
	Chapter  string `json:"chapter"`
	Title    string `json:"title"`
	Text     string `json:"text"`
	FromPage int    `json:"from_page"`
	ToPage   int    `json:"to_page"`
	Tokens   int    `json:"tokens"`
}

// Hit is one search result.
type Hit struct {
	ID       string  `json:"id"`
	Score    float64 `json:"score"`
	DocID    string  `json:"doc_id"`
	Kind     string  `json:"kind"`
	Chapter  string  `json:"chapter"`
	Title    string  `json:"title"`
	FromPage int     `json:"from_page"`
	ToPage   int     `json:"to_page"`
}

// Index is a bleve full-text index over segmented chapters.
type Index struct {
	idx bleve.Index
}

// Open opens or creates the index at path. An empty path creates an
// in-memory index, which is what the tests use.
func Open(path string) (*Index, error) {
	mapping := bleve.NewIndexMapping()
	if path == "" {
		idx, err := bleve.NewMemOnly(mapping)
		if err != nil {
			return nil, fmt.Errorf("create in-memory index: %w", err)
		}
		return &Index{idx: idx}, nil
	}

	if _, err := os.Stat(path); err == nil {
		idx, err := bleve.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open index %s: %w", path, err)
		}
		return &Index{idx: idx}, nil
	}

	idx, err := bleve.New(path, mapping)
	if err != nil {
		return nil, fmt.Errorf("create index %s: %w", path, err)
	}
	return &Index{idx: idx}, nil
}

// IndexDocument indexes every chapter and subchapter of a segmented
// document in one batch.
func (x *Index) IndexDocument(docID string, doc segment.Document) error {
	batch := x.idx.NewBatch()
	for _, ch := range doc.Chapters {
		id := docID + "/" + ch.ID
		entry := Entry{
			DocID:    docID,
			Kind:     "chapter",
			Chapter:  ch.Title,
			Title:    ch.Title,
			Text:     ch.Text,
			FromPage: ch.FromPage,
			ToPage:   ch.ToPage,
			Tokens:   ch.TokenCount,
		}
		if err := batch.Index(id, entry); err != nil {
			return fmt.Errorf("index chapter %s: %w", id, err)
		}
		for i, sub := range ch.Subchapters {
			subID := fmt.Sprintf("%s/%s/%d", docID, ch.ID, i)
			subEntry := Entry{
				DocID:    docID,
				Kind:     "subchapter",
				Chapter:  sub.ChapterTitle,
				Title:    sub.Title,
				Text:     sub.Text,
				FromPage: sub.FromPage,
				ToPage:   sub.ToPage,
				Tokens:   sub.TokenCount,
			}
			if err := batch.Index(subID, subEntry); err != nil {
				return fmt.Errorf("index subchapter %s: %w", subID, err)
			}
		}
	}
	return x.idx.Batch(batch)
}

// Search runs a match query over the indexed entries.
func (x *Index) Search(q string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 10
	}
	query := bleve.NewMatchQuery(q)
	req := bleve.NewSearchRequestOptions(query, limit, 0, false)
	req.Fields = []string{"*"}

	result, err := x.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	hits := make([]Hit, 0, len(result.Hits))
	for _, h := range result.Hits {
		hit := Hit{ID: h.ID, Score: h.Score}
		hit.DocID, _ = h.Fields["doc_id"].(string)
		hit.Kind, _ = h.Fields["kind"].(string)
		hit.Chapter, _ = h.Fields["chapter"].(string)
		hit.Title, _ = h.Fields["title"].(string)
		hit.FromPage = fieldInt(h.Fields["from_page"])
		hit.ToPage = fieldInt(h.Fields["to_page"])
		hits = append(hits, hit)
	}
	return hits, nil
}

// DocCount returns the number of indexed entries.
func (x *Index) DocCount() (uint64, error) {
	return x.idx.DocCount()
}

// Close closes the underlying index.
func (x *Index) Close() error {
	return x.idx.Close()
}

// fieldInt converts a stored numeric field; bleve returns float64.
func fieldInt(v any) int {
	f, ok := v.(float64)
	if !ok {
		return 0
	}
	return int(f)
}
