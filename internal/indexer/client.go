package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/dgallion1/docseg/internal/segment"
)

// Client communicates with the external structure store over HTTP. The
// segmentation engine itself performs no I/O; this hand-off at the pipeline
// boundary is the only write, and it is the caller's job to retry it.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// StoredDocument is the wire shape for PUT/GET /documents/{docID}.
type StoredDocument struct {
	DocID     string           `json:"doc_id"`
	Title     string           `json:"title,omitempty"`
	Filename  string           `json:"filename,omitempty"`
	Document  segment.Document `json:"document"`
	Report    segment.Report   `json:"report"`
	CreatedAt string           `json:"created_at,omitempty"`
}

// PutDocument stores the segmented model and its resolution report.
func (c *Client) PutDocument(ctx context.Context, doc StoredDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/documents/"+doc.DocID, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("put document: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("put document %s: status %d: %s", doc.DocID, resp.StatusCode, string(respBody))
	}
	return nil
}

// GetDocument retrieves a stored document, or nil if it does not exist.
func (c *Client) GetDocument(ctx context.Context, docID string) (*StoredDocument, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/documents/"+docID, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("get document %s: status %d: %s", docID, resp.StatusCode, string(respBody))
	}

	var doc StoredDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}

// DeleteDocument removes a stored document.
func (c *Client) DeleteDocument(ctx context.Context, docID string) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/documents/"+docID, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("delete document %s: status %d: %s", docID, resp.StatusCode, string(respBody))
	}
	return nil
}

// DocumentSummary is one entry from a document listing.
type DocumentSummary struct {
	DocID       string `json:"doc_id"`
	Title       string `json:"title,omitempty"`
	Chapters    int    `json:"chapters"`
	TotalTokens int    `json:"total_tokens"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// ListDocuments returns stored document summaries.
func (c *Client) ListDocuments(ctx context.Context, limit int) ([]DocumentSummary, error) {
	u := c.baseURL + "/documents"
	if limit > 0 {
		u += "?limit=" + strconv.Itoa(limit)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("list documents: status %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Documents []DocumentSummary `json:"documents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	return result.Documents, nil
}

// Close releases any resources (currently a no-op).
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
