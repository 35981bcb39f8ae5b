package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dgallion1/docseg/internal/corpus"
	"github.com/dgallion1/docseg/internal/parser"
	"github.com/dgallion1/docseg/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

// segmentRequest is the JSON body for POST /api/segment when the caller
// already has a page corpus from an upstream extraction service.
type segmentRequest struct {
	DocID     string        `json:"doc_id"`
	Title     string        `json:"title"`
	HasIndex  bool          `json:"has_index"`
	IndexFrom int           `json:"index_from"`
	IndexTo   int           `json:"index_to"`
	UseOracle bool          `json:"use_oracle"`
	Pages     corpus.Corpus `json:"pages"`
}

// handleSegment accepts either a multipart file upload or a JSON page
// corpus and queues a segmentation job.
func (s *Server) handleSegment(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		s.handleSegmentCorpus(w, r)
		return
	}
	s.handleSegmentUpload(w, r)
}

func (s *Server) handleSegmentCorpus(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req segmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid json body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Pages) == 0 {
		jsonError(w, "pages is required", http.StatusBadRequest)
		return
	}
	if err := req.Pages.Validate(); err != nil {
		jsonError(w, "invalid page corpus: "+err.Error(), http.StatusBadRequest)
		return
	}

	docID := req.DocID
	if docID == "" {
		raw, _ := json.Marshal(req.Pages)
		docID = pipeline.ContentHashHex(raw)[:16]
	}

	now := time.Now()
	job := &pipeline.Job{
		ID:        pipeline.ContentHashHex([]byte(fmt.Sprintf("%s-%d", docID, now.UnixNano())))[:20],
		DocID:     docID,
		Status:    pipeline.StatusQueued,
		Phase:     "queued",
		Title:     req.Title,
		HasIndex:  req.HasIndex,
		IndexFrom: req.IndexFrom,
		IndexTo:   req.IndexTo,
		UseOracle: req.UseOracle,
		CreatedAt: now,
		UpdatedAt: now,
	}
	job.SetPages(req.Pages)

	s.submit(w, job)
}

func (s *Server) handleSegmentUpload(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	docID := r.FormValue("doc_id")
	if docID == "" {
		docID = pipeline.ContentHashHex(data)[:16]
	}

	now := time.Now()
	job := &pipeline.Job{
		ID:        pipeline.ContentHashHex([]byte(fmt.Sprintf("%s-%s-%d", docID, filename, now.UnixNano())))[:20],
		DocID:     docID,
		Status:    pipeline.StatusQueued,
		Phase:     "queued",
		Filename:  filename,
		Title:     r.FormValue("title"),
		HasIndex:  r.FormValue("has_index") == "true",
		IndexFrom: formInt(r, "index_from"),
		IndexTo:   formInt(r, "index_to"),
		UseOracle: r.FormValue("use_oracle") == "true",
		CreatedAt: now,
		UpdatedAt: now,
	}
	job.SetFileData(data)

	s.submit(w, job)
}

func (s *Server) submit(w http.ResponseWriter, job *pipeline.Job) {
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"doc_id":   job.DocID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/segment/%s/status", job.ID),
	})
}

func (s *Server) handleSegmentStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}

func formInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.FormValue(key))
	if err != nil {
		return 0
	}
	return n
}
