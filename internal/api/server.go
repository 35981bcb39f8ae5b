package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/docseg/internal/config"
	"github.com/dgallion1/docseg/internal/oracle"
	"github.com/dgallion1/docseg/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for docseg.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	oracle       *oracle.Client
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. oc may be nil when the
// oracle is disabled.
func NewServer(orch *pipeline.Orchestrator, oc *oracle.Client, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		oracle:       oc,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.DocsegAPIKey, s.log))

		r.Post("/api/segment", s.handleSegment)
		r.Get("/api/segment/{jobID}/status", s.handleSegmentStatus)
		r.Get("/api/search", s.handleSearch)
		r.Get("/api/stats/oracle", s.handleOracleStats)

		r.Get("/api/documents", s.handleListDocuments)
		r.Get("/api/documents/{docID}", s.handleGetDocument)
		r.Delete("/api/documents/{docID}", s.handleDeleteDocument)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
