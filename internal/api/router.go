// Package api exposes the processing pipeline over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"amifi/txn-pipeline/internal/goalimpact"
	"amifi/txn-pipeline/internal/logging"
	"amifi/txn-pipeline/internal/pipeline"
	"amifi/txn-pipeline/internal/storage"
)

// Server bundles the dependencies the HTTP handlers need.
type Server struct {
	pipeline *pipeline.Pipeline
	engine   *goalimpact.Engine
	storage  storage.Storage
	logger   logging.Logger
}

// NewServer creates the handler set over the given pipeline.
func NewServer(p *pipeline.Pipeline, engine *goalimpact.Engine, st storage.Storage, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Server{pipeline: p, engine: engine, storage: st, logger: logger}
}

// Router builds the HTTP route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/process-message", s.handleProcessMessage)
		r.Post("/process-bulk", s.handleProcessBulk)
		r.Get("/transactions", s.handleListTransactions)
		r.Get("/transactions/{id}", s.handleGetTransaction)
		r.Get("/goals", s.handleListGoals)
	})

	return r
}
