// Package api exposes the adaptive opponent over HTTP: session lifecycle,
// the play entry point, history and probability queries, and a websocket
// round feed.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rpslab/rps-opponent-go/internal/engine"
	"github.com/rpslab/rps-opponent-go/internal/store"
)

// Server handles HTTP requests. Network state lives in the registry; the
// store holds the durable round history.
type Server struct {
	db        *store.DB
	sessions  *engine.Registry
	hub       *Hub
	logger    *log.Logger
	startTime time.Time
}

// NewServer creates the API server.
func NewServer(db *store.DB) *Server {
	return &Server{
		db:        db,
		sessions:  engine.NewRegistry(),
		hub:       NewHub(),
		logger:    log.New(os.Stdout, "[API] ", log.LstdFlags|log.Lshortfile),
		startTime: time.Now(),
	}
}

// Routes sets up the HTTP routes with middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", s.handleHealth)
	r.Get("/health/live", s.handleLiveness)
	r.Get("/health/ready", s.handleReadiness)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Post("/play", s.handlePlay)
			r.Get("/history", s.handleHistory)
			r.Get("/probs", s.handleProbs)
			r.Get("/stats", s.handleStats)
			r.Get("/ws", s.handleSessionWS)
		})
		r.Post("/strategies", s.handleSaveStrategy)
		r.Get("/strategies", s.handleListStrategies)
		r.Get("/strategies/{name}", s.handleGetStrategy)
	})

	return r
}

// writeJSON writes a JSON response with proper headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Engine-Version", EngineVersion)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// writeError writes a structured error response.
func (s *Server) writeError(w http.ResponseWriter, status int, errType, message string, context map[string]any) {
	s.writeJSON(w, status, EngineError{
		Type:    errType,
		Message: message,
		Context: context,
	})
}
