// Package server exposes the agent over HTTP: a question endpoint, the
// demo frontend, and the generated chart artifacts.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/askcart/askcart/pkg/answer"
	"github.com/askcart/askcart/pkg/dataset"
	"github.com/askcart/askcart/pkg/question"
	"github.com/askcart/askcart/pkg/resolver"
	"github.com/askcart/askcart/pkg/store"
	"github.com/askcart/askcart/pkg/viz"
)

// Server wires the resolution pipeline, executor, and presentation
// layers behind an HTTP API.
type Server struct {
	pipeline  *resolver.Pipeline
	store     *store.Store
	formatter *answer.Formatter
	renderer  *viz.Renderer
	staticDir string
	router    chi.Router
}

// New assembles the HTTP server.
func New(pipeline *resolver.Pipeline, st *store.Store, renderer *viz.Renderer, staticDir string) *Server {
	s := &Server{
		pipeline:  pipeline,
		store:     st,
		formatter: answer.NewFormatter(),
		renderer:  renderer,
		staticDir: staticDir,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors)

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Get("/examples", s.handleExamples)
	r.Post("/ask", s.handleAsk)
	r.Get("/visualizations/{filename}", s.handleVisualization)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(s.staticDir))))

	s.router = r
}

// Handler returns the HTTP handler for mounting or testing.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server on addr.
func (s *Server) ListenAndServe(addr string) error {
	log.Printf("[server] listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// askRequest is the /ask request payload.
type askRequest struct {
	Question string `json:"question"`
}

// askResponse is the /ask response payload.
type askResponse struct {
	Question      string `json:"question"`
	SQLQuery      string `json:"sql_query"`
	Source        string `json:"source"`
	Answer        string `json:"answer"`
	Success       bool   `json:"success"`
	Timestamp     string `json:"timestamp"`
	Visualization string `json:"visualization,omitempty"`
	Error         string `json:"error,omitempty"`
}

// handleAsk resolves, executes, formats, and visualizes one question.
// The response always carries an answer string; execution failures are
// reported in the body rather than failing the request.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "No question provided")
		return
	}

	q, ok := question.Normalize(req.Question)
	if !ok {
		writeError(w, http.StatusBadRequest, "Empty question provided")
		return
	}

	log.Printf("[server] received question: %s", q)

	resolved, err := s.pipeline.Resolve(r.Context(), q)
	if err != nil {
		var unresolvable *resolver.UnresolvableError
		if errors.As(err, &unresolvable) {
			writeError(w, http.StatusBadRequest,
				"Could not understand the question. Please try rephrasing or use one of the demo questions.")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error: "+err.Error())
		return
	}

	log.Printf("[server] resolved query (%s): %s", resolved.Source, resolved.Query)

	result := s.store.Execute(r.Context(), resolved.Query)
	if !result.OK() {
		log.Printf("[server] query execution failed: %s", result.Err)
	}

	resp := askResponse{
		Question:  q,
		SQLQuery:  resolved.Query,
		Source:    string(resolved.Source),
		Answer:    s.formatter.Format(result, q),
		Success:   result.OK(),
		Timestamp: time.Now().Format(time.RFC3339),
		Error:     result.Err,
	}

	if name := s.renderer.Render(result, q); name != "" {
		resp.Visualization = "/visualizations/" + name
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"message":   "askcart agent is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleExamples lists demo questions the fallback rules can always
// answer.
func (s *Server) handleExamples(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"examples": dataset.ExampleQuestions(),
	})
}

// handleVisualization serves a chart artifact by filename.
func (s *Server) handleVisualization(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")
	// Artifact names never contain path separators; reject anything
	// that tries to escape the output directory.
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, filepath.Join(s.renderer.Dir(), name))
}

// handleIndex serves the frontend entry point.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(s.staticDir, "index.html"))
}

// cors allows the frontend to be served from a different origin.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[server] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error":   msg,
		"success": false,
	})
}
