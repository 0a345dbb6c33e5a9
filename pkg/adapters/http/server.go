package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/bpmnpath"
	"github.com/aretw0/bpmnpath/internal/presentation/graph"
	"github.com/aretw0/bpmnpath/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine defines what the HTTP adapter needs from the path engine.
type Engine interface {
	FindPath(ctx context.Context, key string, q domain.Query) (*domain.Path, error)
	Graph(ctx context.Context, key string) (*domain.Graph, error)
	Watch(ctx context.Context) (<-chan string, error)
}

// Server serves path queries over HTTP.
type Server struct {
	Engine   Engine
	Logger   *slog.Logger
	Gatherer prometheus.Gatherer
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMetrics exposes the given gatherer on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// PathResponse is the body of GET /processes/{key}/path.
type PathResponse struct {
	Key   string   `json:"key"`
	From  string   `json:"from"`
	To    string   `json:"to"`
	Found bool     `json:"found"`
	Hops  int      `json:"hops"`
	Path  []string `json:"path"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		Engine: engine,
		Logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/events", s.SubscribeEvents)
	r.Route("/processes/{key}", func(r chi.Router) {
		r.Get("/path", s.GetPath)
		r.Get("/graph", s.GetGraph)
		r.Get("/mermaid", s.GetMermaid)
	})
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetPath handles GET /processes/{key}/path?from=&to=.
// A query with no path is still a 200 with found=false.
func (s *Server) GetPath(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	q := domain.Query{
		Start: r.URL.Query().Get("from"),
		End:   r.URL.Query().Get("to"),
	}

	path, err := s.Engine.FindPath(r.Context(), key, q)
	if err != nil {
		s.writeError(w, "FindPath", err)
		return
	}

	nodes := path.Nodes
	if nodes == nil {
		nodes = []string{}
	}
	s.writeJSON(w, http.StatusOK, PathResponse{
		Key:   key,
		From:  path.Start,
		To:    path.End,
		Found: path.Found(),
		Hops:  path.Hops(),
		Path:  nodes,
	})
}

// GetGraph handles GET /processes/{key}/graph.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	g, err := s.Engine.Graph(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		s.writeError(w, "Graph", err)
		return
	}
	s.writeJSON(w, http.StatusOK, g)
}

// GetMermaid handles GET /processes/{key}/mermaid.
// When from and to are both given, the path between them is highlighted.
func (s *Server) GetMermaid(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	g, err := s.Engine.Graph(r.Context(), key)
	if err != nil {
		s.writeError(w, "Graph", err)
		return
	}

	var overlay *graph.GraphOverlay
	from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if from != "" && to != "" {
		path, err := s.Engine.FindPath(r.Context(), key, domain.Query{Start: from, End: to})
		if err != nil {
			s.writeError(w, "FindPath", err)
			return
		}
		overlay = &graph.GraphOverlay{PathNodes: path.Nodes}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(g, overlay))
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "bpmnpath-http",
		"version": strings.TrimSpace(bpmnpath.Version),
	})
}

// SubscribeEvents handles the GET /events request (SSE).
// Each event carries the key of a definition that changed at the source.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	events, err := s.Engine.Watch(r.Context())
	if err != nil {
		s.writeJSON(w, http.StatusNotImplemented, ErrorResponse{Error: err.Error()})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Info("SSE Client Disconnected")
			return
		case key, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: changed\ndata: %s\n\n", key)
			flusher.Flush()
		}
	}
}

// writeError maps domain errors onto status codes.
func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrDefinitionNotFound):
		status = http.StatusNotFound
	}

	if status >= http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "err", err)
	} else {
		s.Logger.Warn(op+" rejected", "err", err, "status", status)
	}
	s.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err)
	}
}
