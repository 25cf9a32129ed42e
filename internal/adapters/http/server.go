package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/aretw0/formica/internal/presentation/graph"
	"github.com/aretw0/formica/pkg/codec"
	"github.com/aretw0/formica/pkg/domain"
	"github.com/aretw0/formica/pkg/tree"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine defines the evolution operations served over HTTP.
type Engine interface {
	GeneratePopulation(n, minLevel, maxLevel int) ([]*tree.Tree, error)
	BreedPopulation(ctx context.Context, name string, n int, rate float64) ([]*tree.Tree, error)
	SavePopulation(ctx context.Context, name string, trees []*tree.Tree) error
	LoadPopulation(ctx context.Context, name string) ([]*tree.Tree, error)
	ListPopulations(ctx context.Context) ([]string, error)
	DeletePopulation(ctx context.Context, name string) error
}

// Defaults holds the parameters used when a request omits them, and the largest
// values a request may ask for.
type Defaults struct {
	Size         int
	MinLevel     int
	MaxLevel     int
	MutationRate float64

	// LevelLimit bounds max. Zero means 16.
	LevelLimit int
	// SizeLimit bounds size and count. Zero means 10000.
	SizeLimit int
}

const (
	defaultLevelLimit = 16
	defaultSizeLimit  = 10000
)

// Server serves populations held by an Engine.
// Engine calls are serialised because the genetic operators share one random source.
type Server struct {
	Engine   Engine
	Defaults Defaults
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger

	mu sync.Mutex
}

// Option configures the handler.
type Option func(*Server)

// WithDefaults sets request defaults.
func WithDefaults(d Defaults) Option {
	return func(s *Server) {
		s.Defaults = d
	}
}

// WithGatherer exposes g on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		Engine:   engine,
		Defaults: Defaults{Size: 20, MinLevel: 2, MaxLevel: 5, MutationRate: 0.05},
		Gatherer: prometheus.DefaultGatherer,
		Logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Defaults.LevelLimit <= 0 {
		s.Defaults.LevelLimit = defaultLevelLimit
	}
	if s.Defaults.SizeLimit <= 0 {
		s.Defaults.SizeLimit = defaultSizeLimit
	}

	r := chi.NewRouter()
	r.Get("/populations", s.List)
	r.Post("/populations", s.Create)
	r.Route("/populations/{name}", func(r chi.Router) {
		r.Get("/", s.Get)
		r.Post("/", s.Create)
		r.Delete("/", s.Delete)
		r.Post("/breed", s.Breed)
		r.Get("/{index}/graph", s.Graph)
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	return r
}

// List handles GET /populations.
func (s *Server) List(w http.ResponseWriter, r *http.Request) {
	names, err := s.Engine.ListPopulations(r.Context())
	if err != nil {
		s.fail(w, "List", err)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"populations": names})
}

// Get handles GET /populations/{name}, answering with the JSON document.
func (s *Server) Get(w http.ResponseWriter, r *http.Request) {
	trees, err := s.Engine.LoadPopulation(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, "Get", err)
		return
	}
	data, err := codec.EncodeJSON(trees)
	if err != nil {
		s.fail(w, "Get", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// Create handles POST /populations[/{name}]?size=&min=&max=.
// Without a name a random one is assigned.
func (s *Server) Create(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		name = uuid.NewString()
	}

	q := queryReader{values: r.URL.Query()}
	size := q.Int("size", s.Defaults.Size)
	minLevel := q.Int("min", s.Defaults.MinLevel)
	maxLevel := q.Int("max", s.Defaults.MaxLevel)
	if q.err != nil {
		http.Error(w, q.err.Error(), http.StatusBadRequest)
		return
	}
	if size < 0 || size > s.Defaults.SizeLimit {
		http.Error(w, fmt.Sprintf("size must be within [0,%d]", s.Defaults.SizeLimit), http.StatusBadRequest)
		return
	}
	if maxLevel > s.Defaults.LevelLimit {
		http.Error(w, fmt.Sprintf("max must not exceed %d", s.Defaults.LevelLimit), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	trees, err := s.Engine.GeneratePopulation(size, minLevel, maxLevel)
	s.mu.Unlock()
	if err != nil {
		s.fail(w, "Create", err)
		return
	}
	if err := s.Engine.SavePopulation(r.Context(), name, trees); err != nil {
		s.fail(w, "Create", err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]any{"name": name, "size": len(trees)})
}

// Delete handles DELETE /populations/{name}.
func (s *Server) Delete(w http.ResponseWriter, r *http.Request) {
	if err := s.Engine.DeletePopulation(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.fail(w, "Delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Breed handles POST /populations/{name}/breed?count=&rate=, appending offspring.
func (s *Server) Breed(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	q := queryReader{values: r.URL.Query()}
	count := q.Int("count", s.Defaults.Size)
	rate := q.Float("rate", s.Defaults.MutationRate)
	if q.err != nil {
		http.Error(w, q.err.Error(), http.StatusBadRequest)
		return
	}
	if count < 0 || count > s.Defaults.SizeLimit {
		http.Error(w, fmt.Sprintf("count must be within [0,%d]", s.Defaults.SizeLimit), http.StatusBadRequest)
		return
	}
	// NaN fails both comparisons.
	if !(rate >= 0 && rate <= 1) {
		http.Error(w, "rate must be within [0,1]", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	all, err := s.Engine.BreedPopulation(r.Context(), name, count, rate)
	s.mu.Unlock()
	if err != nil {
		s.fail(w, "Breed", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"name": name, "size": len(all), "added": count})
}

// Graph handles GET /populations/{name}/{index}/graph with a Mermaid flowchart.
func (s *Server) Graph(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		http.Error(w, "index must be a non-negative integer", http.StatusBadRequest)
		return
	}
	trees, err := s.Engine.LoadPopulation(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, "Graph", err)
		return
	}
	if index >= len(trees) {
		http.Error(w, fmt.Sprintf("population has %d trees", len(trees)), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(graph.GenerateMermaid(trees[index], nil)))
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrPopulationNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidLevels), errors.Is(err, domain.ErrInvalidName):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "error", err)
	} else {
		s.Logger.Warn(op+" rejected", "error", err)
	}
	http.Error(w, err.Error(), status)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}
