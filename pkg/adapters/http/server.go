package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/attlookup"
	"github.com/aretw0/attlookup/internal/logging"
	"github.com/aretw0/attlookup/internal/presentation/graph"
	"github.com/aretw0/attlookup/pkg/domain"
	"github.com/aretw0/attlookup/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const maxBodyBytes = 1 << 20

// Server exposes a Transducer over HTTP.
type Server struct {
	Engine  ports.Transducer
	logger  *slog.Logger
	metrics http.Handler
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the request error logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts h (usually promhttp.Handler()) at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine ports.Transducer, opts ...Option) http.Handler {
	server := &Server{
		Engine: engine,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", server.Health)
	if server.metrics != nil {
		r.Handle("/metrics", server.metrics)
	}
	r.Route("/automata", func(r chi.Router) {
		r.Get("/", server.ListAutomata)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", server.DescribeAutomaton)
			r.Get("/apply", server.Apply)
			r.Post("/apply", server.Apply)
			r.Post("/tokenize", server.Tokenize)
			r.Get("/graph", server.Graph)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ApplyRequest is the body of POST /automata/{name}/apply.
type ApplyRequest struct {
	Word      string           `json:"word"`
	Direction domain.Direction `json:"direction"`
	Limit     int              `json:"limit,omitempty"`
	Tokens    bool             `json:"tokens,omitempty"`
}

// TokenizeRequest is the body of POST /automata/{name}/tokenize.
type TokenizeRequest struct {
	Word string `json:"word"`
}

// TokenizeResponse lists the segments of a word.
type TokenizeResponse struct {
	Tokens []string `json:"tokens"`
}

// AutomatonInfo summarizes a loaded automaton.
type AutomatonInfo struct {
	Name         string         `json:"name"`
	States       int            `json:"states"`
	Arcs         int            `json:"arcs"`
	Finals       int            `json:"finals"`
	Start        *int           `json:"start,omitempty"`
	Weighted     bool           `json:"weighted"`
	AlphabetSize int            `json:"alphabet_size"`
	Symbols      domain.Symbols `json:"symbols"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Line  int    `json:"line,omitempty"`
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": strings.TrimSpace(attlookup.Version),
	})
}

// ListAutomata handles GET /automata.
func (s *Server) ListAutomata(w http.ResponseWriter, r *http.Request) {
	names, err := s.Engine.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"automata": names})
}

// DescribeAutomaton handles GET /automata/{name}.
func (s *Server) DescribeAutomaton(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	a, err := s.Engine.Automaton(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	info := AutomatonInfo{
		Name:         name,
		States:       a.NumStates(),
		Arcs:         a.NumArcs(),
		Finals:       a.NumFinals(),
		Weighted:     a.IsWeighted(),
		AlphabetSize: len(a.Alphabet()),
		Symbols:      a.Symbols(),
	}
	if start, ok := a.Start(); ok {
		info.Start = &start
	}
	s.writeJSON(w, http.StatusOK, info)
}

// Apply handles POST /automata/{name}/apply and its GET form
// (?word=...&direction=up&limit=5&tokens=true).
func (s *Server) Apply(w http.ResponseWriter, r *http.Request) {
	var body ApplyRequest
	if r.Method == http.MethodGet {
		if err := parseApplyQuery(r, &body); err != nil {
			s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
	} else if !s.decodeBody(w, r, &body) {
		return
	}

	res, err := s.Engine.Lookup(r.Context(), domain.LookupRequest{
		Automaton:  chi.URLParam(r, "name"),
		Word:       body.Word,
		Direction:  body.Direction,
		Limit:      body.Limit,
		KeepTokens: body.Tokens,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func parseApplyQuery(r *http.Request, body *ApplyRequest) error {
	q := r.URL.Query()
	body.Word = q.Get("word")

	dir, err := domain.ParseDirection(q.Get("direction"))
	if err != nil {
		return err
	}
	body.Direction = dir

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid limit %q", v)
		}
		body.Limit = n
	}
	if v := q.Get("tokens"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid tokens %q", v)
		}
		body.Tokens = b
	}
	return nil
}

// Tokenize handles POST /automata/{name}/tokenize.
func (s *Server) Tokenize(w http.ResponseWriter, r *http.Request) {
	var body TokenizeRequest
	if !s.decodeBody(w, r, &body) {
		return
	}
	tokens, err := s.Engine.Tokenize(r.Context(), chi.URLParam(r, "name"), body.Word)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if tokens == nil {
		tokens = []string{}
	}
	s.writeJSON(w, http.StatusOK, TokenizeResponse{Tokens: tokens})
}

// Graph handles GET /automata/{name}/graph?format=mermaid|dot&max_states=N.
func (s *Server) Graph(w http.ResponseWriter, r *http.Request) {
	a, err := s.Engine.Automaton(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var opts graph.Options
	if v := r.URL.Query().Get("max_states"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid max_states %q", v)})
			return
		}
		opts.MaxStates = n
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "mermaid":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(graph.GenerateMermaid(a, opts)))
	case "dot":
		w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
		_, _ = w.Write([]byte(graph.GenerateDOT(a, opts)))
	default:
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("unknown format %q", format)})
	}
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

// StatusFor maps engine errors to HTTP status codes.
func StatusFor(err error) int {
	var fe *domain.FormatError
	switch {
	case errors.Is(err, domain.ErrAutomatonNotFound):
		return http.StatusNotFound
	case errors.As(err, &fe):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidDirection):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	resp := ErrorResponse{Error: err.Error()}
	var fe *domain.FormatError
	if errors.As(err, &fe) {
		resp.Line = fe.Line
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	s.writeJSON(w, status, resp)
}

// writeJSON encodes v before touching the response so that a value that
// cannot be encoded still yields a 500 with a JSON error body.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("response encode failed", "error", err)
		status = http.StatusInternalServerError
		body, _ = json.Marshal(ErrorResponse{Error: "response encode failed: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// ListenAndServe serves h on addr until ctx is done, then shuts down gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logger.Info("shutdown signal received, shutting down server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}
