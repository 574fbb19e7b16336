package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/minimaxviz/internal/presentation/graph"
	"github.com/aretw0/minimaxviz/pkg/domain"
	"github.com/aretw0/minimaxviz/pkg/observability"
	"github.com/aretw0/minimaxviz/pkg/session"
)

// Server exposes a session manager over REST and SSE.
type Server struct {
	Sessions *session.Manager
	Streams  *StreamManager
	Metrics  *observability.Metrics
	Logger   *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithMetrics serves m at /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.Metrics = m
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// CreateSessionRequest is the body of POST /sessions.
type CreateSessionRequest struct {
	Graph     string             `json:"graph"`
	Algorithm domain.Algorithm   `json:"algorithm"`
	Nodes     []domain.GraphNode `json:"nodes,omitempty"`
}

// StepRequest is the optional body of POST /sessions/{id}/step.
type StepRequest struct {
	Count int `json:"count"`
}

// StepResponse is returned by POST /sessions/{id}/step.
type StepResponse struct {
	Session *domain.Session   `json:"session"`
	Diff    *domain.StateDiff `json:"diff"`
}

// NewHandler builds the router. It fails if the embedded OpenAPI document
// does not load or validate.
func NewHandler(manager *session.Manager, opts ...Option) (http.Handler, error) {
	s := &Server{
		Sessions: manager,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.Logger)
	// Diffs are published from inside the session lock, so subscribers see
	// them in step order whichever surface drove the session.
	manager.OnChange(s.broadcast)

	doc, err := LoadSpec(context.Background())
	if err != nil {
		return nil, err
	}
	router, err := newRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build OpenAPI router: %w", err)
	}

	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(Spec())
	})
	if s.Metrics != nil {
		r.Handle("/metrics", s.Metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(validateRequests(router))

		r.Get("/health", s.GetHealth)
		r.Get("/graphs", s.ListGraphs)
		r.Get("/graphs/{name}", s.GetGraph)

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.ListSessions)
			r.Post("/", s.CreateSession)
			r.Get("/{id}", s.GetSession)
			r.Delete("/{id}", s.DeleteSession)
			r.Post("/{id}/step", s.StepSession)
			r.Post("/{id}/restart", s.RestartSession)
			r.Get("/{id}/export", s.ExportSession)
			r.Get("/{id}/events", s.SubscribeEvents)
		})
	})
	return r, nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListGraphs handles GET /graphs.
func (s *Server) ListGraphs(w http.ResponseWriter, r *http.Request) {
	names := []string{}
	if loader := s.Sessions.Loader(); loader != nil {
		var err error
		if names, err = loader.List(r.Context()); err != nil {
			s.fail(w, "ListGraphs", err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"graphs": names})
}

// GetGraph handles GET /graphs/{name}.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	loader := s.Sessions.Loader()
	if loader == nil {
		s.fail(w, "GetGraph", domain.ErrGraphNotFound)
		return
	}
	doc, err := loader.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, "GetGraph", err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "mermaid":
		writeText(w, graph.GenerateMermaid(doc.Nodes, nil))
	case "dot":
		writeText(w, graph.GenerateDOT(doc.Name, doc.Nodes, nil))
	default:
		writeJSON(w, http.StatusOK, doc)
	}
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.fail(w, "ListSessions", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// CreateSession handles POST /sessions. Inline nodes win over a graph name.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	var (
		sess *domain.Session
		err  error
	)
	if len(body.Nodes) > 0 {
		name := body.Graph
		if name == "" {
			name = "inline"
		}
		sess, err = s.Sessions.Create(r.Context(), name, body.Nodes, body.Algorithm)
	} else {
		sess, err = s.Sessions.Open(r.Context(), body.Graph, body.Algorithm)
	}
	if err != nil {
		s.fail(w, "CreateSession", err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Sessions.Snapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "GetSession", err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// DeleteSession handles DELETE /sessions/{id}. Open streams are closed.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.fail(w, "DeleteSession", err)
		return
	}
	s.Streams.Close(id)
	w.WriteHeader(http.StatusNoContent)
}

// StepSession handles POST /sessions/{id}/step. The diff reaches SSE
// subscribers through the manager's change listener.
func (s *Server) StepSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	body := StepRequest{Count: 1}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			return
		}
	}

	sess, diff, err := s.Sessions.Step(r.Context(), id, body.Count)
	if err != nil {
		s.fail(w, "StepSession", err)
		return
	}
	writeJSON(w, http.StatusOK, StepResponse{Session: sess, Diff: diff})
}

// RestartSession handles POST /sessions/{id}/restart.
func (s *Server) RestartSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, err := s.Sessions.Restart(r.Context(), id)
	if err != nil {
		s.fail(w, "RestartSession", err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// ExportSession handles GET /sessions/{id}/export (Mermaid by default).
func (s *Server) ExportSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Sessions.Snapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "ExportSession", err)
		return
	}
	nodes := sess.State.GraphNodes()
	if r.URL.Query().Get("format") == "dot" {
		writeText(w, graph.GenerateDOT(sess.Graph, nodes, sess.State))
		return
	}
	writeText(w, graph.GenerateMermaid(nodes, sess.State))
}

// SubscribeEvents handles GET /sessions/{id}/events (SSE). The first event
// carries the full state; every later one the diff of a step or restart.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, errors.New("streaming not supported"))
		return
	}

	id := chi.URLParam(r, "id")
	var (
		sess   *domain.Session
		ch     <-chan string
		cancel func()
	)
	// Subscribing under the session lock means no step falls between the
	// initial state and the first diff.
	err := s.Sessions.View(r.Context(), id, func(current *domain.Session) error {
		sess = current
		ch, cancel = s.Streams.Subscribe(id)
		return nil
	})
	if err != nil {
		s.fail(w, "SubscribeEvents", err)
		return
	}
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	initial, err := json.Marshal(domain.Diff(nil, sess.State))
	if err != nil {
		s.Logger.Error("sse encode failed", "session_id", id, "error", err)
		return
	}
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	fmt.Fprintf(w, "data: %s\n\n", initial)
	flusher.Flush()
	s.Logger.Info("sse subscribed", "session_id", id)

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Info("sse client disconnected", "session_id", id)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) broadcast(id string, diff *domain.StateDiff) {
	if diff == nil {
		return
	}
	data, err := json.Marshal(diff)
	if err != nil {
		s.Logger.Error("diff encode failed", "session_id", id, "error", err)
		return
	}
	s.Streams.Broadcast(id, string(data))
}

// fail maps domain errors to status codes.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "error", err)
	} else {
		s.Logger.Warn(op+" rejected", "status", status, "error", err)
	}
	writeError(w, status, err)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrGraphNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrMalformedGraph), errors.Is(err, domain.ErrUnknownAlgorithm):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvariantViolation):
		return http.StatusConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	_, _ = io.WriteString(w, body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
