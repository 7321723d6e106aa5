package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/aretw0/gestures"
	"github.com/aretw0/gestures/internal/logging"
	"github.com/aretw0/gestures/pkg/config"
	"github.com/aretw0/gestures/pkg/domain"
	"github.com/aretw0/gestures/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultOutboxSize bounds the notifications kept per surface between polls.
const DefaultOutboxSize = 1024

// DefaultJournalLimit is the number of journal entries returned when the
// request does not set limit.
const DefaultJournalLimit = 50

// Engine defines the interface of the gestures core used by the API.
type Engine interface {
	AttachWithConfig(id string, cfg domain.Config, observer ports.Observer) error
	Detach(id string) error
	Surfaces() []string
	Dispatch(id string, ev domain.InputEvent) (domain.Effect, error)
	DispatchAround(id string, ev domain.InputEvent, enter, exit func()) (domain.Effect, error)
	Snapshot(id string) (domain.Snapshot, error)
	Config() domain.Config
	Reconfigure(cfg domain.Config) error
	Journal() ports.Journal
	Scheduler() ports.Scheduler
}

var _ Engine = (*gestures.Engine)(nil)

// Notification is an observer callback queued for a remote host.
type Notification struct {
	Surface string    `json:"surface"`
	Kind    string    `json:"kind"`
	Value   string    `json:"value"`
	At      time.Time `json:"at"`
}

// EventResponse is returned for every dispatched event.
type EventResponse struct {
	Effect        domain.Effect  `json:"effect"`
	Notifications []Notification `json:"notifications"`
}

// Server exposes an Engine over HTTP. Remote hosts attach surfaces, post
// normalized events and collect the callbacks by polling or streaming.
type Server struct {
	Engine  Engine
	Streams *StreamManager

	gatherer   prometheus.Gatherer
	logger     *slog.Logger
	outboxSize int

	mu       sync.Mutex
	outboxes map[string]*outbox
}

// Option configures a Server.
type Option func(*Server)

// WithGatherer serves the gathered metrics on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithOutboxSize bounds the notifications queued per surface. The oldest are
// dropped first.
func WithOutboxSize(n int) Option {
	return func(s *Server) {
		s.outboxSize = n
	}
}

// NewServer creates a server for the engine.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		Engine:     engine,
		Streams:    NewStreamManager(),
		outboxSize: DefaultOutboxSize,
		outboxes:   make(map[string]*outbox),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	s.Streams.logger = s.logger
	if s.outboxSize <= 0 {
		s.outboxSize = DefaultOutboxSize
	}
	return s
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	return NewServer(engine, opts...).Handler()
}

// Handler returns the routes of the API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	r.Get("/config", s.GetConfig)
	r.Put("/config", s.PutConfig)
	r.Route("/surfaces", func(r chi.Router) {
		r.Get("/", s.ListSurfaces)
		r.Route("/{id}", func(r chi.Router) {
			r.Post("/", s.Attach)
			r.Get("/", s.GetSnapshot)
			r.Delete("/", s.Detach)
			r.Post("/events", s.PostEvent)
			r.Get("/notifications", s.GetNotifications)
			r.Get("/stream", s.SubscribeEvents)
			r.Get("/journal", s.GetJournal)
			r.Delete("/journal", s.ClearJournal)
		})
	})
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"app":      "gestures-http",
		"version":  gestures.Version,
		"surfaces": len(s.Engine.Surfaces()),
	})
}

// GetConfig handles the GET /config request.
func (s *Server) GetConfig(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Engine.Config())
}

// PutConfig handles the PUT /config request. The body is a preference map
// applied over the current configuration and re-applied to every surface.
func (s *Server) PutConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.configFromBody(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.Engine.Reconfigure(cfg); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("configuration reloaded", "surfaces", len(s.Engine.Surfaces()))
	s.writeJSON(w, http.StatusOK, cfg)
}

// ListSurfaces handles the GET /surfaces request.
func (s *Server) ListSurfaces(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string][]string{"surfaces": s.Engine.Surfaces()})
}

// Attach handles the POST /surfaces/{id} request. An optional preference map
// body overrides the engine configuration for this surface.
func (s *Server) Attach(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	cfg, err := s.configFromBody(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	box := newOutbox(s.outboxSize)
	if err := s.Engine.AttachWithConfig(id, cfg, &surfaceObserver{server: s, surface: id, box: box}); err != nil {
		s.writeError(w, err)
		return
	}
	s.mu.Lock()
	s.outboxes[id] = box
	s.mu.Unlock()
	s.logger.Debug("surface attached", "surface", id)

	snap, err := s.Engine.Snapshot(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, snap)
}

// Detach handles the DELETE /surfaces/{id} request.
func (s *Server) Detach(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Engine.Detach(id); err != nil {
		s.writeError(w, err)
		return
	}
	s.mu.Lock()
	delete(s.outboxes, id)
	s.mu.Unlock()
	s.logger.Debug("surface detached", "surface", id)
	w.WriteHeader(http.StatusNoContent)
}

// GetSnapshot handles the GET /surfaces/{id} request.
func (s *Server) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Engine.Snapshot(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snap)
}

// PostEvent handles the POST /surfaces/{id}/events request. The response
// carries the effect and the callbacks this event produced. Timer firings
// stay queued for the notifications endpoint.
func (s *Server) PostEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var ev domain.InputEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", domain.ErrUnknownEvent, err))
		return
	}
	var (
		eff      domain.Effect
		err      error
		captured []Notification
	)
	if box := s.outbox(id); box != nil {
		eff, err = s.Engine.DispatchAround(id, ev, box.capture, func() { captured = box.release() })
	} else {
		// Attached outside the API: callbacks go to the host's own observer.
		eff, err = s.Engine.Dispatch(id, ev)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	if captured == nil {
		captured = []Notification{}
	}
	s.writeJSON(w, http.StatusOK, EventResponse{
		Effect:        eff,
		Notifications: captured,
	})
}

// GetNotifications handles the GET /surfaces/{id}/notifications request.
// It drains callbacks produced since the last drain, including timer firings.
func (s *Server) GetNotifications(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.Engine.Snapshot(id); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]Notification{"notifications": s.drain(id)})
}

// GetJournal handles the GET /surfaces/{id}/journal request.
func (s *Server) GetJournal(w http.ResponseWriter, r *http.Request) {
	journal := s.Engine.Journal()
	if journal == nil {
		http.Error(w, "journal not configured", http.StatusNotImplemented)
		return
	}
	limit := DefaultJournalLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid limit %q", raw), http.StatusBadRequest)
			return
		}
		limit = n
	}
	entries, err := journal.List(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.JournalEntry{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]domain.JournalEntry{"entries": entries})
}

// ClearJournal handles the DELETE /surfaces/{id}/journal request.
func (s *Server) ClearJournal(w http.ResponseWriter, r *http.Request) {
	journal := s.Engine.Journal()
	if journal == nil {
		http.Error(w, "journal not configured", http.StatusNotImplemented)
		return
	}
	if err := journal.Clear(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) configFromBody(r *http.Request) (domain.Config, error) {
	cfg := s.Engine.Config()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return cfg, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return cfg, nil
	}
	prefs := map[string]any{}
	if err := json.Unmarshal(body, &prefs); err != nil {
		return cfg, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	if err := config.DecodeInto(&cfg, prefs); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (s *Server) outbox(id string) *outbox {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outboxes[id]
}

func (s *Server) drain(id string) []Notification {
	if box := s.outbox(id); box != nil {
		return box.drain()
	}
	return []Notification{}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSurfaceNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrSurfaceExists):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidConfig), errors.Is(err, domain.ErrUnknownEvent):
		status = http.StatusBadRequest
	default:
		s.logger.Error("request failed", "error", err)
	}
	http.Error(w, err.Error(), status)
}
