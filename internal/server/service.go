// Package server exposes assessments, reports and calculators over a local
// HTTP API. Each browser gets its own session through a signed cookie.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/guardianshield/shieldplan/internal/logger"
	"github.com/guardianshield/shieldplan/internal/session"
	"github.com/guardianshield/shieldplan/internal/store"
)

// Config controls the service runtime behavior.
type Config struct {
	Addr         string
	EventsBuffer int
	Backend      store.Backend
	Sessions     *session.Manager
	Logger       *logger.Logger
	Now          func() time.Time
}

// Event types published on /v1/events and /v1/stream.
const (
	EventSubmitted   = "assessment_submitted"
	EventCleared     = "assessment_cleared"
	EventFlowEntered = "iul_flow_entered"
)

// Event records an assessment lifecycle change. It carries no profile data.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Session   string    `json:"session"`
}

// Status is served at /v1/server.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	Requests        int64     `json:"requests"`
	Submissions     int64     `json:"submissions"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the HTTP API.
type Service struct {
	cfg Config
	log *logger.Logger

	mu          sync.RWMutex
	startedAt   time.Time
	requests    int64
	submissions int64
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a service with the provided config. Backend and Sessions are
// required.
func New(cfg Config) *Service {
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}

	return &Service{
		cfg:       cfg,
		log:       cfg.Logger,
		startedAt: cfg.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the routed API with request logging.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/server", s.handleServerStatus)
	mux.HandleFunc("GET /v1/events", s.handleEvents)
	mux.HandleFunc("GET /v1/stream", s.handleStream)

	mux.HandleFunc("GET /v1/assessment/sections", s.handleSections)
	mux.HandleFunc("POST /v1/assessment/sections/{n}/check", s.withSession(s.handleSectionCheck))
	mux.HandleFunc("POST /v1/assessment", s.withSession(s.handleSubmit))
	mux.HandleFunc("DELETE /v1/assessment", s.withSession(s.handleClear))
	mux.HandleFunc("GET /v1/report", s.withSession(s.handleReport))
	mux.HandleFunc("GET /v1/totals", s.withSession(s.handleTotals))
	mux.HandleFunc("GET /v1/status", s.withSession(s.handleStatus))
	mux.HandleFunc("POST /v1/iul", s.withSession(s.handleEnterIUL))
	mux.HandleFunc("GET /v1/iul-banking", s.withSession(s.handleIULBanking))
	mux.HandleFunc("GET /v1/calculators", s.handleCalculatorList)
	mux.HandleFunc("GET /v1/calculators/{name}", s.handleCalculator)

	return s.logRequests(mux)
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info("server listening", "addr", s.cfg.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

// sessionHandler receives the caller's session-scoped store.
type sessionHandler func(w http.ResponseWriter, r *http.Request, st *store.Session)

func (s *Service) withSession(h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, fresh, err := s.cfg.Sessions.Resolve(w, r)
		if err != nil {
			s.log.Error("resolving session", "error", err)
			writeError(w, http.StatusInternalServerError, "session unavailable")
			return
		}
		if fresh {
			s.log.Debug("new session", "session", shortID(id))
		}
		st := store.NewSession(s.cfg.Backend, id, store.WithLogger(s.log), store.WithClock(s.cfg.Now))
		h(w, r, st)
	}
}

func (s *Service) publishEvent(eventType, sessionID string) {
	s.mu.Lock()
	s.nextEventID++
	ev := Event{
		ID:        s.nextEventID,
		Type:      eventType,
		Timestamp: s.cfg.Now(),
		Session:   shortID(sessionID),
	}
	if eventType == EventSubmitted {
		s.submissions++
	}
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) serverStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		Requests:        s.requests,
		Submissions:     s.submissions,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleServerStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.serverStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	_, _ = fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (s *Service) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.cfg.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.mu.Lock()
		s.requests++
		s.mu.Unlock()

		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", s.cfg.Now().Sub(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error    string   `json:"error"`
	Redirect string   `json:"redirect,omitempty"`
	Section  int      `json:"section,omitempty"`
	Fields   []string `json:"fields,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
