// Package server exposes explorer sessions over HTTP.
//
// Each session owns one Explorer behind its own mutex, so requests for the
// same agent are serialized while different agents proceed independently.
// The caller drives time by posting "step" commands; the server never moves
// an agent on its own.
//
// Routes, all under /api:
//
//	POST   /sessions                create a session from a maze document or the default maze
//	GET    /sessions                list session IDs
//	GET    /sessions/{id}           snapshot
//	GET    /sessions/{id}/grid      occupancy grid dump (?format=text|binary|preview)
//	POST   /sessions/{id}/commands  {command, direction?, value?}
//	DELETE /sessions/{id}           drop the session
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/katalvlaran/radarmaze/config"
	"github.com/katalvlaran/radarmaze/explorer"
	"github.com/katalvlaran/radarmaze/mazefile"
)

// Sentinel errors for session management.
var (
	ErrSessionNotFound = errors.New("server: session not found")
	ErrTooManySessions = errors.New("server: session limit reached")
	ErrNoMaze          = errors.New("server: no maze given and no default maze configured")
)

// Server routes HTTP requests to explorer sessions.
type Server struct {
	cfg     *config.Config
	log     *slog.Logger
	maze    *mazefile.Description
	handler http.Handler

	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
}

type session struct {
	mu      sync.Mutex
	id      uuid.UUID
	exp     *explorer.Explorer
	created time.Time
}

// New builds a server. defaultMaze is used by create requests without a
// maze document and may be nil.
func New(cfg *config.Config, logger *slog.Logger, defaultMaze *mazefile.Description) *Server {
	s := &Server{
		cfg:      cfg,
		log:      logger.With(slog.String("component", "server")),
		maze:     defaultMaze,
		sessions: make(map[uuid.UUID]*session),
	}

	r := mux.NewRouter()
	r.Use(s.logRequests)
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/sessions", s.createSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions", s.listSessions).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", s.getSession).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", s.deleteSession).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{id}/grid", s.getGrid).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/commands", s.postCommand).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	s.handler = c.Handler(r)

	return s
}

// Handler returns the root handler with CORS applied.
func (s *Server) Handler() http.Handler { return s.handler }

// ListenAndServe serves on the configured address until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	}
}

// add registers e under id, enforcing the session limit.
func (s *Server) add(id uuid.UUID, e *explorer.Explorer) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sessions) >= s.cfg.Server.MaxSessions {
		return nil, ErrTooManySessions
	}
	sess := &session{id: id, exp: e, created: time.Now()}
	s.sessions[sess.id] = sess

	return sess, nil
}

func (s *Server) lookup(id uuid.UUID) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

func (s *Server) remove(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// ids returns the session IDs ordered by creation time.
func (s *Server) ids() []string {
	s.mu.RLock()
	list := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		list = append(list, sess)
	}
	s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool { return list[i].created.Before(list[j].created) })
	out := make([]string, len(list))
	for i, sess := range list {
		out[i] = sess.id.String()
	}
	return out
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("took", time.Since(start)))
	})
}
