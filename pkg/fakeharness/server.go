// Package fakeharness is an in-process stand-in for the AethermancerHarness
// HTTP surface. It mirrors the real server's routing rules (lowercased paths,
// POST-only action endpoints, JSON 404 listing the endpoints) on top of a tiny
// simulated game so suites can be exercised without the game running.
package fakeharness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
)

// Endpoints lists every route the harness serves, in the order the 404
// response reports them.
var Endpoints = []string{
	"/health", "/state", "/actions", "/combat/action", "/combat/preview",
	"/combat/enemy-actions", "/combat/start", "/exploration/teleport",
	"/exploration/interact", "/skill-select",
}

// DefaultMonsterGroups is the number of encounter groups on a fresh map.
const DefaultMonsterGroups = 3

// Server serves the simulated harness API.
type Server struct {
	router *chi.Mux
	logger *slog.Logger

	mu    sync.Mutex
	state gameState
}

// Option customizes a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithMonsterGroups sets how many encounter groups combat/start accepts.
func WithMonsterGroups(n int) Option {
	return func(s *Server) { s.state.monsterGroups = n }
}

// InCombat starts the server already in combat.
func InCombat() Option {
	return func(s *Server) { s.state.mode = modeCombat }
}

// New builds a Server and its routes.
func New(opts ...Option) *Server {
	s := &Server{
		logger: slog.Default(),
		state:  newGameState(DefaultMonsterGroups),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(lowercasePath)
	r.Use(chimw.RequestID)
	r.Use(cors)
	r.Use(s.requestLog)
	r.Use(s.recoverJSON)

	r.HandleFunc("/health", s.handleHealth)
	r.HandleFunc("/state", s.handleState)
	r.HandleFunc("/actions", s.handleActions)
	r.HandleFunc("/combat/enemy-actions", s.handleEnemyActions)

	r.Post("/combat/action", s.handleCombatAction)
	r.Post("/combat/preview", s.handleCombatPreview)
	r.Post("/combat/start", s.handleCombatStart)
	r.Post("/exploration/teleport", s.handleTeleport)
	r.Post("/exploration/interact", s.handleInteract)
	r.Post("/skill-select", s.handleSkillSelect)

	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "Method not allowed"})
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "Not found", "endpoints": Endpoints})
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler so the Server can back an httptest.Server.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting fake harness", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("fake harness on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down fake harness", "addr", addr)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func lowercasePath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if lower := strings.ToLower(r.URL.Path); lower != r.URL.Path {
			r.URL.Path = lower
			r.URL.RawPath = ""
		}
		next.ServeHTTP(w, r)
	})
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("Harness request",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimw.GetReqID(r.Context()))
		next.ServeHTTP(w, r)
	})
}

// recoverJSON turns a handler panic into a 500 carrying {"error": message}.
func (s *Server) recoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				s.logger.Error("Error handling request", "path", r.URL.Path, "panic", rec)
				writeJSON(w, http.StatusInternalServerError, map[string]any{"error": fmt.Sprint(rec)})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
