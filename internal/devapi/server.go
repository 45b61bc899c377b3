// Package devapi is a small in-memory implementation of the todo API that
// tada talks to. It backs `tada serve` and the client tests.
package devapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ctxKey int

const userIDKey ctxKey = iota

// Server serves the todo API over a Store.
type Server struct {
	store   *Store
	logger  *slog.Logger
	metrics *metrics

	mu     sync.RWMutex
	tokens map[string]int // access token -> user id
}

// NewServer wires a Server around store.
func NewServer(store *Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:   store,
		logger:  logger,
		metrics: newMetrics(prometheus.NewRegistry()),
		tokens:  make(map[string]int),
	}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	r.HandleFunc("/auth/signup", s.handleSignup).Methods(http.MethodPost)
	r.HandleFunc("/auth/signin", s.handleSignin).Methods(http.MethodPost)

	todos := r.PathPrefix("/todos").Subrouter()
	todos.Use(s.requireToken)
	todos.HandleFunc("", s.handleListTodos).Methods(http.MethodGet)
	todos.HandleFunc("", s.handleCreateTodo).Methods(http.MethodPost)
	todos.HandleFunc("/{id:[0-9]+}", s.handleUpdateTodo).Methods(http.MethodPut)
	todos.HandleFunc("/{id:[0-9]+}", s.handleDeleteTodo).Methods(http.MethodDelete)

	r.Use(s.loggingMiddleware)
	return r
}

// ListenAndServe runs the server on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("dev api listening", slog.String("addr", addr))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) issueToken(userID int) string {
	tok := uuid.NewString()
	s.mu.Lock()
	s.tokens[tok] = userID
	s.mu.Unlock()
	return tok
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		s.mu.RLock()
		userID, ok := s.tokens[strings.TrimPrefix(h, "Bearer ")]
		s.mu.RUnlock()
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		status := sw.status
		if status == 0 {
			status = http.StatusOK
		}
		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		s.metrics.observe(r.Method, route, status, time.Since(start))
		s.logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.String("request_id", r.Header.Get("X-Request-ID")),
			slog.Duration("latency", time.Since(start)))
	})
}
