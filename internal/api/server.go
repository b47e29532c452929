// Package api serves the task manager and notes over a small JSON HTTP API.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/rs/cors"

	"github.com/dori/zendo/internal/model"
	"github.com/dori/zendo/internal/tasks"
)

// NoteStore persists mind dump notes
type NoteStore interface {
	GetNotes(ctx context.Context) ([]model.Note, error)
	CreateNote(ctx context.Context, content string) (*model.Note, error)
	UpdateNote(ctx context.Context, id, content string) (*model.Note, error)
	DeleteNote(ctx context.Context, id string) (bool, error)
}

// Config configures the server
type Config struct {
	Secret         []byte
	AllowedOrigins []string
	Logger         lgr.L
}

// Server exposes the caller-facing operations over HTTP
type Server struct {
	tasks *tasks.Manager
	notes NoteStore
	auth  Middleware
	cfg   Config
	log   lgr.L
}

// NewServer creates a server over the given manager and note store
func NewServer(m *tasks.Manager, notes NoteStore, cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = lgr.NoOp
	}
	return &Server{
		tasks: m,
		notes: notes,
		auth:  NewMiddleware(cfg.Secret),
		cfg:   cfg,
		log:   cfg.Logger,
	}
}

// Handler returns the routed, CORS-enabled handler
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	guarded := map[string]http.HandlerFunc{
		"POST /parse":                 s.handleParse,
		"GET /tasks":                  s.handleListTasks,
		"POST /tasks":                 s.handleAddTask,
		"GET /tasks/{id}":             s.handleGetTask,
		"PATCH /tasks/{id}":           s.handleUpdateTask,
		"DELETE /tasks/{id}":          s.handleDeleteTask,
		"POST /tasks/{id}/complete":   s.handleComplete,
		"POST /tasks/{id}/uncomplete": s.handleUncomplete,
		"POST /tasks/move-to-today":   s.handleMoveToToday,
		"GET /streak":                 s.handleStreak,
		"GET /stats":                  s.handleStats,
		"GET /notes":                  s.handleListNotes,
		"POST /notes":                 s.handleCreateNote,
		"PUT /notes/{id}":             s.handleUpdateNote,
		"DELETE /notes/{id}":          s.handleDeleteNote,
	}
	for pattern, h := range guarded {
		mux.HandleFunc(pattern, s.auth.Wrap(h))
	}

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	return c.Handler(s.logRequests(mux))
}

// Run serves on addr until ctx is cancelled
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Logf("[INFO] api server is running on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Logf("[DEBUG] %s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
