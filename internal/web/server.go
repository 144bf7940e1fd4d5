// Package web serves the local JSON API mirroring the browser app's
// backend surface.
package web

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"taskkeep/internal/board"
	"taskkeep/internal/chat"
	"taskkeep/internal/mutate"
	"taskkeep/internal/syncer"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 10 * time.Second

// Server is the taskkeep local API server.
type Server struct {
	httpServer *http.Server
	board      *board.Board
	syncer     *syncer.Coordinator
	mutator    *mutate.Coordinator
	assistant  *chat.Assistant
	logger     *slog.Logger
}

// NewServer wires the API routes over the shared board and coordinators.
func NewServer(addr string, b *board.Board, sc *syncer.Coordinator, mc *mutate.Coordinator, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		board:     b,
		syncer:    sc,
		mutator:   mc,
		assistant: chat.NewAssistant(),
		logger:    logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Get("/api/health", s.handleHealth)
	r.Get("/api/tasks", s.handleTasks)
	r.Get("/api/task-lists", s.handleTaskLists)
	r.Post("/api/tasks", s.handleCreateTask)
	r.Patch("/api/tasks/{id}", s.handlePatchTask)
	r.Delete("/api/tasks/{id}", s.handleDeleteTask)
	r.Post("/api/search", s.handleSearch)
	r.Post("/api/sync/tasks", s.handleSync)
	r.Post("/api/chat", s.handleChat)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	return s
}

// Handler exposes the router, used by the handler tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening. It blocks until the server is stopped.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.logger.Info("taskkeep API listening", "addr", ln.Addr().String())
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
