// Package server exposes the sync HTTP API. Clients exchange the whole
// reminder collection in one document; the server assigns the last
// modified stamp on every accepted write.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"remindik/internal/domain"
	"remindik/internal/logging"
	"remindik/internal/repository/sqlite"
	"remindik/internal/schedule"
)

// Config holds the server's listen and serving options
type Config struct {
	Addr         string
	StaticDir    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server serves the reminder collection over HTTP
type Server struct {
	repo       sqlite.Repository
	mapper     *domain.TaskMapper
	clock      schedule.Clock
	logger     logging.Logger
	staticDir  string
	httpServer *http.Server
}

// New creates a new Server instance
func New(cfg Config, repo sqlite.Repository, clock schedule.Clock, logger logging.Logger) *Server {
	s := &Server{
		repo:      repo,
		mapper:    domain.NewTaskMapper(),
		clock:     clock,
		logger:    logger,
		staticDir: cfg.StaticDir,
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

// Handler returns the HTTP handler serving the API and optional static files
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/reminders", s.handleReminders)

	if s.staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))
	}

	return mux
}

// ListenAndServe starts serving until Shutdown is called
func (s *Server) ListenAndServe() error {
	s.logger.Info("sync server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// saveResponse is the body returned for collection writes
type saveResponse struct {
	Success      bool   `json:"success"`
	LastModified int64  `json:"lastModified,omitempty"`
	Error        string `json:"error,omitempty"`
}

func (s *Server) handleReminders(w http.ResponseWriter, r *http.Request) {
	// Browser clients sync cross-origin from file:// and LAN hosts.
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		s.getReminders(w, r)
	case http.MethodPost:
		s.postReminders(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// getReminders returns the stored collection
func (s *Server) getReminders(w http.ResponseWriter, r *http.Request) {
	dbTasks, err := s.repo.ListTasks(r.Context())
	if err != nil {
		s.logger.Error("failed to load reminders", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to load data")
		return
	}

	tasks, err := s.mapper.FromDatabaseSlice(dbTasks)
	if err != nil {
		s.logger.Error("failed to map reminders", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to load data")
		return
	}

	lastModified, err := s.repo.GetLastModified(r.Context())
	if err != nil {
		s.logger.Error("failed to load last modified", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to load data")
		return
	}

	collection := domain.Collection{Tasks: tasks, LastModified: lastModified}
	if collection.Tasks == nil {
		collection.Tasks = []domain.Task{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(collection); err != nil {
		s.logger.Error("failed to encode reminders", "error", err)
	}
}

// postReminders replaces the stored collection and stamps it with the
// server's clock
func (s *Server) postReminders(w http.ResponseWriter, r *http.Request) {
	var collection domain.Collection
	if err := json.NewDecoder(r.Body).Decode(&collection); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	lastModified := s.clock.Now().UnixMilli()
	dbTasks := s.mapper.ToDatabaseSlice(collection.Tasks)
	if err := s.repo.ReplaceAll(r.Context(), dbTasks, lastModified); err != nil {
		s.logger.Error("failed to save reminders", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to save data")
		return
	}

	s.logger.Debug("collection replaced", "tasks", len(collection.Tasks), "lastModified", lastModified)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(saveResponse{Success: true, LastModified: lastModified})
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(saveResponse{Success: false, Error: message})
}
