// pkg/mcp/server.go
package mcp

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ivikasavnish/scriptgen/pkg/browser"
	"github.com/ivikasavnish/scriptgen/pkg/codegen"
)

// Server represents the recording server
type Server struct {
	store     Store
	router    *mux.Router
	generator *codegen.Generator
	logger    *zap.Logger
}

// ServerOption configures a Server
type ServerOption func(*serverConfig)

type serverConfig struct {
	options codegen.Options
	logger  *zap.Logger
}

// WithLogger sets the logger for requests and generation
func WithLogger(logger *zap.Logger) ServerOption {
	return func(c *serverConfig) {
		c.logger = logger
	}
}

// WithOptions sets the generator options used unless a request overrides them
func WithOptions(opts codegen.Options) ServerOption {
	return func(c *serverConfig) {
		c.options = opts
	}
}

// NewServer creates a new server instance
func NewServer(store Store, opts ...ServerOption) *Server {
	if store == nil {
		store = NewMemoryStore()
	}

	cfg := serverConfig{
		options: codegen.DefaultOptions(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Server{
		store:     store,
		router:    mux.NewRouter(),
		generator: codegen.New(cfg.options, codegen.WithLogger(cfg.logger)),
		logger:    cfg.logger,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.logRequests)

	s.router.HandleFunc("/recording/create", s.handleCreateRecording).Methods("POST")
	s.router.HandleFunc("/recording/get", s.handleGetRecording).Methods("GET")
	s.router.HandleFunc("/recording/update", s.handleUpdateRecording).Methods("PUT")
	s.router.HandleFunc("/recording/delete", s.handleDeleteRecording).Methods("DELETE")
	s.router.HandleFunc("/recording/list", s.handleListRecordings).Methods("GET")
	s.router.HandleFunc("/recording/{id}/events", s.handleAppendEvents).Methods("POST")

	s.addScriptHandlers()
}

// ServeHTTP implements the http.Handler interface
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start starts the server on the specified address
func (s *Server) Start(addr string) error {
	s.logger.Info("Listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, s)
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.logger.Info("Request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sw.status),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

// Request/Response types
type CreateRecordingRequest struct {
	ID     string                  `json:"id"`
	Name   string                  `json:"name"`
	Events []browser.RecordedEvent `json:"events"`
}

type EventsRequest struct {
	Events []browser.RecordedEvent `json:"events"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

// statusFor maps store errors to HTTP status codes
func statusFor(err error) int {
	switch errors.Cause(err) {
	case ErrRecordingNotFound:
		return http.StatusNotFound
	case ErrRecordingExists:
		return http.StatusConflict
	case ErrInvalidID, ErrInvalidEvents:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respond writes v with status, or err with the status it maps to
func respond(w http.ResponseWriter, status int, v interface{}, err error) {
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, status, v)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "malformed request body"))
		return false
	}
	return true
}

func queryID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, ErrInvalidID)
		return "", false
	}
	return id, true
}

func (s *Server) handleCreateRecording(w http.ResponseWriter, r *http.Request) {
	var req CreateRecordingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	now := time.Now()
	rec := &Recording{ID: req.ID, Name: req.Name, Events: req.Events, CreatedAt: now, UpdatedAt: now}
	respond(w, http.StatusCreated, rec, s.store.Create(rec))
}

func (s *Server) handleGetRecording(w http.ResponseWriter, r *http.Request) {
	if id, ok := queryID(w, r); ok {
		rec, err := s.store.Get(id)
		respond(w, http.StatusOK, rec, err)
	}
}

func (s *Server) handleUpdateRecording(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(w, r)
	if !ok {
		return
	}
	var req EventsRequest
	if decodeBody(w, r, &req) {
		rec, err := s.store.Replace(id, req.Events)
		respond(w, http.StatusOK, rec, err)
	}
}

func (s *Server) handleAppendEvents(w http.ResponseWriter, r *http.Request) {
	var req EventsRequest
	if decodeBody(w, r, &req) {
		rec, err := s.store.Append(mux.Vars(r)["id"], req.Events)
		respond(w, http.StatusOK, rec, err)
	}
}

func (s *Server) handleDeleteRecording(w http.ResponseWriter, r *http.Request) {
	id, ok := queryID(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(id); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListRecordings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.List())
}
