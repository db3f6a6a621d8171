// pkg/mcp/script_handler.go
package mcp

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/ivikasavnish/scriptgen/pkg/browser"
	"github.com/ivikasavnish/scriptgen/pkg/codegen"
	"github.com/ivikasavnish/scriptgen/pkg/script"
)

// GenerateRequest carries events to translate without storing them
type GenerateRequest struct {
	Events  []browser.RecordedEvent `json:"events"`
	Options *codegen.Options        `json:"options,omitempty"`
}

// ScriptResponse is the generated script body
type ScriptResponse struct {
	ID     string `json:"id,omitempty"`
	Script string `json:"script"`
}

func (s *Server) addScriptHandlers() {
	s.router.HandleFunc("/recording/{id}/script", s.handleRecordingScript).Methods("GET")
	s.router.HandleFunc("/generate", s.handleGenerate).Methods("POST")
	s.router.HandleFunc("/settings", s.handleSettings).Methods("GET")
}

func (s *Server) handleRecordingScript(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	rec, err := s.store.Get(id)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	full := false
	if v := r.URL.Query().Get("full"); v != "" {
		if full, err = strconv.ParseBool(v); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	body := s.generator.Generate(rec.Events)
	if full {
		if body, err = script.Render(body, s.generator.Options()); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}

	s.logger.Debug("Generated script", zap.String("id", id), zap.Int("events", len(rec.Events)), zap.Bool("full", full))
	writeJSON(w, http.StatusOK, ScriptResponse{ID: id, Script: body})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	generator := s.generator
	if req.Options != nil {
		generator = codegen.New(*req.Options, codegen.WithLogger(s.logger))
	}

	writeJSON(w, http.StatusOK, ScriptResponse{Script: generator.Generate(req.Events)})
}

// handleSettings exposes the recorder settings the capture side needs,
// such as the preferred data attribute for selectors
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.generator.Options())
}
