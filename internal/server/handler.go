package server

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/HopIT-Hub/InkChord/internal/autostart"
	"github.com/HopIT-Hub/InkChord/internal/style"
)

// statusResponse is the JSON response for GET /status.
type statusResponse struct {
	State         string `json:"state"`
	ScratchActive bool   `json:"scratch_active"`
	Backend       string `json:"backend"`
	Trigger       string `json:"trigger"`
	Scratch       string `json:"scratch"`
	Version       string `json:"version"`
	AutoStart     bool   `json:"auto_start"`
	HasPayload    bool   `json:"has_payload"`
}

// handleStatus returns the capture state and hotkey config.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := statusResponse{
		State:         s.capture.State().String(),
		ScratchActive: s.sessions.Active(),
		Backend:       s.cfg.GetBackend(),
		Trigger:       s.cfg.GetTrigger().String(),
		Scratch:       s.cfg.GetScratch().String(),
		Version:       s.version,
		AutoStart:     s.cfg.GetAutoStart(),
		HasPayload:    s.capture.LastPayload() != "",
	}
	writeJSON(w, resp)
}

// handlePayload returns the last applied style document.
func (s *Server) handlePayload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	payload := s.capture.LastPayload()
	if payload == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", style.MIME)
	io.WriteString(w, payload)
}

// autoStartRequest is the JSON body for POST /autostart.
type autoStartRequest struct {
	Enabled bool `json:"enabled"`
}

// autoStartResponse is the JSON response for POST /autostart.
type autoStartResponse struct {
	AutoStart bool   `json:"auto_start"`
	Error     string `json:"error,omitempty"`
}

// handleAutoStart toggles the auto-start on login setting.
func (s *Server) handleAutoStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req autoStartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, autoStartResponse{Error: "invalid JSON"})
		return
	}

	if err := autostart.Set(req.Enabled, s.autoArgs...); err != nil {
		s.log.Error("set autostart", zap.Bool("enabled", req.Enabled), zap.Error(err))
		writeJSON(w, autoStartResponse{Error: "failed to change auto-start: " + err.Error()})
		return
	}

	if err := s.cfg.SetAutoStart(req.Enabled); err != nil {
		s.log.Error("save autostart config", zap.Error(err))
		writeJSON(w, autoStartResponse{Error: "setting changed but failed to persist"})
		return
	}

	s.log.Info("auto-start changed", zap.Bool("enabled", req.Enabled))
	writeJSON(w, autoStartResponse{AutoStart: req.Enabled})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
