// Package server provides the local HTTP status endpoint.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/HopIT-Hub/InkChord/internal/chord"
	"github.com/HopIT-Hub/InkChord/internal/config"
)

// Capture reports the chord machine's state.
type Capture interface {
	State() chord.State
	LastPayload() string
}

// Sessions reports whether a scratch session is running.
type Sessions interface {
	Active() bool
}

// Server serves status on localhost.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	capture    Capture
	sessions   Sessions
	cfg        *config.Config
	version    string
	autoArgs   []string
	log        *zap.Logger
}

// New creates a status server. autoArgs are passed to the executable when
// start on login is enabled through the API.
func New(capture Capture, sessions Sessions, cfg *config.Config, version string, autoArgs []string, log *zap.Logger) *Server {
	return &Server{
		capture:  capture,
		sessions: sessions,
		cfg:      cfg,
		version:  version,
		autoArgs: autoArgs,
		log:      log.Named("server"),
	}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/payload", s.handlePayload)
	mux.HandleFunc("/autostart", s.handleAutoStart)
	return mux
}

// Start begins serving on a random localhost port.
// Returns the URL to open in the browser.
func (s *Server) Start() (string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("listen: %w", err)
	}
	s.listener = ln

	s.httpServer = &http.Server{
		Handler:      s.routes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Error("serve", zap.Error(err))
		}
	}()

	url := s.URL()
	s.log.Info("status available", zap.String("url", url))
	return url, nil
}

// Stop shuts down the HTTP server.
func (s *Server) Stop() {
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.httpServer.Shutdown(ctx)
	}
}

// URL returns the server's URL, or empty string if not started.
func (s *Server) URL() string {
	if s.listener == nil {
		return ""
	}
	return fmt.Sprintf("http://%s", s.listener.Addr().String())
}
