// Package server provides the HTTP server for the mudra daemon.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mudralabs/mudra/internal/gesture"
	"github.com/mudralabs/mudra/internal/server/api"
	"github.com/mudralabs/mudra/internal/store"
)

// Config holds the server configuration.
type Config struct {
	Store  *store.Store
	Engine *gesture.Engine

	// OnActivate is forwarded to the profiles handler so a profile
	// activation can reconfigure the running engine.
	OnActivate func(*store.Profile)
}

// Server represents the HTTP server for the mudra daemon.
type Server struct {
	config Config
	mux    *http.ServeMux
	events *EventsHandler
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		events: NewEventsHandler(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Register profile API handler if Store is configured
	if s.config.Store != nil {
		profilesHandler := api.NewProfilesHandler(s.config.Store)
		profilesHandler.OnActivate = s.config.OnActivate

		s.mux.Handle("/api/profiles", profilesHandler)
		s.mux.Handle("/api/profiles/", profilesHandler)
	}

	s.mux.Handle("/api/events", s.events)
}

// Events returns the WebSocket event broadcaster.
func (s *Server) Events() *EventsHandler {
	return s.events
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	}
	if s.config.Engine != nil {
		response["engine_state"] = s.config.Engine.State().String()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
