// Package api provides HTTP API handlers for the mudra daemon.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mudralabs/mudra/internal/gesture"
	"github.com/mudralabs/mudra/internal/store"
)

// ProfilesHandler handles HTTP requests for tuning profile resources.
type ProfilesHandler struct {
	store *store.Store

	// OnActivate, if set, is called after a profile is activated so the
	// running engine can pick up the new parameters.
	OnActivate func(*store.Profile)
}

// NewProfilesHandler creates a new ProfilesHandler with the given store.
func NewProfilesHandler(s *store.Store) *ProfilesHandler {
	return &ProfilesHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to
// appropriate methods. Expected paths: /api/profiles,
// /api/profiles/{id} and /api/profiles/{id}/activate.
func (h *ProfilesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/profiles")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	if id, ok := strings.CutSuffix(path, "/activate"); ok {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.activate(w, r, id)
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

// tuningPayload carries the engine parameters over the wire. Durations
// are integer milliseconds.
type tuningPayload struct {
	SmoothWindow    int     `json:"smooth_window"`
	ExtendTolerance float64 `json:"extend_tolerance"`
	GhostDistance   float64 `json:"ghost_distance"`
	SwipeCooldownMs int64   `json:"swipe_cooldown_ms"`
	SwipeMinDX      float64 `json:"swipe_min_dx"`
	SwipeAxisRatio  float64 `json:"swipe_axis_ratio"`
	PalmHoldMs      int64   `json:"palm_hold_ms"`
	RotateSettleMs  int64   `json:"rotate_settle_ms"`
	RotateGain      float64 `json:"rotate_gain"`
	StillThreshold  float64 `json:"still_threshold"`
	StillTimeoutMs  int64   `json:"still_timeout_ms"`
	ZoomClampLo     float64 `json:"zoom_clamp_lo"`
	ZoomClampHi     float64 `json:"zoom_clamp_hi"`
	ZoomGain        float64 `json:"zoom_gain"`
	ZoomDeadband    float64 `json:"zoom_deadband"`
}

type createProfileRequest struct {
	Name   string         `json:"name"`
	Params *tuningPayload `json:"params,omitempty"`
}

type profileResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Params    tuningPayload `json:"params"`
	CreatedAt string        `json:"created_at"`
	UpdatedAt string        `json:"updated_at"`
}

type listProfilesResponse struct {
	Profiles []profileResponse `json:"profiles"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toPayload(p gesture.Params) tuningPayload {
	return tuningPayload{
		SmoothWindow:    p.SmoothWindow,
		ExtendTolerance: p.ExtendTolerance,
		GhostDistance:   p.GhostDistance,
		SwipeCooldownMs: p.SwipeCooldown.Milliseconds(),
		SwipeMinDX:      p.SwipeMinDX,
		SwipeAxisRatio:  p.SwipeAxisRatio,
		PalmHoldMs:      p.PalmHold.Milliseconds(),
		RotateSettleMs:  p.RotateSettle.Milliseconds(),
		RotateGain:      p.RotateGain,
		StillThreshold:  p.StillThreshold,
		StillTimeoutMs:  p.StillTimeout.Milliseconds(),
		ZoomClampLo:     p.ZoomClampLo,
		ZoomClampHi:     p.ZoomClampHi,
		ZoomGain:        p.ZoomGain,
		ZoomDeadband:    p.ZoomDeadband,
	}
}

func (t *tuningPayload) toParams() gesture.Params {
	return gesture.Params{
		SmoothWindow:    t.SmoothWindow,
		ExtendTolerance: t.ExtendTolerance,
		GhostDistance:   t.GhostDistance,
		SwipeCooldown:   time.Duration(t.SwipeCooldownMs) * time.Millisecond,
		SwipeMinDX:      t.SwipeMinDX,
		SwipeAxisRatio:  t.SwipeAxisRatio,
		PalmHold:        time.Duration(t.PalmHoldMs) * time.Millisecond,
		RotateSettle:    time.Duration(t.RotateSettleMs) * time.Millisecond,
		RotateGain:      t.RotateGain,
		StillThreshold:  t.StillThreshold,
		StillTimeout:    time.Duration(t.StillTimeoutMs) * time.Millisecond,
		ZoomClampLo:     t.ZoomClampLo,
		ZoomClampHi:     t.ZoomClampHi,
		ZoomGain:        t.ZoomGain,
		ZoomDeadband:    t.ZoomDeadband,
	}
}

// toResponse converts a store.Profile to a profileResponse.
func toResponse(p *store.Profile) profileResponse {
	return profileResponse{
		ID:        p.ID,
		Name:      p.Name,
		Params:    toPayload(p.Params),
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/profiles and returns all profiles.
func (h *ProfilesHandler) list(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.store.Profiles().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list profiles")
		return
	}

	response := listProfilesResponse{
		Profiles: make([]profileResponse, 0, len(profiles)),
	}
	for _, p := range profiles {
		response.Profiles = append(response.Profiles, toResponse(p))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/profiles/{id} and returns a single profile.
func (h *ProfilesHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.store.Profiles().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(p))
}

// create handles POST /api/profiles and creates a new profile. Omitted
// parameters fall back to the engine defaults.
func (h *ProfilesHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	params := gesture.DefaultParams()
	if req.Params != nil {
		params = req.Params.toParams()
	}

	p := &store.Profile{
		ID:     uuid.New().String(),
		Name:   req.Name,
		Params: params,
	}

	if err := h.store.Profiles().Create(p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create profile")
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(p))
}

// update handles PUT /api/profiles/{id} and updates an existing profile.
func (h *ProfilesHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.store.Profiles().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	var req createProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Params != nil {
		p.Params = req.Params.toParams()
	}

	if err := h.store.Profiles().Update(p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(p))
}

// delete handles DELETE /api/profiles/{id} and removes a profile.
func (h *ProfilesHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Profiles().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete profile")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// activate handles POST /api/profiles/{id}/activate: it records the
// profile as active and notifies the running engine.
func (h *ProfilesHandler) activate(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.store.Profiles().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	if err := h.store.Settings().SetActiveProfileID(p.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to activate profile")
		return
	}

	if h.OnActivate != nil {
		h.OnActivate(p)
	}

	writeJSON(w, http.StatusOK, toResponse(p))
}
