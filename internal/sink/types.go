// Package sink provides discovery and execution of external event sinks:
// small executables that receive mudra interaction events as JSON.
package sink

import (
	"encoding/json"
	"time"
)

// Manifest describes a sink's metadata, read from sink.json.
type Manifest struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Executable  string   `json:"executable"`
	// Events lists the event names the sink wants. Empty means all.
	Events []string `json:"events,omitempty"`
}

// Notification is the JSON document written to a sink's stdin for each
// delivered event.
type Notification struct {
	Event     string          `json:"event"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// Response is the sink's reply on stdout.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Sink represents a discovered sink with its manifest and location.
type Sink struct {
	Manifest   Manifest
	Path       string
	Executable string
}

// Wants reports whether the sink subscribed to the given event name.
func (s *Sink) Wants(event string) bool {
	if len(s.Manifest.Events) == 0 {
		return true
	}
	for _, e := range s.Manifest.Events {
		if e == event {
			return true
		}
	}
	return false
}
