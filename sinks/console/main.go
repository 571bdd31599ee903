// Package main provides a console sink for mudra.
// It prints every delivered interaction event to stderr and replies with
// a success response on stdout.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Notification represents the input from the sink executor.
type Notification struct {
	Event     string          `json:"event"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// Response represents the output to the sink executor.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func main() {
	var n Notification
	if err := json.NewDecoder(os.Stdin).Decode(&n); err != nil {
		writeResponse(Response{Success: false, Error: fmt.Sprintf("failed to decode notification: %v", err)})
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "[%s] %s %s\n", n.Timestamp.Format(time.RFC3339), n.Event, string(n.Payload))

	writeResponse(Response{Success: true})
}

func writeResponse(resp Response) {
	json.NewEncoder(os.Stdout).Encode(resp)
}
