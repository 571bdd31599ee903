package sink

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func writeScript(t *testing.T, name, content string) *Sink {
	t.Helper()

	tmpDir := t.TempDir()
	scriptPath := filepath.Join(tmpDir, name)
	if err := os.WriteFile(scriptPath, []byte(content), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	return &Sink{
		Manifest: Manifest{
			Name:       strings.TrimSuffix(name, ".sh"),
			Version:    "1.0.0",
			Executable: name,
		},
		Path:       tmpDir,
		Executable: scriptPath,
	}
}

func TestExecutor_Deliver(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	s := writeScript(t, "ok-sink.sh", `#!/bin/sh
echo '{"success":true}'
`)

	n := &Notification{
		Event:     "swipe",
		Payload:   json.RawMessage(`{"direction":"left"}`),
		Timestamp: time.Now(),
	}

	executor := NewExecutor(5000)
	response, err := executor.Deliver(s, n)
	if err != nil {
		t.Fatalf("Deliver() failed: %v", err)
	}

	if !response.Success {
		t.Errorf("expected success=true, got false")
	}
	if response.Error != "" {
		t.Errorf("expected empty error, got %q", response.Error)
	}
}

func TestExecutor_Deliver_ReadsStdin(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	// Echoes the received event name back in the error field so the test
	// can observe what arrived on stdin.
	s := writeScript(t, "echo-sink.sh", `#!/bin/sh
INPUT=$(cat)
EVENT=$(echo "$INPUT" | sed -n 's/.*"event":"\([^"]*\)".*/\1/p')
echo "{\"success\":true,\"error\":\"$EVENT\"}"
`)

	n := &Notification{
		Event:     "zoom",
		Payload:   json.RawMessage(`{"scale":1.05}`),
		Timestamp: time.Now(),
	}

	executor := NewExecutor(5000)
	response, err := executor.Deliver(s, n)
	if err != nil {
		t.Fatalf("Deliver() failed: %v", err)
	}

	if response.Error != "zoom" {
		t.Errorf("sink received event %q, want %q", response.Error, "zoom")
	}
}

func TestExecutor_Timeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	s := writeScript(t, "slow-sink.sh", `#!/bin/sh
sleep 10
echo '{"success":true}'
`)

	executor := NewExecutor(100)
	_, err := executor.Deliver(s, &Notification{Event: "reset", Timestamp: time.Now()})

	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
	if !strings.Contains(err.Error(), "timeout") && !strings.Contains(err.Error(), "killed") && !strings.Contains(err.Error(), "context deadline exceeded") {
		t.Errorf("expected timeout-related error, got: %v", err)
	}
}

func TestExecutor_Deliver_ErrorResponse(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	s := writeScript(t, "error-sink.sh", `#!/bin/sh
echo '{"success":false,"error":"something went wrong"}'
`)

	executor := NewExecutor(5000)
	response, err := executor.Deliver(s, &Notification{Event: "rotate", Timestamp: time.Now()})
	if err != nil {
		t.Fatalf("Deliver() failed: %v", err)
	}

	if response.Success {
		t.Errorf("expected success=false, got true")
	}
	if response.Error != "something went wrong" {
		t.Errorf("expected error 'something went wrong', got %q", response.Error)
	}
}

func TestExecutor_Deliver_InvalidJSON(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	s := writeScript(t, "bad-sink.sh", `#!/bin/sh
echo 'not valid json'
`)

	executor := NewExecutor(5000)
	if _, err := executor.Deliver(s, &Notification{Event: "lock", Timestamp: time.Now()}); err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestExecutor_Deliver_NonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	s := writeScript(t, "exit-sink.sh", `#!/bin/sh
echo "Error: something failed" >&2
exit 1
`)

	executor := NewExecutor(5000)
	if _, err := executor.Deliver(s, &Notification{Event: "unlock", Timestamp: time.Now()}); err == nil {
		t.Fatal("expected error for non-zero exit, got nil")
	}
}
