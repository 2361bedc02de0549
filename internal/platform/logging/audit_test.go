package logging

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"
)

// captureAuditLine runs fn with stdout/stderr redirected and returns the
// single JSON log line it produced, decoded.
func captureAuditLine(t *testing.T, fn func(ctx context.Context)) map[string]any {
	t.Helper()
	resetLoggerForTest()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	defer func() { _ = r.Close() }()

	origStdout, origStderr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = w, w
	defer func() {
		os.Stdout, os.Stderr = origStdout, origStderr
	}()

	fn(context.Background())
	_ = Logger().Sync()
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("failed to read log output: %v", err)
	}
	line := strings.TrimSpace(string(data))
	if line == "" {
		t.Fatal("expected log output, got nothing")
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}
	return payload
}

func TestLogAuditEvent(t *testing.T) {
	payload := captureAuditLine(t, func(ctx context.Context) {
		LogAuditEvent(ctx, "avatar_sync", "user-123", "identity", "user-123", "success", nil)
	})

	want := map[string]string{
		"message":             "Audit event",
		"audit.action":        "avatar_sync",
		"audit.user_id":       "user-123",
		"audit.resource_type": "identity",
		"audit.resource_id":   "user-123",
		"audit.result":        "success",
	}
	for key, value := range want {
		if payload[key] != value {
			t.Errorf("expected %s=%q, got %v", key, value, payload[key])
		}
	}
}

func TestLogAuditEventWithDetails(t *testing.T) {
	payload := captureAuditLine(t, func(ctx context.Context) {
		LogAuditEvent(ctx, "update", "user-456", "profile", "user-456", "success",
			map[string]any{"fields": []string{"displayName", "email"}})
	})

	details, ok := payload["audit.details"].(map[string]any)
	if !ok {
		t.Fatalf("expected audit.details map, got %T", payload["audit.details"])
	}
	fields, ok := details["fields"].([]any)
	if !ok || len(fields) != 2 {
		t.Fatalf("expected 2 detail fields, got %v", details["fields"])
	}
}

func TestLogAuditEventFailure(t *testing.T) {
	payload := captureAuditLine(t, func(ctx context.Context) {
		LogAuditEvent(ctx, "avatar_remove", "user-789", "identity", "user-789", "failure",
			map[string]any{"stage": "document"})
	})

	if payload["audit.result"] != "failure" {
		t.Errorf("expected failure result, got %v", payload["audit.result"])
	}
	details, ok := payload["audit.details"].(map[string]any)
	if !ok || details["stage"] != "document" {
		t.Fatalf("expected stage=document detail, got %v", payload["audit.details"])
	}
}
