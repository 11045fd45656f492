package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

func logJSON(t *testing.T, event Event) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	NewSlogAdapter(slog.New(handler)).Log(event)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output %q: %v", buf.String(), err)
	}
	return entry
}

func TestSlogAdapterRender(t *testing.T) {
	entry := logJSON(t, Event{
		Timestamp: time.Now(),
		SessionID: "s-1",
		Kind:      KindRender,
		View:      "detail",
		Path:      "GPIO/GPIO1/DR",
		Segments:  4,
		Fields:    3,
	})

	if entry["msg"] != "trace" {
		t.Errorf("msg: got %v", entry["msg"])
	}
	if entry["kind"] != "RENDER" {
		t.Errorf("kind: got %v", entry["kind"])
	}
	if entry["segments"] != float64(4) {
		t.Errorf("segments: got %v", entry["segments"])
	}
	if entry["level"] != "DEBUG" {
		t.Errorf("level: got %v", entry["level"])
	}
}

func TestSlogAdapterError(t *testing.T) {
	entry := logJSON(t, Event{
		SessionID: "s-1",
		Kind:      KindError,
		Error:     &ErrorData{Message: "overlapping fields: A and B", LayoutKind: "overlapping fields", Field: "A"},
	})

	if entry["layout_kind"] != "overlapping fields" {
		t.Errorf("layout_kind: got %v", entry["layout_kind"])
	}
	if entry["field"] != "A" {
		t.Errorf("field: got %v", entry["field"])
	}
	if _, ok := entry["segments"]; ok {
		t.Error("segments logged for error event")
	}
}

func TestSlogAdapterFilteredByLevel(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	NewSlogAdapter(slog.New(handler)).Log(Event{Kind: KindLoad, Load: &LoadData{Source: "data"}})

	if buf.Len() != 0 {
		t.Errorf("expected no output at info level, got %q", buf.String())
	}
}
