package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestStdLogger_JSONWithBaseFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "petcare", Output: &buf}).
		With(map[string]any{"component": "tasks.engine"})

	l.Debug("hidden", nil)
	l.Info("refresh applied", map[string]any{"items": 2, "": "dropped"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected debug to be filtered, got %d lines", len(lines))
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("invalid json line: %v", err)
	}
	if entry["app"] != "petcare" || entry["component"] != "tasks.engine" || entry["msg"] != "refresh applied" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if entry["items"] != float64(2) || entry["level"] != "info" {
		t.Fatalf("unexpected fields %v", entry)
	}
	if _, ok := entry[""]; ok {
		t.Fatalf("blank keys must be dropped")
	}
}

func TestStdLogger_TextIsSorted(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Debug, Output: &buf})
	l.Warn("toggle rejected", map[string]any{"reminder_id": "r1"})

	line := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(line, "level=warn msg=toggle rejected reminder_id=r1 ts=") {
		t.Fatalf("unexpected text line %q", line)
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if ParseLevel("WARNING") != Warn || ParseLevel("nope") != Info || ParseLevel("") != Info {
		t.Fatalf("unexpected level parsing")
	}
	if ParseFormat("JSON") != FormatJSON || ParseFormat("xml") != FormatText {
		t.Fatalf("unexpected format parsing")
	}
}

func TestMiddleware_LogsStatusAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Debug, Format: FormatJSON, Output: &buf})

	h := chimw.RequestID(Middleware(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "reminder not found", http.StatusNotFound)
	})))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/reminders/x/complete", nil))

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("invalid json: %v (%q)", err, buf.String())
	}
	if entry["level"] != "warn" || entry["status"] != float64(404) || entry["path"] != "/reminders/x/complete" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if id, _ := entry["request_id"].(string); id == "" {
		t.Fatalf("expected request id in log entry")
	}
}

func TestNop(t *testing.T) {
	l := Nop().With(map[string]any{"a": 1})
	l.Error("ignored", nil)
}
