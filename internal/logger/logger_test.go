package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestInfo_WritesJSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("info", "json", &buf)

	Info("callback handled", map[string]any{"status": 307})

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", buf.String(), err)
	}
	if line["level"] != "info" {
		t.Fatalf("expected level info, got %v", line["level"])
	}
	if line["message"] != "callback handled" {
		t.Fatalf("unexpected message: %v", line["message"])
	}
	if line["status"] != float64(307) {
		t.Fatalf("expected status field 307, got %v", line["status"])
	}
}

func TestDebug_FilteredAtInfo(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("info", "json", &buf)

	Debug("noisy", nil)

	if strings.Contains(buf.String(), "noisy") {
		t.Fatalf("debug line should be filtered at info level: %q", buf.String())
	}
}

func TestInitWithWriter_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("chatty", "json", &buf)

	Debug("hidden", nil)
	Warn("shown", nil)

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected output: %q", out)
	}
}
