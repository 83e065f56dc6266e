package logs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestFanout(t *testing.T) {
	var text, trace bytes.Buffer

	log := New(Options{Level: slog.LevelDebug, Stderr: &text, Trace: &trace})
	log.Debug("step", "ip", 4, "op", "MUL")

	if !strings.Contains(text.String(), "msg=step") || !strings.Contains(text.String(), "op=MUL") {
		t.Fatalf("unexpected text record: %q", text.String())
	}

	var rec map[string]interface{}
	if err := json.Unmarshal(trace.Bytes(), &rec); err != nil {
		t.Fatalf("trace is not json: %v: %q", err, trace.String())
	}
	if rec["msg"] != "step" || rec["ip"] != float64(4) {
		t.Fatalf("unexpected trace record: %v", rec)
	}
}

func TestLevel(t *testing.T) {
	var text bytes.Buffer

	log := New(Options{Level: slog.LevelWarn, Stderr: &text})
	log.Info("ignored")
	log.Warn("kept")

	if strings.Contains(text.String(), "ignored") || !strings.Contains(text.String(), "kept") {
		t.Fatalf("unexpected output: %q", text.String())
	}
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	} {
		if have := ParseLevel(name); have != want {
			t.Fatalf("%q: want %v; have %v", name, want, have)
		}
	}
}

func TestJournalKey(t *testing.T) {
	if have := journalKey("node.cycles-2"); have != "NODE_CYCLES_2" {
		t.Fatalf("want NODE_CYCLES_2; have %s", have)
	}
}
