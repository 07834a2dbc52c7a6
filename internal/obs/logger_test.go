package obs

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestZerolog_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerolog(&buf, Info, false)
	l.Logf(Debug, "hidden %d", 1)
	l.Logf(Warn, "write failed: %s", "reset")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}
	var rec map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec["level"] != "warn" {
		t.Fatalf("level=%v", rec["level"])
	}
	if rec["message"] != "write failed: reset" {
		t.Fatalf("message=%v", rec["message"])
	}
	if _, ok := rec["time"]; !ok {
		t.Fatal("missing time field")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"debug": Debug, "INFO": Info, "": Info, "warning": Warn, " error ": Error}
	for in, want := range cases {
		got, ok := ParseLevel(in)
		if !ok || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", in, got, ok, want)
		}
	}
	if _, ok := ParseLevel("loud"); ok {
		t.Fatal("ParseLevel accepted an unknown level")
	}
}
