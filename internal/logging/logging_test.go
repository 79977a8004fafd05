package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		name    string
		level   string
		format  string
		wantErr bool
	}{
		{"text info", "info", "text", false},
		{"json debug", "debug", "json", false},
		{"upper case", "WARN", "JSON", false},
		{"bad level", "loud", "text", true},
		{"bad format", "info", "xml", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(&bytes.Buffer{}, tc.level, tc.format)
			if (err != nil) != tc.wantErr {
				t.Errorf("New(%q, %q) error = %v, wantErr %v", tc.level, tc.format, err, tc.wantErr)
			}
		})
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn", "json")
	if err != nil {
		t.Fatalf("New() returned an unexpected error: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("shown", "deck", "d1")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected one line, got %q", buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Expected JSON output, got %q", lines[0])
	}
	if entry["msg"] != "shown" || entry["deck"] != "d1" {
		t.Errorf("Unexpected entry: %v", entry)
	}
}
