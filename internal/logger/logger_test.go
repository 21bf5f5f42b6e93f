package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestRedactsPersonalFields(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "info", "json")
	if err != nil {
		t.Fatalf("NewWithWriter: %v", err)
	}

	log.Info("profile committed", "email", "jo@example.com", "first_name", "Jo", "session", "abc")
	log.Sync()

	out := buf.String()
	if strings.Contains(out, "jo@example.com") || strings.Contains(out, `"Jo"`) {
		t.Fatalf("personal data leaked: %s", out)
	}
	if !strings.Contains(out, `"session":"abc"`) {
		t.Fatalf("output = %s, want session field kept", out)
	}
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "warn", "console")
	if err != nil {
		t.Fatalf("NewWithWriter: %v", err)
	}
	log.Info("hidden")
	log.Warn("shown")
	log.Sync()

	if strings.Contains(buf.String(), "hidden") {
		t.Fatal("info message written at warn level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Fatal("warn message missing")
	}
}

func TestBadLevel(t *testing.T) {
	if _, err := New("loud", "json"); err == nil {
		t.Fatal("New(loud) = nil error, want error")
	}
}
