package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger("warn", &buf)
	log.Info("hidden")
	log.With("component", "tui").Warn("shown", "id", "A")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info must be filtered: %s", out)
	}
	if !strings.Contains(out, "component=tui") || !strings.Contains(out, "id=A") {
		t.Fatalf("expected attributes in %q", out)
	}

	log.SetLevel("debug")
	log.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Fatalf("expected debug after SetLevel")
	}
}

func TestOpen(t *testing.T) {
	log, closer, err := Open("", "info")
	if err != nil || log == nil {
		t.Fatalf("expected discarding logger, got %v", err)
	}
	closer.Close()

	path := filepath.Join(t.TempDir(), "trip.log")
	log, closer, err = Open(path, "info")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log.Info("hello")
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "msg=hello") {
		t.Fatalf("unexpected log contents %q", data)
	}
}
