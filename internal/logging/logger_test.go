package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"verbose", LevelVerbose, false},
		{"VERBOSE", LevelVerbose, false},
		{"debug", LevelDebug, false},
		{"info", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"none", LevelNone, false},
		{"loud", LevelNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHelpersRespectLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelWarn)

	Debug(logger, "hidden %d", 1)
	Info(logger, "hidden %d", 2)
	Warn(logger, "shown %d", 3)
	Error(logger, "shown %d", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected debug/info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "shown 3") || !strings.Contains(out, "shown 4") {
		t.Errorf("expected warn/error lines, got %q", out)
	}
}

func TestVerboseReachesTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelVerbose)

	Verbose(logger, "queued %s", "msg")

	if !strings.Contains(buf.String(), "queued msg") {
		t.Errorf("expected trace output, got %q", buf.String())
	}
}

func TestNoneDiscards(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelNone)

	Error(logger, "dropped")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	Debug(nil, "nothing")
	Error(nil, "nothing")
}

func TestDeriveKeepsOutputAndFilters(t *testing.T) {
	var buf bytes.Buffer
	parent := New(&buf, LevelVerbose)

	child := Derive(parent, LevelError)
	Warn(child, "quiet")
	Error(child, "loud")

	if strings.Contains(buf.String(), "quiet") {
		t.Errorf("expected warn to be filtered, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "loud") {
		t.Errorf("expected error on parent output, got %q", buf.String())
	}

	if Derive(nil, LevelVerbose) == nil {
		t.Error("Derive(nil) should return a usable logger")
	}
}
