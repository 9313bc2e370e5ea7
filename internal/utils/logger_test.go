package utils

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func captureLog(t *testing.T, level LogLevel, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags, prevLevel := log.Writer(), log.Flags(), CurrentLevel
	log.SetOutput(&buf)
	log.SetFlags(0)
	CurrentLevel = level
	defer func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
		CurrentLevel = prevLevel
	}()
	fn()
	return buf.String()
}

func TestLevelFiltering(t *testing.T) {
	out := captureLog(t, LevelWarn, func() {
		Debug("hidden debug")
		Info("hidden info")
		Warn("shown %d", 1)
		Error("shown %d", 2)
	})

	if strings.Contains(out, "hidden") {
		t.Errorf("Expected debug and info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "[WARN]") || !strings.Contains(out, "shown 1") {
		t.Errorf("Expected warn line, got %q", out)
	}
	if !strings.Contains(out, "[ERROR]") || !strings.Contains(out, "shown 2") {
		t.Errorf("Expected error line, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
		ok   bool
	}{
		{"debug", LevelDebug, true},
		{" INFO ", LevelInfo, true},
		{"warning", LevelWarn, true},
		{"Error", LevelError, true},
		{"loud", LevelWarn, false},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseLevel(%q): expected ok=%v, got err %v", tt.in, tt.ok, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestRaylibLogCallback(t *testing.T) {
	out := captureLog(t, LevelInfo, func() {
		RaylibLogCallback(2, "trace line")
		RaylibLogCallback(3, "TEXTURE: 100% loaded")
		RaylibLogCallback(4, "warning line")
	})

	if strings.Contains(out, "trace line") {
		t.Errorf("Expected raylib debug output to be filtered at info level, got %q", out)
	}
	if !strings.Contains(out, "TEXTURE: 100% loaded") {
		t.Errorf("Expected raylib info text to pass through verbatim, got %q", out)
	}
	if !strings.Contains(out, "[RAYLIB]") || !strings.Contains(out, "warning line") {
		t.Errorf("Expected raylib warning line, got %q", out)
	}
}

func TestRaylibInfoShownAboveLevel(t *testing.T) {
	prev := ShowRaylibInfo
	ShowRaylibInfo = true
	defer func() { ShowRaylibInfo = prev }()

	out := captureLog(t, LevelWarn, func() {
		RaylibLogCallback(3, "INIT: raylib ready")
	})

	if !strings.Contains(out, "INIT: raylib ready") {
		t.Fatalf("Expected raylib info despite warn level, got %q", out)
	}
	if !strings.Contains(out, "[INFO]") || strings.Contains(out, "[WARN]") {
		t.Errorf("Expected the line labelled INFO, got %q", out)
	}
}
