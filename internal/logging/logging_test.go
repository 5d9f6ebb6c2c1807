package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zap.DebugLevel},
		{"INFO", zap.InfoLevel},
		{" error ", zap.ErrorLevel},
		{"warn", zap.WarnLevel},
		{"warning", zap.WarnLevel},
		{"", zap.WarnLevel},
		{"verbose", zap.WarnLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	for _, dev := range []bool{false, true} {
		logger, err := New("debug", dev)
		if err != nil {
			t.Fatalf("New(debug, %v): %v", dev, err)
		}
		if !logger.Desugar().Core().Enabled(zap.DebugLevel) {
			t.Errorf("expected debug enabled (development=%v)", dev)
		}
		_ = logger.Sync()
	}

	logger, err := New("error", false)
	if err != nil {
		t.Fatal(err)
	}
	if logger.Desugar().Core().Enabled(zap.WarnLevel) {
		t.Error("expected warn disabled at error level")
	}
}
