package shared

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLogLevel(t *testing.T) {
	tc := []struct {
		name    string
		level   string
		want    log.Level
		wantErr bool
	}{
		{name: "empty defaults to info", level: "", want: log.InfoLevel},
		{name: "debug", level: "debug", want: log.DebugLevel},
		{name: "mixed case", level: "WaRn", want: log.WarnLevel},
		{name: "padded", level: "  error ", want: log.ErrorLevel},
		{name: "unknown", level: "chatty", want: log.InfoLevel, wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLogLevel(tt.level)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Fatalf("expected ErrInvalidConfig, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestLogger(t *testing.T) {
	t.Run("WithLogger adds fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "component", "auth")
		logger.Info("hello")

		if !strings.Contains(buf.String(), "component=auth") {
			t.Errorf("expected component field in output, got %q", buf.String())
		}
	})

	t.Run("SetLogLevel filters", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.ErrorLevel)
		logger.Info("quiet")

		if buf.Len() != 0 {
			t.Errorf("expected no output below error level, got %q", buf.String())
		}
	})

	t.Run("NewFileLogger creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "tunebox.log")
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("failed to create file logger: %v", err)
		}
		logger.Info("written")
	})

	t.Run("GenerateID is unique", func(t *testing.T) {
		if GenerateID() == GenerateID() {
			t.Error("expected distinct IDs")
		}
	})
}
