package logger

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		DebugLevel: zapcore.DebugLevel,
		InfoLevel:  zapcore.InfoLevel,
		WarnLevel:  zapcore.WarnLevel,
		ErrorLevel: zapcore.ErrorLevel,
		"verbose":  zapcore.InfoLevel,
		"":         zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := toZapLevel(in); got != want {
			t.Errorf("toZapLevel(%q) = %v; want %v", in, got, want)
		}
	}
}

func TestNew_FiltersByLevelAndWritesFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(WarnLevel, &buf)

	log.Infow("cooldown_active", "remaining", "2m0s")
	log.Warnw("cache_malformed", "path", "templog.txt")
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "cooldown_active") {
		t.Fatalf("info line written at warn level: %q", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "cache_malformed") {
		t.Fatalf("missing warn line: %q", out)
	}
	if !strings.Contains(out, `"path": "templog.txt"`) {
		t.Fatalf("missing field: %q", out)
	}
}

func TestNop(t *testing.T) {
	Nop().Errorw("ignored", "k", "v")
}
