package telemetry

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestPrettyHandler_LevelsAndAttrs(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	InitWriter(&buf, slog.LevelInfo)

	Debugf("hidden %d", 1)
	Infof("season %d", 1995)
	L().With("games", 2016).Warn("short season")
	Errorf("store %s", "failed")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line should be filtered at info level:\n%s", out)
	}
	if !strings.Contains(out, "] season 1995\n") {
		t.Errorf("missing info line:\n%s", out)
	}
	if !strings.Contains(out, "WARN: short season games=2016") {
		t.Errorf("missing warn line with attrs:\n%s", out)
	}
	if !strings.Contains(out, "ERROR: store failed\n") {
		t.Errorf("missing error line:\n%s", out)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
