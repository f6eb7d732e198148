package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestLogger_EventChaining(t *testing.T) {
	var buf bytes.Buffer
	prev := *Logger()
	defer Set(prev)

	Set(zerolog.New(&buf).Level(zerolog.DebugLevel))

	// The accessor must support chaining event constructors directly
	Logger().Warn().Str("path", "/tmp/x.png").Msg("failed to remove stale artifact")
	Logger().Debug().Msg("diff generation failed")

	out := buf.String()
	if !strings.Contains(out, "failed to remove stale artifact") {
		t.Errorf("warn event not written: %q", out)
	}
	if !strings.Contains(out, "diff generation failed") {
		t.Errorf("debug event not written: %q", out)
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	prev := *Logger()
	defer Set(prev)

	Set(zerolog.New(&buf))
	SetLevel(zerolog.ErrorLevel)

	Logger().Warn().Msg("suppressed")
	if buf.Len() != 0 {
		t.Errorf("warn event written below level: %q", buf.String())
	}

	Logger().Error().Msg("reported")
	if !strings.Contains(buf.String(), "reported") {
		t.Errorf("error event not written: %q", buf.String())
	}
}
