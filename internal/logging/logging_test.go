package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"gotest.tools/v3/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":    zerolog.TraceLevel,
		"DEBUG":    zerolog.DebugLevel,
		" info ":   zerolog.InfoLevel,
		"warning":  zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"disabled": zerolog.Disabled,
		"":         zerolog.Disabled,
		"loud":     zerolog.Disabled,
	}
	for in, want := range tests {
		assert.Equal(t, ParseLevel(in), want, "level %q", in)
	}
}

func TestNew_WritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, zerolog.InfoLevel)

	logger.Debug().Msg("hidden")
	logger.Info().Str("name", "gh").Msg("saved")

	out := buf.String()
	assert.Assert(t, !strings.Contains(out, "hidden"))
	assert.Assert(t, strings.Contains(out, `"name":"gh"`))
	assert.Assert(t, strings.Contains(out, `"message":"saved"`))
}

func TestSetup_DisabledWritesNothing(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)
	path := filepath.Join(t.TempDir(), "bmk.log")

	closer, err := Setup(Options{Level: "disabled", File: path})
	assert.NilError(t, err)
	defer closer.Close()

	zlog.Info().Msg("nope")

	_, err = os.Stat(path)
	assert.Assert(t, os.IsNotExist(err))
}

func TestSetup_DebugFlagEnablesFile(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)
	path := filepath.Join(t.TempDir(), "logs", "bmk.log")

	closer, err := Setup(Options{Level: "disabled", File: path, Debug: true})
	assert.NilError(t, err)

	zlog.Debug().Msg("debugging")
	assert.NilError(t, closer.Close())

	data, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(string(data), "debugging"))
}
