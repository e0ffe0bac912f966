// Package logging configures the global zerolog logger.
//
// The TUI owns the terminal, so log output goes to a file or nowhere.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Options controls logger setup.
type Options struct {
	Level string // trace|debug|info|warn|error|disabled
	File  string // empty means $XDG_STATE_HOME/bmk/bmk.log
	Debug bool   // forces debug level and enables the file
}

// Setup installs the global logger. The returned closer releases the log
// file and is safe to call when logging is disabled.
func Setup(opts Options) (io.Closer, error) {
	level := ParseLevel(opts.Level)
	if opts.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if level == zerolog.Disabled {
		zlog.Logger = zerolog.Nop()
		return nopCloser{}, nil
	}

	path := opts.File
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	zlog.Logger = New(f, level)
	return f, nil
}

// New returns a timestamped logger writing JSON lines to w.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

// DefaultPath returns $XDG_STATE_HOME/bmk/bmk.log.
func DefaultPath() (string, error) {
	return xdg.StateFile(filepath.Join("bmk", "bmk.log"))
}

// ParseLevel maps a level name to a zerolog level. Unknown names and
// "disabled"/"off"/"" disable logging.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.Disabled
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
