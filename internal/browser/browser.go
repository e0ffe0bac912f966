// Package browser opens URLs in an external browser.
package browser

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrLaunch is returned when the browser could not be started or exited with failure.
var ErrLaunch = errors.New("launch browser")

// DefaultTimeout bounds how long Open waits for the opener to exit.
const DefaultTimeout = 5 * time.Second

// Launcher opens a URL.
type Launcher interface {
	Open(ctx context.Context, url string) error
}

// SystemLauncher opens URLs with the platform opener (open, xdg-open,
// rundll32) or with a configured browser command.
type SystemLauncher struct {
	// Browser overrides the platform opener. It is split on whitespace;
	// a "%s" argument is replaced by the URL, otherwise the URL is appended.
	Browser string
	// Timeout is how long to wait for the opener to exit. An opener still
	// running after the timeout is treated as launched.
	Timeout time.Duration
}

// NewSystemLauncher creates a SystemLauncher.
func NewSystemLauncher(browser string, timeout time.Duration) *SystemLauncher {
	return &SystemLauncher{Browser: browser, Timeout: timeout}
}

// Open starts the opener for url and waits for it to exit, the timeout to
// elapse, or ctx to be cancelled.
func (l *SystemLauncher) Open(ctx context.Context, url string) error {
	name, args, err := l.command(url)
	if err != nil {
		return err
	}

	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrLaunch, name, err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	timeout := l.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrLaunch, name, err)
		}
		log.Debug().Str("url", url).Str("opener", name).Msg("launched")
		return nil
	case <-timer.C:
		log.Debug().Str("url", url).Str("opener", name).Dur("timeout", timeout).Msg("opener still running, assuming launched")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrLaunch, ctx.Err())
	}
}

func (l *SystemLauncher) command(url string) (string, []string, error) {
	if fields := strings.Fields(l.Browser); len(fields) > 0 {
		args := fields[1:]
		replaced := false
		for i, arg := range args {
			if strings.Contains(arg, "%s") {
				args[i] = strings.ReplaceAll(arg, "%s", url)
				replaced = true
			}
		}
		if !replaced {
			args = append(args, url)
		}
		return fields[0], args, nil
	}

	switch runtime.GOOS {
	case "darwin":
		return "open", []string{url}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{url}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, nil
	default:
		return "", nil, fmt.Errorf("%w: no opener for %s", ErrLaunch, runtime.GOOS)
	}
}
