package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bmk-dev/bmk/internal/browser"
	"github.com/bmk-dev/bmk/internal/model"
)

// launchResultMsg reports the outcome of a browser launch.
type launchResultMsg struct {
	name string
	url  string
	err  error
}

// fileChangedMsg signals that the bookmarks file changed on disk.
type fileChangedMsg struct{}

// launchCmd opens the bookmark's URL off the event loop.
func launchCmd(ctx context.Context, l browser.Launcher, b model.Bookmark) tea.Cmd {
	return func() tea.Msg {
		err := l.Open(ctx, b.URL)
		return launchResultMsg{name: b.Name, url: b.URL, err: err}
	}
}

// waitForChange blocks until the watcher reports a change. It returns nil
// once the channel is closed, which ends the watch loop.
func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}
