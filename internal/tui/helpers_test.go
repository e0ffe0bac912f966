package tui_test

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bmk-dev/bmk/internal/model"
	"github.com/bmk-dev/bmk/internal/tui"
)

// fakeStorage records saves and serves loads from memory.
type fakeStorage struct {
	loadStore *model.Store
	loadErr   error
	saveErr   error
	saved     []*model.Store
}

func (s *fakeStorage) Load() (*model.Store, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.loadStore == nil {
		return model.NewStore(), nil
	}
	return s.loadStore.Clone(), nil
}

func (s *fakeStorage) Save(store *model.Store) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, store.Clone())
	return nil
}

func (s *fakeStorage) Path() string { return "bookmarks.yaml" }

// fakeLauncher records opened URLs.
type fakeLauncher struct {
	opened []string
	err    error
}

func (l *fakeLauncher) Open(_ context.Context, url string) error {
	l.opened = append(l.opened, url)
	return l.err
}

// scenarioStore is the two-bookmark list used across the state machine tests.
func scenarioStore() *model.Store {
	return &model.Store{
		Bookmarks: []model.Bookmark{
			{Name: "gh", URL: "https://github.com", Tags: []string{"dev"}},
			{Name: "docs", URL: "https://doc.rust-lang.org", Tags: []string{"dev", "rust"}},
		},
	}
}

type testEnv struct {
	storage  *fakeStorage
	launcher *fakeLauncher
	copied   []string
}

func (e *testEnv) copy(text string) error {
	e.copied = append(e.copied, text)
	return nil
}

func newTestApp(t *testing.T, store *model.Store, opts ...func(*tui.AppParams)) (tui.App, *testEnv) {
	t.Helper()
	env := &testEnv{
		storage:  &fakeStorage{},
		launcher: &fakeLauncher{},
	}
	params := tui.AppParams{
		Store:     store,
		Storage:   env.storage,
		Launcher:  env.launcher,
		Clipboard: env.copy,
	}
	for _, opt := range opts {
		opt(&params)
	}
	return tui.NewApp(params).WithDimensions(100, 30), env
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// press sends each key in order and returns the final App and the last command.
func press(app tui.App, keys ...string) (tui.App, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var updated tea.Model
		updated, cmd = app.Update(keyMsg(k))
		app = updated.(tui.App)
	}
	return app, cmd
}

// typeText sends s one rune at a time.
func typeText(app tui.App, s string) tui.App {
	for _, r := range s {
		app, _ = press(app, string(r))
	}
	return app
}

// send delivers a message produced by a command.
func send(app tui.App, msg tea.Msg) (tui.App, tea.Cmd) {
	updated, cmd := app.Update(msg)
	return updated.(tui.App), cmd
}

func resultNames(app tui.App) []string {
	var names []string
	for _, r := range app.Results() {
		names = append(names, r.Bookmark.Name)
	}
	return names
}

func selectedName(app tui.App) string {
	b, ok := app.Selected()
	if !ok {
		return ""
	}
	return b.Name
}
