package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bmk-dev/bmk/internal/model"
	"github.com/bmk-dev/bmk/internal/picker"
	"github.com/bmk-dev/bmk/internal/search"
	"github.com/bmk-dev/bmk/internal/storage"
	"github.com/bmk-dev/bmk/internal/tui"
)

// runTUI runs the full interactive TUI.
func (rt *env) runTUI(c *cobra.Command) error {
	s, err := rt.openStorage()
	if err != nil {
		return err
	}
	defer storage.Close(s)
	path := s.Path()

	store, err := s.Load()
	if err != nil {
		return fmt.Errorf("load bookmarks: %w", err)
	}
	log.Info().Str("file", path).Int("count", store.Len()).Msg("starting")

	// Editing the file elsewhere while the TUI runs reloads the list.
	var changes <-chan struct{}
	if w, err := storage.Watch(path); err != nil {
		log.Warn().Err(err).Str("file", path).Msg("file watch unavailable")
	} else {
		defer w.Close()
		changes = w.Changes()
	}

	app := tui.NewApp(tui.AppParams{
		Store:      store,
		Storage:    s,
		Launcher:   rt.newLauncher(rt.cfg),
		Changes:    changes,
		Context:    c.Context(),
		QuitOnOpen: rt.cfg.QuitOnOpen,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(c.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	log.Info().Msg("exiting")
	return nil
}

// runLaunch opens the best match for query, or lets the user pick among all
// matches when pick is set.
func (rt *env) runLaunch(c *cobra.Command, query string, pick bool) error {
	store, err := rt.loadStore()
	if err != nil {
		return err
	}

	b, err := search.Resolve(query, store.Bookmarks)
	if err != nil {
		return err
	}

	if pick {
		if results := search.ComputeView(store.Bookmarks, query, ""); len(results) > 1 {
			chosen, ok, err := runPicker(results, query)
			if err != nil || !ok {
				return err
			}
			b = chosen
		}
	}

	return rt.launch(c, b)
}

func runPicker(results []search.Result, query string) (model.Bookmark, bool, error) {
	program := tea.NewProgram(picker.New(results, query))
	finalModel, err := program.Run()
	if err != nil {
		return model.Bookmark{}, false, fmt.Errorf("picker: %w", err)
	}

	b, ok := finalModel.(picker.Picker).SelectedBookmark()
	return b, ok, nil
}

// launch opens b in the browser and waits for the launcher to report back.
func (rt *env) launch(c *cobra.Command, b model.Bookmark) error {
	fmt.Fprintf(c.OutOrStdout(), "Opening %s (%s)\n", b.Name, b.URL)

	if err := rt.newLauncher(rt.cfg).Open(c.Context(), b.URL); err != nil {
		log.Warn().Err(err).Str("name", b.Name).Msg("launch failed")
		return err
	}
	log.Info().Str("name", b.Name).Str("url", b.URL).Msg("launched")
	return nil
}

// loadStore reads the bookmarks without keeping the storage open.
func (rt *env) loadStore() (*model.Store, error) {
	var store *model.Store
	err := rt.withStore(func(s *model.Store) (bool, error) {
		store = s
		return false, nil
	})
	return store, err
}
