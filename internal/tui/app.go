package tui

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/bmk-dev/bmk/internal/browser"
	"github.com/bmk-dev/bmk/internal/model"
	"github.com/bmk-dev/bmk/internal/search"
	"github.com/bmk-dev/bmk/internal/storage"
	"github.com/bmk-dev/bmk/internal/tui/layout"
)

// App is the main bubbletea model for the bookmark manager.
type App struct {
	store    *model.Store
	storage  storage.Storage
	launcher browser.Launcher
	copyText func(string) error
	changes  <-chan struct{}
	ctx      context.Context

	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig
	quitOnOpen   bool

	mode      Mode
	query     string // committed search query
	activeTag string
	results   []search.Result
	selected  int // index into results, -1 when results is empty

	search    SearchState
	tagPicker TagPickerState
	form      FormState

	// Reload requested by the file watcher while a modal was open.
	reloadPending bool

	messageText string
	messageType MessageType

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Store    *model.Store
	Storage  storage.Storage
	Launcher browser.Launcher // optional, uses the system opener if nil

	// Clipboard writes text to the system clipboard (optional).
	Clipboard func(string) error

	// Changes signals external modification of the bookmarks file (optional).
	Changes <-chan struct{}

	// Context bounds browser launches (optional).
	Context context.Context

	QuitOnOpen bool

	Keys   *KeyMap              // optional, uses default if nil
	Styles *Styles              // optional, uses default if nil
	Layout *layout.LayoutConfig // optional, uses default if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.Layout != nil {
		layoutCfg = *params.Layout
	}

	store := params.Store
	if store == nil {
		store = model.NewStore()
	}

	launcher := params.Launcher
	if launcher == nil {
		launcher = browser.NewSystemLauncher("", 0)
	}

	copyText := params.Clipboard
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	ctx := params.Context
	if ctx == nil {
		ctx = context.Background()
	}

	app := App{
		store:        store,
		storage:      params.Storage,
		launcher:     launcher,
		copyText:     copyText,
		changes:      params.Changes,
		ctx:          ctx,
		keys:         keys,
		styles:       styles,
		layoutConfig: layoutCfg,
		quitOnOpen:   params.QuitOnOpen,
		mode:         ModeBrowse,
		selected:     -1,
		search:       NewSearchState(layoutCfg),
		form:         NewFormState(layoutCfg),
		width:        80,
		height:       24,
	}

	app.refreshView()
	return app
}

// WithDimensions returns a copy of the App sized to width x height.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Store returns the current bookmark store.
func (a App) Store() *model.Store {
	return a.store
}

// Mode returns the active interaction mode.
func (a App) Mode() Mode {
	return a.mode
}

// Results returns the current filtered view.
func (a App) Results() []search.Result {
	return a.results
}

// SelectedIndex returns the selection index, or -1 when the view is empty.
func (a App) SelectedIndex() int {
	return a.selected
}

// Selected returns the selected bookmark, if any.
func (a App) Selected() (model.Bookmark, bool) {
	if a.selected < 0 || a.selected >= len(a.results) {
		return model.Bookmark{}, false
	}
	return a.results[a.selected].Bookmark, true
}

// Query returns the committed search query.
func (a App) Query() string {
	return a.query
}

// ActiveTag returns the tag filter, or "" when none is active.
func (a App) ActiveTag() string {
	return a.activeTag
}

// TagOptions returns the tag picker choices; "" stands for all bookmarks.
func (a App) TagOptions() []string {
	return a.tagPicker.Options
}

// Message returns the current message line and its type.
func (a App) Message() (string, MessageType) {
	return a.messageText, a.messageType
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return waitForChange(a.changes)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case launchResultMsg:
		return a.handleLaunchResult(msg)

	case fileChangedMsg:
		return a.handleFileChanged()

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			a.mode = ModeQuitting
			return a, tea.Quit
		}

		a.clearMessage()

		switch a.mode {
		case ModeBrowse:
			return a.updateBrowse(msg)
		case ModeSearching:
			return a.updateSearching(msg)
		case ModeTagPicking:
			return a.updateTagPicking(msg)
		case ModeAdding, ModeEditing:
			return a.updateForm(msg)
		case ModeConfirmDelete:
			return a.updateConfirmDelete(msg)
		}
	}

	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}

// enterBrowse returns to ModeBrowse and applies a reload deferred while a
// modal was open.
func (a *App) enterBrowse() {
	a.mode = ModeBrowse
	if a.reloadPending {
		a.reloadPending = false
		a.reload()
	}
}

// save persists next and, on success, makes it the current store.
// On failure the current store is left untouched.
func (a *App) save(next *model.Store) error {
	if a.storage != nil {
		if err := a.storage.Save(next); err != nil {
			log.Error().Err(err).Msg("save bookmarks")
			return err
		}
	}
	a.store = next
	return nil
}

// reload replaces the store with the file's contents. A file that fails to
// load leaves the in-memory list in place.
func (a *App) reload() {
	if a.storage == nil {
		return
	}
	loaded, err := a.storage.Load()
	if err != nil {
		log.Warn().Err(err).Msg("reload bookmarks")
		a.setMessage(MessageError, "Reload failed: "+err.Error())
		return
	}
	if sameBookmarks(loaded, a.store) {
		return
	}
	a.store = loaded
	a.refreshView()
	log.Info().Int("count", loaded.Len()).Msg("bookmarks reloaded")
	a.setMessage(MessageInfo, "Bookmarks reloaded")
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

func (a *App) clearMessage() {
	a.messageText = ""
	a.messageType = MessageInfo
}
