package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/bmk-dev/bmk/internal/model"
)

// updateBrowse handles keys in ModeBrowse, the only mode that allows
// selection movement, launching and entering the other modes.
func (a App) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.mode = ModeQuitting
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		a.moveSelection(1)

	case key.Matches(msg, a.keys.Up):
		a.moveSelection(-1)

	case key.Matches(msg, a.keys.Top):
		a.selectFirst()

	case key.Matches(msg, a.keys.Bottom):
		a.selectLast()

	case key.Matches(msg, a.keys.Open):
		b, ok := a.Selected()
		if !ok {
			return a, nil
		}
		a.setMessage(MessageInfo, "Opening "+b.Name+"...")
		return a, launchCmd(a.ctx, a.launcher, b)

	case key.Matches(msg, a.keys.YankURL):
		b, ok := a.Selected()
		if !ok {
			return a, nil
		}
		if err := a.copyText(b.URL); err != nil {
			a.setMessage(MessageError, "Copy failed: "+err.Error())
			return a, nil
		}
		a.setMessage(MessageSuccess, "Copied "+b.URL)

	case key.Matches(msg, a.keys.Search):
		a.mode = ModeSearching
		a.search.Input.SetValue(a.query)
		a.search.Input.CursorEnd()
		return a, a.search.Input.Focus()

	case key.Matches(msg, a.keys.TagFilter):
		tags := a.store.Tags()
		if len(tags) == 0 {
			a.setMessage(MessageInfo, "No tags to filter by")
			return a, nil
		}
		a.tagPicker.Reset(tags, a.activeTag)
		a.mode = ModeTagPicking

	case key.Matches(msg, a.keys.ClearFilters):
		a.query = ""
		a.activeTag = ""
		a.refreshView()

	case key.Matches(msg, a.keys.Add):
		a.form.Reset(nil)
		a.mode = ModeAdding

	case key.Matches(msg, a.keys.Edit):
		b, ok := a.Selected()
		if !ok {
			return a, nil
		}
		a.form.Reset(&b)
		a.mode = ModeEditing

	case key.Matches(msg, a.keys.Delete):
		if _, ok := a.Selected(); !ok {
			return a, nil
		}
		a.mode = ModeConfirmDelete
	}

	return a, nil
}

// updateSearching edits the search buffer, recomputing the view on every change.
func (a App) updateSearching(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Accept):
		a.query = a.search.Input.Value()
		a.search.Input.Blur()
		a.enterBrowse()
		a.refreshView()
		return a, nil

	case key.Matches(msg, a.keys.Cancel):
		a.search.Input.Blur()
		a.enterBrowse()
		a.refreshView()
		return a, nil
	}

	before := a.search.Input.Value()
	var cmd tea.Cmd
	a.search.Input, cmd = a.search.Input.Update(msg)
	if a.search.Input.Value() != before {
		a.refreshView()
	}
	return a, cmd
}

// updateTagPicking moves the tag cursor and applies or discards the choice.
func (a App) updateTagPicking(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Down):
		a.tagPicker.Move(1)

	case key.Matches(msg, a.keys.Up):
		a.tagPicker.Move(-1)

	case key.Matches(msg, a.keys.Top):
		a.tagPicker.Cursor = 0

	case key.Matches(msg, a.keys.Bottom):
		a.tagPicker.Cursor = len(a.tagPicker.Options) - 1

	case key.Matches(msg, a.keys.Accept):
		a.activeTag = a.tagPicker.Selected()
		a.enterBrowse()
		a.refreshView()

	case key.Matches(msg, a.keys.Cancel):
		a.enterBrowse()
	}

	return a, nil
}

// updateForm handles the add/edit form.
func (a App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.enterBrowse()
		return a, nil

	case key.Matches(msg, a.keys.Submit):
		return a.submitForm()

	case key.Matches(msg, a.keys.Accept):
		if a.form.OnLastField() {
			return a.submitForm()
		}
		a.form.Next()
		return a, nil

	case key.Matches(msg, a.keys.NextField):
		a.form.Next()
		return a, nil

	case key.Matches(msg, a.keys.PrevField):
		a.form.Prev()
		return a, nil
	}

	var cmd tea.Cmd
	a.form.Inputs[a.form.Focus], cmd = a.form.Inputs[a.form.Focus].Update(msg)
	return a, cmd
}

// submitForm validates the form and applies it to a copy of the store.
// The copy replaces the store only after it was saved.
func (a App) submitForm() (tea.Model, tea.Cmd) {
	b := a.form.Bookmark()
	next := a.store.Clone()

	var err error
	if a.mode == ModeAdding {
		err = next.AddBookmark(b)
	} else {
		err = next.UpdateBookmark(a.form.EditName, b)
	}
	if err != nil {
		a.setMessage(MessageError, formError(err, b.Name))
		return a, nil
	}

	prev := ""
	if sel, ok := a.Selected(); ok {
		prev = sel.Name
	}
	if err := a.save(next); err != nil {
		a.setMessage(MessageError, "Save failed: "+err.Error())
		return a, nil
	}

	if a.mode == ModeAdding {
		log.Info().Str("name", b.Name).Msg("bookmark added")
		a.setMessage(MessageSuccess, "Added "+b.Name)
	} else {
		log.Info().Str("name", a.form.EditName).Str("new_name", b.Name).Msg("bookmark updated")
		a.setMessage(MessageSuccess, "Updated "+b.Name)
		if prev == a.form.EditName {
			prev = b.Name
		}
	}

	a.enterBrowse()
	a.refreshViewSelecting(prev)
	return a, nil
}

func formError(err error, name string) string {
	switch {
	case errors.Is(err, model.ErrDuplicateName):
		return fmt.Sprintf("A bookmark named %q already exists", name)
	case errors.Is(err, model.ErrValidation):
		return "Name and URL are required"
	default:
		return err.Error()
	}
}

// updateConfirmDelete removes the selected bookmark on confirmation.
func (a App) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Confirm):
		b, ok := a.Selected()
		if !ok {
			a.enterBrowse()
			return a, nil
		}

		next := a.store.Clone()
		if err := next.RemoveBookmark(b.Name); err != nil {
			a.setMessage(MessageError, err.Error())
			a.enterBrowse()
			return a, nil
		}
		if err := a.save(next); err != nil {
			a.setMessage(MessageError, "Save failed: "+err.Error())
			return a, nil
		}

		log.Info().Str("name", b.Name).Msg("bookmark removed")
		a.setMessage(MessageSuccess, "Deleted "+b.Name)
		a.enterBrowse()
		a.refreshView()

	case key.Matches(msg, a.keys.Deny):
		a.enterBrowse()
	}

	return a, nil
}

// handleLaunchResult surfaces the outcome of a launch.
func (a App) handleLaunchResult(msg launchResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.Warn().Err(msg.err).Str("name", msg.name).Msg("launch failed")
		a.setMessage(MessageError, "Open failed: "+msg.err.Error())
		return a, nil
	}

	log.Info().Str("name", msg.name).Str("url", msg.url).Msg("launched")
	if a.quitOnOpen && a.mode == ModeBrowse {
		a.mode = ModeQuitting
		return a, tea.Quit
	}
	a.setMessage(MessageSuccess, "Opened "+msg.name)
	return a, nil
}

// handleFileChanged reloads the store now in Browse, or once the active
// modal finishes.
func (a App) handleFileChanged() (tea.Model, tea.Cmd) {
	if a.mode == ModeBrowse {
		a.reload()
	} else {
		a.reloadPending = true
	}
	return a, waitForChange(a.changes)
}
