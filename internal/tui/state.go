package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/bmk-dev/bmk/internal/model"
	"github.com/bmk-dev/bmk/internal/tui/layout"
)

// Mode is the interaction state of the App. Exactly one is active.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeSearching
	ModeTagPicking
	ModeAdding
	ModeEditing
	ModeConfirmDelete
	ModeQuitting
)

func (m Mode) String() string {
	switch m {
	case ModeBrowse:
		return "browse"
	case ModeSearching:
		return "searching"
	case ModeTagPicking:
		return "tag-picking"
	case ModeAdding:
		return "adding"
	case ModeEditing:
		return "editing"
	case ModeConfirmDelete:
		return "confirm-delete"
	case ModeQuitting:
		return "quitting"
	default:
		return "unknown"
	}
}

// MessageType determines the styling of the message line.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// SearchState holds the search buffer while in ModeSearching.
type SearchState struct {
	Input textinput.Model
}

// NewSearchState creates a new SearchState with an initialized input.
func NewSearchState(cfg layout.LayoutConfig) SearchState {
	input := textinput.New()
	input.Prompt = "/"
	input.Placeholder = "search..."
	input.CharLimit = cfg.Input.SearchCharLimit
	input.Width = cfg.Input.StandardWidth
	return SearchState{Input: input}
}

// TagPickerState holds the tag choices while in ModeTagPicking.
// Options[0] is always the empty string, meaning "all bookmarks".
type TagPickerState struct {
	Options []string
	Cursor  int
}

// Reset loads the choices for a new picking session, placing the cursor on
// the currently active tag.
func (t *TagPickerState) Reset(tags []string, active string) {
	t.Options = append([]string{""}, tags...)
	t.Cursor = 0
	for i, tag := range t.Options {
		if tag != "" && strings.EqualFold(tag, active) {
			t.Cursor = i
			break
		}
	}
}

// Move moves the cursor by delta, clamped to the option range.
func (t *TagPickerState) Move(delta int) {
	t.Cursor = clamp(t.Cursor+delta, 0, len(t.Options)-1)
}

// Selected returns the tag under the cursor ("" for all bookmarks).
func (t *TagPickerState) Selected() string {
	if t.Cursor < 0 || t.Cursor >= len(t.Options) {
		return ""
	}
	return t.Options[t.Cursor]
}

// Form fields, in tab order.
const (
	FieldName = iota
	FieldURL
	FieldDesc
	FieldTags
	fieldCount
)

// FormState holds the add/edit form inputs.
type FormState struct {
	Inputs   [fieldCount]textinput.Model
	Focus    int
	EditName string // name of the bookmark being edited, empty when adding
}

// NewFormState creates a new FormState with initialized inputs.
func NewFormState(cfg layout.LayoutConfig) FormState {
	newInput := func(placeholder string, limit int) textinput.Model {
		input := textinput.New()
		input.Prompt = ""
		input.Placeholder = placeholder
		input.CharLimit = limit
		input.Width = cfg.Input.StandardWidth
		return input
	}

	return FormState{
		Inputs: [fieldCount]textinput.Model{
			FieldName: newInput("name", cfg.Input.NameCharLimit),
			FieldURL:  newInput("https://...", cfg.Input.URLCharLimit),
			FieldDesc: newInput("optional description", cfg.Input.DescCharLimit),
			FieldTags: newInput("tag1, tag2", cfg.Input.TagsCharLimit),
		},
	}
}

// Reset clears the form, pre-filling it from b when editing.
func (f *FormState) Reset(b *model.Bookmark) {
	for i := range f.Inputs {
		f.Inputs[i].Reset()
	}
	f.EditName = ""
	if b != nil {
		f.EditName = b.Name
		f.Inputs[FieldName].SetValue(b.Name)
		f.Inputs[FieldURL].SetValue(b.URL)
		f.Inputs[FieldDesc].SetValue(b.Desc)
		f.Inputs[FieldTags].SetValue(strings.Join(b.Tags, ", "))
	}
	f.focus(FieldName)
}

// Next moves focus to the next field, wrapping around.
func (f *FormState) Next() {
	f.focus((f.Focus + 1) % fieldCount)
}

// Prev moves focus to the previous field, wrapping around.
func (f *FormState) Prev() {
	f.focus((f.Focus + fieldCount - 1) % fieldCount)
}

// OnLastField reports whether the last field has focus.
func (f *FormState) OnLastField() bool {
	return f.Focus == fieldCount-1
}

// Bookmark builds a bookmark from the current field values.
func (f *FormState) Bookmark() model.Bookmark {
	return model.NewBookmark(model.NewBookmarkParams{
		Name: f.Inputs[FieldName].Value(),
		URL:  f.Inputs[FieldURL].Value(),
		Desc: f.Inputs[FieldDesc].Value(),
		Tags: model.ParseTags(f.Inputs[FieldTags].Value()),
	})
}

func (f *FormState) focus(field int) {
	for i := range f.Inputs {
		if i == field {
			f.Inputs[i].Focus()
			f.Inputs[i].CursorEnd()
		} else {
			f.Inputs[i].Blur()
		}
	}
	f.Focus = field
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
