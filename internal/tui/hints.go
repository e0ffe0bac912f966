package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "open")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for bottom bar: "j/k:move /:search q:quit"
func (a App) renderHints(hints HintSet) string {
	allHints := hints.All()
	if len(allHints) == 0 {
		return ""
	}

	parts := make([]string, len(allHints))
	for i, h := range allHints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals: "Enter confirm  Esc cancel"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, g/G)
	Edit   []Hint // Edit hints (a, e, d)
	Action []Hint // Action hints (Enter, /, t)
	System []Hint // System hints (q, Esc)
}

// All returns all hints flattened in display order: Nav + Action + Edit + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Edit)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Edit...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeBrowse:
		return a.getBrowseHints()
	case ModeSearching:
		return HintSet{
			Nav:    []Hint{{Key: "type", Desc: "search"}},
			Action: []Hint{{Key: "Enter", Desc: "apply"}},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
	case ModeTagPicking:
		return HintSet{
			Nav:    []Hint{{Key: "j/k", Desc: "move"}},
			Action: []Hint{{Key: "Enter", Desc: "select"}},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
	case ModeAdding, ModeEditing:
		return HintSet{
			Nav:    []Hint{{Key: "Tab", Desc: "next"}},
			Action: []Hint{{Key: "ctrl+s", Desc: "save"}},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
	default:
		// Confirm delete shows its hints inside the modal.
		return HintSet{}
	}
}

// getBrowseHints returns hints for ModeBrowse. Selection-dependent hints are
// omitted when the view is empty.
func (a App) getBrowseHints() HintSet {
	hints := HintSet{
		Action: []Hint{
			{Key: "/", Desc: "search"},
			{Key: "t", Desc: "tag"},
		},
		Edit: []Hint{
			{Key: "a", Desc: "add"},
		},
		System: []Hint{
			{Key: "q", Desc: "quit"},
		},
	}

	if a.query != "" || a.activeTag != "" {
		hints.Action = append(hints.Action, Hint{Key: "c", Desc: "clear"})
	}

	if _, ok := a.Selected(); ok {
		hints.Nav = []Hint{{Key: "j/k", Desc: "move"}}
		hints.Action = append([]Hint{{Key: "Enter", Desc: "open"}, {Key: "y", Desc: "yank"}}, hints.Action...)
		hints.Edit = append(hints.Edit, Hint{Key: "e", Desc: "edit"}, Hint{Key: "d", Desc: "del"})
	}

	return hints
}
