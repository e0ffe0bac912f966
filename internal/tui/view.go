package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bmk-dev/bmk/internal/model"
	"github.com/bmk-dev/bmk/internal/tui/layout"
)

// renderView creates the complete list and preview view.
func (a App) renderView() string {
	switch a.mode {
	case ModeQuitting:
		return ""
	case ModeTagPicking, ModeAdding, ModeEditing, ModeConfirmDelete:
		return a.renderModal()
	}

	paneHeight := layout.CalculatePaneHeight(a.height, a.layoutConfig.List)
	panes := layout.CalculatePaneWidths(a.width, a.layoutConfig.List)

	columns := a.renderListPane(panes.ListWidth, paneHeight)
	if panes.PreviewWidth > 0 {
		columns = lipgloss.JoinHorizontal(
			lipgloss.Top,
			columns,
			a.renderPreviewPane(panes.PreviewWidth, paneHeight),
		)
	}

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left, a.renderHeader(), columns, a.renderHelpBar()),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderHeader renders the query, tag filter and match count above the panes.
func (a App) renderHeader() string {
	parts := []string{a.styles.Title.Render("bmk")}

	if a.mode == ModeSearching {
		parts = append(parts, a.search.Input.View())
	} else if a.query != "" {
		parts = append(parts, "/"+a.query)
	}
	if a.activeTag != "" {
		parts = append(parts, "#"+a.activeTag)
	}
	parts = append(parts, fmt.Sprintf("[%d/%d]", len(a.results), a.store.Len()))

	return a.styles.Header.Render(strings.Join(parts, "  "))
}

func (a App) renderListPane(width, height int) string {
	var content strings.Builder

	visibleHeight := layout.CalculateVisibleHeight(height, 0)
	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.List)

	if len(a.results) == 0 {
		switch {
		case a.store.Len() == 0:
			content.WriteString(a.styles.Empty.Render("(no bookmarks, press a to add)"))
		default:
			content.WriteString(a.styles.Empty.Render("(no matches)"))
		}
	} else {
		// Calculate viewport offset to keep the selection visible
		offset := layout.CalculateViewportOffset(a.selected, len(a.results), visibleHeight)

		for i := offset; i < len(a.results) && i < offset+visibleHeight; i++ {
			content.WriteString(a.renderItem(a.results[i].Bookmark, i == a.selected, itemWidth) + "\n")
		}
	}

	style := a.styles.Pane
	if a.mode == ModeBrowse {
		style = a.styles.PaneActive
	}
	return style.
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

// renderItem renders one row: the name, followed by the URL when it fits.
func (a App) renderItem(b model.Bookmark, isCursor bool, maxWidth int) string {
	prefix := "  "
	if isCursor {
		prefix = "▸ "
	}

	row := layout.FitRow(prefix, b.Name, b.URL, maxWidth, a.layoutConfig.Text)
	line := row.Name
	if row.URL != "" {
		if isCursor {
			line += "  " + row.URL
		} else {
			line += "  " + a.styles.URL.Render(row.URL)
		}
	}

	if isCursor {
		// Pad to fill width for highlight
		if pad := maxWidth - layout.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		return a.styles.ItemSelected.Render(line)
	}
	return a.styles.Item.Render(line)
}

func (a App) renderPreviewPane(width, height int) string {
	var content strings.Builder
	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.List)

	if b, ok := a.Selected(); ok {
		content.WriteString(a.styles.Title.Render(b.Name) + "\n\n")

		url := layout.Fit(b.URL, itemWidth, a.layoutConfig.Text)
		content.WriteString(a.styles.URL.Render(url) + "\n\n")

		if b.Desc != "" {
			content.WriteString(a.styles.Desc.Width(itemWidth).Render(b.Desc) + "\n\n")
		}

		if len(b.Tags) > 0 {
			tags := make([]string, len(b.Tags))
			for i, tag := range b.Tags {
				tags[i] = "#" + tag
			}
			content.WriteString(a.styles.Tag.Width(itemWidth).Render(strings.Join(tags, " ")))
		}
	}

	return a.styles.Pane.
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

func (a App) renderHelpBar() string {
	var lines []string

	// Line 1: Empty spacer OR message (message replaces the gap)
	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "")
	}

	if hints := a.renderHints(a.getContextualHints()); hints != "" {
		lines = append(lines, hints)
	}

	return strings.Join(lines, "\n")
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	switch a.messageType {
	case MessageError:
		return a.styles.MessageError.Render("✗ " + a.messageText)
	case MessageWarning:
		return a.styles.MessageWarning.Render("⚠ " + a.messageText)
	case MessageSuccess:
		return a.styles.MessageSuccess.Render("✓ " + a.messageText)
	default:
		return a.styles.MessageInfo.Render(a.messageText)
	}
}

// renderModal renders the current modal dialog centered on screen.
func (a App) renderModal() string {
	var title, content strings.Builder
	var hints []Hint

	modalWidth := layout.ModalWidth(a.width, a.layoutConfig.Modal)

	switch a.mode {
	case ModeTagPicking:
		title.WriteString("Filter by Tag\n\n")
		a.renderTagOptions(&content)
		hints = []Hint{{Key: "Enter", Desc: "select"}, {Key: "Esc", Desc: "cancel"}}

	case ModeAdding, ModeEditing:
		if a.mode == ModeAdding {
			title.WriteString("Add Bookmark\n\n")
		} else {
			title.WriteString("Edit Bookmark\n\n")
		}
		labels := [fieldCount]string{
			FieldName: "Name:",
			FieldURL:  "URL:",
			FieldDesc: "Description:",
			FieldTags: "Tags (comma-separated):",
		}
		for i, label := range labels {
			if i > 0 {
				content.WriteString("\n\n")
			}
			content.WriteString(a.styles.Label.Render(label) + "\n")
			content.WriteString(a.form.Inputs[i].View())
		}
		hints = []Hint{{Key: "Tab", Desc: "next"}, {Key: "ctrl+s", Desc: "save"}, {Key: "Esc", Desc: "cancel"}}

	case ModeConfirmDelete:
		title.WriteString("Delete Bookmark\n\n")
		if b, ok := a.Selected(); ok {
			content.WriteString(fmt.Sprintf("Delete %q?\n", b.Name))
			url := layout.Fit(b.URL, modalWidth-6, a.layoutConfig.Text)
			content.WriteString(a.styles.URL.Render(url))
		}
		hints = []Hint{{Key: "y/Enter", Desc: "delete"}, {Key: "n/Esc", Desc: "cancel"}}
	}

	body := a.styles.Title.Render(title.String()) + content.String()
	if a.messageText != "" {
		body += "\n\n" + a.renderMessageLine()
	}
	body += "\n\n" + a.renderHintsInline(hints)

	modal := a.styles.Modal.Width(modalWidth).Render(body)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modal)
}

// renderTagOptions renders the scrollable tag list of the tag picker.
func (a App) renderTagOptions(content *strings.Builder) {
	opts := a.tagPicker.Options
	start, end := layout.TagWindow(a.tagPicker.Cursor, len(opts), a.layoutConfig.Modal)

	for i := start; i < end; i++ {
		label := "#" + opts[i]
		if opts[i] == "" {
			label = "(all bookmarks)"
		}
		if i == a.tagPicker.Cursor {
			content.WriteString(a.styles.ItemSelected.Render("▸ " + label))
		} else {
			content.WriteString(a.styles.Item.Render("  " + label))
		}
		if i < end-1 {
			content.WriteString("\n")
		}
	}
}
