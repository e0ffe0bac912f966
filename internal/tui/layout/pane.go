package layout

// PaneLayout holds calculated pane widths. PreviewWidth is 0 when the
// terminal is too narrow for a preview pane.
type PaneLayout struct {
	ListWidth    int
	PreviewWidth int
}

// CalculatePaneHeight computes the content height for panes.
// Returns at least MinHeight.
func CalculatePaneHeight(terminalHeight int, cfg ListConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculatePaneWidths splits the terminal width between the list and the preview.
func CalculatePaneWidths(terminalWidth int, cfg ListConfig) PaneLayout {
	usable := terminalWidth - cfg.PaneOffset
	if usable < cfg.MinListWidth {
		return PaneLayout{ListWidth: cfg.MinListWidth}
	}

	list := usable * cfg.ListWidthPercent / 100
	if list < cfg.MinListWidth {
		list = cfg.MinListWidth
	}
	preview := usable - list
	if preview < cfg.MinPreviewWidth {
		return PaneLayout{ListWidth: usable}
	}

	return PaneLayout{ListWidth: list, PreviewWidth: preview}
}

// CalculateItemWidth computes the width available for item content.
func CalculateItemWidth(paneWidth int, cfg ListConfig) int {
	return paneWidth - cfg.ContentPadding
}

// CalculateVisibleHeight computes the visible item count in a pane.
func CalculateVisibleHeight(paneHeight, headerLines int) int {
	height := paneHeight - headerLines
	if height < 1 {
		return 1
	}
	return height
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected item visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}
