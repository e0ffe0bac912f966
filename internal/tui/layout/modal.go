package layout

// ModalWidth returns the width of the add, edit, delete and tag dialogs:
// DefaultWidthPercent of the terminal, held between MinWidth and MaxWidth,
// and always leaving a two-cell margin on each side.
func ModalWidth(terminalWidth int, cfg ModalConfig) int {
	width := terminalWidth * cfg.DefaultWidthPercent / 100
	width = max(cfg.MinWidth, min(width, cfg.MaxWidth))
	width = min(width, terminalWidth-4)
	return max(width, 1)
}

// TagWindow returns the slice of tag options [start, end) the tag picker
// shows so the cursor stays on screen. The cursor is kept near the middle
// of the window, the same way the bookmark list scrolls.
func TagWindow(cursor, total int, cfg ModalConfig) (start, end int) {
	visible := max(cfg.TagPickerMaxVisible, 1)
	start = CalculateViewportOffset(cursor, total, visible)
	return start, min(start+visible, total)
}
