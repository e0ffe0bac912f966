package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	List  ListConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// ListConfig holds list/preview pane configuration.
type ListConfig struct {
	// HeightReduction is subtracted from terminal height for pane content.
	// Accounts for: app padding (1) + header (1) + pane borders (2) + help bar (3) = 7
	HeightReduction int

	// MinHeight is the minimum pane height.
	MinHeight int

	// ListWidthPercent is the share of the usable width given to the list pane.
	ListWidthPercent int

	// PaneOffset is subtracted from terminal width before splitting.
	// Accounts for app padding and the borders of both panes.
	PaneOffset int

	// MinListWidth is the minimum list pane width.
	MinListWidth int

	// MinPreviewWidth hides the preview pane when it would be narrower.
	MinPreviewWidth int

	// ContentPadding is subtracted from pane width for item rendering.
	ContentPadding int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard modal width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// TagPickerMaxVisible: max rows shown in the tag picker.
	TagPickerMaxVisible int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	NameCharLimit   int
	URLCharLimit    int
	DescCharLimit   int
	TagsCharLimit   int
	SearchCharLimit int

	// StandardWidth is used for form inputs and the search prompt.
	StandardWidth int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		List: ListConfig{
			HeightReduction:  7,
			MinHeight:        5,
			ListWidthPercent: 45,
			PaneOffset:       8,
			MinListWidth:     20,
			MinPreviewWidth:  24,
			ContentPadding:   4,
		},
		Modal: ModalConfig{
			DefaultWidthPercent: 50,
			MinWidth:            40,
			MaxWidth:            80,
			TagPickerMaxVisible: 10,
		},
		Input: InputConfig{
			NameCharLimit:   100,
			URLCharLimit:    500,
			DescCharLimit:   300,
			TagsCharLimit:   200,
			SearchCharLimit: 100,
			StandardWidth:   40,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
