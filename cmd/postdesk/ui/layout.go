package ui

// Layout constants for page sizing
const (
	HeaderHeight = 2
	FooterHeight = 2
	SearchHeight = 2

	// SnippetWidth truncates post content in list rows.
	SnippetWidth = 70

	// Form field widths
	FormWidth      = 72
	ContentRows    = 4
	DateInputWidth = 12

	MinimumTerminalWidth  = 40
	MinimumTerminalHeight = 12
)

// BodyHeight returns the rows left for page content once header and footer
// are drawn.
func BodyHeight(terminalHeight int) int {
	h := terminalHeight - HeaderHeight - FooterHeight
	if h < 1 {
		return 1
	}
	return h
}

// FieldWidth clamps the form width to the terminal.
func FieldWidth(terminalWidth int) int {
	w := terminalWidth - 4
	if w > FormWidth || terminalWidth == 0 {
		return FormWidth
	}
	if w < MinimumTerminalWidth-4 {
		return MinimumTerminalWidth - 4
	}
	return w
}
