package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"postdesk/internal/posts"
)

// calendarGlyph is the adornment drawn after the date input.
const calendarGlyph = "▦"

// DateField is the creation-date input. Its label is hidden until the field
// takes focus and stays hidden after a blur that leaves it empty. The
// calendar adornment (ctrl+t) forces focus in; the form intercepts that key
// so the text input never receives it.
type DateField struct {
	Label string

	input       textinput.Model
	adornmentOn bool
}

// NewDateField creates an empty, unfocused date field.
func NewDateField(label string) DateField {
	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD"
	ti.CharLimit = len(posts.DateLayout)
	ti.Width = DateInputWidth
	ti.Prompt = ""
	return DateField{Label: label, input: ti}
}

// Focus moves keyboard focus to the field.
func (d *DateField) Focus() tea.Cmd {
	return d.input.Focus()
}

// ClickAdornment is the calendar action: it forces focus in. It reports the
// same command as Focus.
func (d *DateField) ClickAdornment() tea.Cmd {
	d.adornmentOn = true
	return d.Focus()
}

// Blur removes keyboard focus. An empty field hides its label again.
func (d *DateField) Blur() {
	d.input.Blur()
	d.adornmentOn = false
}

// Focused reports whether the field has keyboard focus.
func (d DateField) Focused() bool {
	return d.input.Focused()
}

// LabelVisible reports whether the label is drawn.
func (d DateField) LabelVisible() bool {
	return d.input.Focused() || d.input.Value() != ""
}

// Value returns the raw text.
func (d DateField) Value() string {
	return d.input.Value()
}

// SetValue replaces the text.
func (d *DateField) SetValue(v string) {
	d.input.SetValue(v)
}

// Hint returns a format reminder when the text is not an ISO date. Format is
// advisory; completeness only requires a non-empty value.
func (d DateField) Hint() string {
	v := d.input.Value()
	if v == "" {
		return ""
	}
	if _, err := posts.ParseDate(v); err != nil {
		return "use YYYY-MM-DD"
	}
	return ""
}

// Update forwards msg to the text input.
func (d DateField) Update(msg tea.Msg) (DateField, tea.Cmd) {
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

// View renders the label line (possibly blank) and the input with its
// adornment.
func (d DateField) View(s Styles) string {
	label := " "
	if d.LabelVisible() {
		style := s.Label
		if d.Focused() {
			style = s.FocusedLabel
		}
		label = style.Render(d.Label)
	}

	glyph := s.Muted.Render("[" + calendarGlyph + " ctrl+t]")
	if d.adornmentOn {
		glyph = s.FocusedLabel.Render("[" + calendarGlyph + " ctrl+t]")
	}

	line := lipgloss.JoinHorizontal(lipgloss.Left, s.Input.Render(d.input.View()), " ", glyph)
	if hint := d.Hint(); hint != "" {
		line = lipgloss.JoinHorizontal(lipgloss.Left, line, "  ", s.Warning.Render(hint))
	}
	return lipgloss.JoinVertical(lipgloss.Left, label, line)
}
