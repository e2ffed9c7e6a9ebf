package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"postdesk/internal/posts"
)

// PostTable renders posts as a static table for non-interactive output.
type PostTable struct {
	Title   string
	Headers []string
	Rows    [][]string

	// SnippetWidth bounds the content column; 0 means SnippetWidth.
	SnippetWidth int
}

// NewPostTable creates an empty table with the standard post columns.
func NewPostTable(title string) *PostTable {
	return &PostTable{
		Title:   title,
		Headers: []string{"ID", "Title", "Author", "Date", "Content"},
		Rows:    make([][]string, 0),
	}
}

// AddPost appends one row for p.
func (t *PostTable) AddPost(p posts.Record) {
	width := t.SnippetWidth
	if width <= 0 {
		width = SnippetWidth
	}
	t.Rows = append(t.Rows, []string{
		strconv.Itoa(p.ID),
		p.Title,
		p.Author,
		p.CreationDate,
		snippet(p.Content, width),
	})
}

// AddPosts appends one row per record, in order.
func (t *PostTable) AddPosts(records []posts.Record) {
	for _, p := range records {
		t.AddPost(p)
	}
}

// View renders the table. An empty table renders as "".
func (t *PostTable) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	colWidths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) {
				colWidths[i] = max(colWidths[i], lipgloss.Width(cell))
			}
		}
	}
	// lipgloss Width includes the cell padding
	for i := range colWidths {
		colWidths[i] += 2
	}

	headerStyle := styles.Bold.Padding(0, 1)
	rowStyle := styles.Body.Padding(0, 1)
	sepStyle := styles.Muted

	writeRow := func(cells []string, style lipgloss.Style) {
		for i, cell := range cells {
			if i >= len(colWidths) {
				break
			}
			sb.WriteString(style.Width(colWidths[i]).Render(cell))
			if i < len(cells)-1 {
				sb.WriteString(sepStyle.Render("|"))
			}
		}
		sb.WriteString("\n")
	}

	writeRow(t.Headers, headerStyle)

	total := len(t.Headers) - 1
	for _, w := range colWidths {
		total += w
	}
	sb.WriteString(sepStyle.Render(strings.Repeat("-", total)) + "\n")

	for _, row := range t.Rows {
		writeRow(row, rowStyle)
	}
	return sb.String()
}
