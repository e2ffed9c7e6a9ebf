package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"postdesk/internal/api"
	"postdesk/internal/logging"
	"postdesk/internal/nav"
	"postdesk/internal/posts"
)

// NotFoundMessage is shown when the requested post is not in the collection.
const NotFoundMessage = "This post does not exist or was removed."

// detailLoadedMsg carries the collection fetched for one detail activation.
type detailLoadedMsg struct {
	token string
	posts []posts.Record
	err   error
}

// DetailPage shows a single post. The posts API has no read-by-id call, so
// each activation fetches the collection once and selects the post by id.
type DetailPage struct {
	client api.PostsAPI
	styles Styles
	keys   detailKeys
	help   help.Model
	width  int
	height int

	id       int
	post     *posts.Record
	loading  bool
	err      string
	notFound bool
	token    string

	viewport viewport.Model
	spinner  spinner.Model
}

// NewDetailPage creates an inactive detail page for id.
func NewDetailPage(client api.PostsAPI, styles Styles, id int) DetailPage {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return DetailPage{
		client:   client,
		styles:   styles,
		keys:     newDetailKeys(),
		help:     help.New(),
		id:       id,
		viewport: viewport.New(80, 20),
		spinner:  sp,
	}
}

// Start activates the page and starts the loading spinner.
func (m *DetailPage) Start() tea.Cmd {
	cmd := m.Activate()
	if cmd == nil {
		return nil
	}
	return tea.Batch(cmd, m.spinner.Tick)
}

// Activate issues the single fetch for this activation.
func (m *DetailPage) Activate() tea.Cmd {
	if m.loading {
		return nil
	}
	m.token = uuid.NewString()
	m.loading = true
	m.err = ""
	m.notFound = false
	m.post = nil

	logging.Get(logging.CategoryDetail).Info("activating detail for post %d (token=%s)", m.id, m.token)
	client, token := m.client, m.token
	return func() tea.Msg {
		ctx := api.WithRequestID(context.Background(), token)
		records, err := client.ListPosts(ctx)
		return detailLoadedMsg{token: token, posts: records, err: err}
	}
}

// Teardown detaches the page from any outstanding fetch.
func (m *DetailPage) Teardown() {
	m.token = ""
	m.loading = false
}

// ID returns the requested post id.
func (m DetailPage) ID() int { return m.id }

// Post returns the selected post once loaded.
func (m DetailPage) Post() (posts.Record, bool) {
	if m.post == nil {
		return posts.Record{}, false
	}
	return *m.post, true
}

// Loading reports whether the fetch is outstanding.
func (m DetailPage) Loading() bool { return m.loading }

// Err returns the user-facing error, or "".
func (m DetailPage) Err() string { return m.err }

// NotFound reports whether the fetch succeeded without the requested post.
func (m DetailPage) NotFound() bool { return m.notFound }

// SetSize updates the size.
func (m *DetailPage) SetSize(w, h int) {
	m.width = w
	m.height = h
	// card border and padding
	m.viewport.Width = max(w-4, 1)
	m.viewport.Height = max(BodyHeight(h)-4, 1)
	m.help.Width = w
	m.refreshContent()
}

// Update handles messages.
func (m DetailPage) Update(msg tea.Msg) (DetailPage, tea.Cmd) {
	log := logging.Get(logging.CategoryDetail)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case detailLoadedMsg:
		if m.token == "" || msg.token != m.token {
			log.Debug("dropping stale detail response (token=%s)", msg.token)
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			log.Error("detail fetch failed: %v", msg.err)
			m.err = FetchFailedMessage
			return m, nil
		}
		p, ok := posts.FindByID(msg.posts, m.id)
		if !ok {
			log.Warn("post %d not found among %d posts", m.id, len(msg.posts))
			m.notFound = true
			return m, nil
		}
		m.post = &p
		m.refreshContent()
		m.viewport.GotoTop()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Back) {
			return m, nav.Go(nav.Back())
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// refreshContent re-renders the post body for the current width.
func (m *DetailPage) refreshContent() {
	if m.post == nil {
		return
	}
	m.viewport.SetContent(renderMarkdown(m.post.Content, m.viewport.Width, m.styles.Theme.IsDark))
}

// renderMarkdown renders content with glamour, falling back to the raw text
// if the renderer cannot be built.
func renderMarkdown(content string, width int, dark bool) string {
	if width <= 0 {
		width = 80
	}
	style := "light"
	if dark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

// View renders the page.
func (m DetailPage) View() string {
	var body string
	switch {
	case m.loading:
		body = m.spinner.View() + " " + m.styles.Muted.Render("Loading post…")
	case m.err != "":
		body = m.styles.Error.Render(m.err)
	case m.notFound:
		body = m.styles.Warning.Render(NotFoundMessage)
	case m.post != nil:
		meta := m.styles.Subtitle.Render(fmt.Sprintf("by %s · %s", m.post.Author, m.post.CreationDate))
		body = m.styles.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
			m.styles.Title.Render(m.post.Title),
			meta,
			m.viewport.View(),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Header.Render(fmt.Sprintf("Post #%d", m.id)),
		body,
		m.styles.Footer.Render(m.help.View(m.keys)),
	)
}
