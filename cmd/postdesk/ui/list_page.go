package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"postdesk/internal/api"
	"postdesk/internal/logging"
	"postdesk/internal/nav"
	"postdesk/internal/posts"
)

// FetchFailedMessage is shown when the post list cannot be loaded.
const FetchFailedMessage = "Failed to load posts. Please try again."

// postsLoadedMsg carries the result of one list fetch. token identifies the
// activation that issued it.
type postsLoadedMsg struct {
	token string
	posts []posts.Record
	err   error
}

// postItem adapts posts.Record to list.Item
type postItem struct {
	post posts.Record
}

func (i postItem) Title() string { return i.post.Title }
func (i postItem) Description() string {
	return fmt.Sprintf("%s · %s · %s", i.post.Author, i.post.CreationDate, snippet(i.post.Content, SnippetWidth))
}
func (i postItem) FilterValue() string { return i.post.Title }

// snippet flattens s to one line and truncates it to width runes.
func snippet(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

// ListPage is the post list. It owns the authoritative collection fetched
// once per activation and the filtered view derived from it and the search
// term.
type ListPage struct {
	client api.PostsAPI
	styles Styles
	keys   listKeys
	width  int
	height int

	search  textinput.Model
	rows    list.Model
	spinner spinner.Model
	help    help.Model

	posts      []posts.Record
	filtered   []posts.Record
	searchTerm string
	loading    bool
	err        string
	token      string
}

// NewListPage creates an inactive list page.
func NewListPage(client api.PostsAPI, styles Styles) ListPage {
	si := textinput.New()
	si.Placeholder = "Search title, author or content…"
	si.Prompt = "/ "
	si.PromptStyle = styles.FocusedLabel
	si.CharLimit = 256

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(styles.Theme.Primary).BorderForeground(styles.Theme.Primary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(styles.Theme.Muted).BorderForeground(styles.Theme.Primary)

	l := list.New(nil, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return ListPage{
		client:   client,
		styles:   styles,
		keys:     newListKeys(),
		search:   si,
		rows:     l,
		spinner:  sp,
		help:     help.New(),
		posts:    []posts.Record{},
		filtered: []posts.Record{},
	}
}

// Start activates the page and starts the loading spinner.
func (m *ListPage) Start() tea.Cmd {
	cmd := m.Activate()
	if cmd == nil {
		return nil
	}
	return tea.Batch(cmd, m.spinner.Tick)
}

// Activate issues the single fetch for this activation. It is a no-op while a
// fetch is outstanding.
func (m *ListPage) Activate() tea.Cmd {
	if m.loading {
		return nil
	}
	m.token = uuid.NewString()
	m.loading = true
	m.err = ""
	m.posts = []posts.Record{}
	m.recompute()

	logging.Get(logging.CategoryList).Info("activating list (token=%s)", m.token)
	return fetchPosts(m.client, m.token)
}

func fetchPosts(client api.PostsAPI, token string) tea.Cmd {
	return func() tea.Msg {
		ctx := api.WithRequestID(context.Background(), token)
		records, err := client.ListPosts(ctx)
		return postsLoadedMsg{token: token, posts: records, err: err}
	}
}

// Teardown detaches the page from any outstanding fetch.
func (m *ListPage) Teardown() {
	m.token = ""
	m.loading = false
}

// SetSearchTerm replaces the search term and recomputes the filtered view.
func (m *ListPage) SetSearchTerm(term string) {
	m.searchTerm = term
	if m.search.Value() != term {
		m.search.SetValue(term)
	}
	m.recompute()
}

// recompute rebuilds the filtered view from the authoritative collection.
func (m *ListPage) recompute() {
	m.filtered = posts.Filter(m.posts, m.searchTerm)

	items := make([]list.Item, len(m.filtered))
	for i, p := range m.filtered {
		items[i] = postItem{post: p}
	}
	m.rows.SetItems(items)
}

// ViewMore requests the detail view for id if id is in the filtered view.
func (m *ListPage) ViewMore(id int) tea.Cmd {
	if _, ok := posts.FindByID(m.filtered, id); !ok {
		logging.Get(logging.CategoryList).Debug("view more ignored: post %d not in filtered view", id)
		return nil
	}
	return nav.Go(nav.Detail(id))
}

// Posts returns the authoritative collection.
func (m ListPage) Posts() []posts.Record { return m.posts }

// Filtered returns the filtered view.
func (m ListPage) Filtered() []posts.Record { return m.filtered }

// SearchTerm returns the current search term.
func (m ListPage) SearchTerm() string { return m.searchTerm }

// Loading reports whether the activation fetch is outstanding.
func (m ListPage) Loading() bool { return m.loading }

// Err returns the user-facing error, or "".
func (m ListPage) Err() string { return m.err }

// Searching reports whether the search box has focus.
func (m ListPage) Searching() bool { return m.search.Focused() }

// SetSize updates the size.
func (m *ListPage) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.search.Width = w - 6
	m.rows.SetSize(w, BodyHeight(h)-SearchHeight)
	m.help.Width = w
}

// Update handles messages.
func (m ListPage) Update(msg tea.Msg) (ListPage, tea.Cmd) {
	log := logging.Get(logging.CategoryList)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case postsLoadedMsg:
		if msg.token != m.token || m.token == "" {
			log.Debug("dropping stale list response (token=%s)", msg.token)
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			log.Error("list fetch failed: %v", msg.err)
			m.err = FetchFailedMessage
			return m, nil
		}
		m.posts = msg.posts
		m.recompute()
		log.Info("loaded %d posts", len(m.posts))
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Search):
			cmd := m.search.Focus()
			return m, cmd
		case key.Matches(msg, m.keys.ViewMore):
			if item, ok := m.rows.SelectedItem().(postItem); ok {
				return m, m.ViewMore(item.post.ID)
			}
			return m, nil
		case key.Matches(msg, m.keys.Create):
			return m, nav.Go(nav.Create())
		case key.Matches(msg, m.keys.Retry):
			if m.err != "" && !m.loading {
				cmd := m.Start()
				return m, cmd
			}
			return m, nil
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.rows, cmd = m.rows.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m ListPage) updateSearch(msg tea.KeyMsg) (ListPage, tea.Cmd) {
	if key.Matches(msg, m.keys.Done) {
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != m.searchTerm {
		m.SetSearchTerm(v)
	}
	return m, cmd
}

// View renders the page.
func (m ListPage) View() string {
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.Header.Render("Posts"),
		" ",
		m.styles.Badge.Render("n  new post"),
	)

	var body string
	switch {
	case m.loading:
		body = m.spinner.View() + " " + m.styles.Muted.Render("Loading posts…")
	case m.err != "":
		body = m.styles.Error.Render(m.err) + "\n" + m.styles.Muted.Render("Press r to retry.")
	case len(m.filtered) == 0 && m.searchTerm != "":
		body = m.styles.Muted.Render(fmt.Sprintf("No posts match %q.", m.searchTerm))
	case len(m.filtered) == 0:
		body = m.styles.Muted.Render("No posts yet. Press n to write the first one.")
	default:
		body = m.rows.View()
	}

	status := m.styles.Info.Render(fmt.Sprintf("%d of %d posts", len(m.filtered), len(m.posts)))
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.styles.RenderDivider(m.width-4),
		m.search.View(),
		status,
		body,
		m.styles.Footer.Render(m.help.View(m.keys)),
	)
}
