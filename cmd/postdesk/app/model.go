// Package app is the postdesk router: it owns the active page and switches
// pages in response to navigation intents.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"postdesk/cmd/postdesk/ui"
	"postdesk/internal/api"
	"postdesk/internal/logging"
	"postdesk/internal/nav"
)

// Options tune page construction.
type Options struct {
	SuccessDisplay time.Duration
}

// Model is the root bubbletea model. Exactly one page is active; every
// activation builds a fresh page and tears the previous one down.
type Model struct {
	client  api.PostsAPI
	styles  ui.Styles
	opts    Options
	width   int
	height  int
	route   nav.Intent
	history nav.History

	list   ui.ListPage
	form   ui.FormPage
	detail ui.DetailPage

	initCmd tea.Cmd
}

// New builds the router and activates start.
func New(client api.PostsAPI, styles ui.Styles, opts Options, start nav.Intent) Model {
	if start.Route == nav.RouteBack {
		start = nav.List()
	}
	m := Model{client: client, styles: styles, opts: opts}
	m.history.Push(start)
	m.initCmd = m.activate(start)
	return m
}

// Init returns the first page's start command.
func (m Model) Init() tea.Cmd {
	return m.initCmd
}

// Route returns the active route.
func (m Model) Route() nav.Intent { return m.route }

// List returns the list page (meaningful on the list route).
func (m Model) List() ui.ListPage { return m.list }

// Form returns the creation form (meaningful on the create route).
func (m Model) Form() ui.FormPage { return m.form }

// Detail returns the detail page (meaningful on the detail route).
func (m Model) Detail() ui.DetailPage { return m.detail }

// activate tears down the current page and starts a fresh one for i.
func (m *Model) activate(i nav.Intent) tea.Cmd {
	m.teardown()
	logging.Get(logging.CategoryNav).Info("route %s -> %s", m.route, i)
	m.route = i

	switch i.Route {
	case nav.RouteCreate:
		m.form = ui.NewFormPage(m.client, m.styles, m.opts.SuccessDisplay)
		if m.width > 0 {
			m.form.SetSize(m.width, m.height)
		}
		return m.form.Init()
	case nav.RouteDetail:
		m.detail = ui.NewDetailPage(m.client, m.styles, i.ID)
		if m.width > 0 {
			m.detail.SetSize(m.width, m.height)
		}
		return m.detail.Start()
	default:
		m.list = ui.NewListPage(m.client, m.styles)
		if m.width > 0 {
			m.list.SetSize(m.width, m.height)
		}
		return m.list.Start()
	}
}

func (m *Model) teardown() {
	switch m.route.Route {
	case nav.RouteList:
		m.list.Teardown()
	case nav.RouteCreate:
		m.form.Teardown()
	case nav.RouteDetail:
		m.detail.Teardown()
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.teardown()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case nav.Intent:
		target := msg
		if msg.Route == nav.RouteBack {
			target = m.history.Pop()
		}
		m.history.Push(target)
		cmd := m.activate(target)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.route.Route {
	case nav.RouteCreate:
		m.form, cmd = m.form.Update(msg)
	case nav.RouteDetail:
		m.detail, cmd = m.detail.Update(msg)
	default:
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

// View renders the active page.
func (m Model) View() string {
	if m.width > 0 && (m.width < ui.MinimumTerminalWidth || m.height < ui.MinimumTerminalHeight) {
		return m.styles.Warning.Render("Terminal too small, resize to at least 40x12.")
	}

	var page string
	switch m.route.Route {
	case nav.RouteCreate:
		page = m.form.View()
	case nav.RouteDetail:
		page = m.detail.View()
	default:
		page = m.list.View()
	}
	return m.styles.Content.Render(page)
}
