package app

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postdesk/cmd/postdesk/ui"
	"postdesk/internal/api"
	"postdesk/internal/mockapi"
	"postdesk/internal/nav"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestModel(t *testing.T, start nav.Intent) (Model, *mockapi.Server) {
	t.Helper()
	srv := mockapi.New(mockapi.Options{Seed: true})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	client := api.NewClient(ts.URL, 2*time.Second)
	m := New(client, ui.DefaultStyles(), Options{SuccessDisplay: 10 * time.Millisecond}, start)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model), srv
}

// drain runs cmd and flattens batches into their messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// settle delivers every message produced by cmd. Activation commands that
// follow a navigation intent are settled too; other follow-ups are dropped
// and spinner ticks are skipped.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range drain(cmd) {
		if _, ok := msg.(spinner.TickMsg); ok {
			continue
		}
		next, follow := m.Update(msg)
		m = next.(Model)
		if _, ok := msg.(nav.Intent); ok {
			m = settle(t, m, follow)
		}
	}
	return m
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModel_StartsOnList(t *testing.T) {
	m, _ := newTestModel(t, nav.List())
	assert.Equal(t, nav.List(), m.Route())
	require.True(t, m.List().Loading())

	m = settle(t, m, m.Init())
	assert.False(t, m.List().Loading())
	assert.Len(t, m.List().Posts(), len(mockapi.SeedPosts))
	assert.Contains(t, m.View(), "Welcome to postdesk")
}

func TestModel_ViewMoreThenBack(t *testing.T) {
	m, _ := newTestModel(t, nav.List())
	m = settle(t, m, m.Init())

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m = settle(t, m, cmd)
	require.Equal(t, nav.Detail(1), m.Route())

	post, ok := m.Detail().Post()
	require.True(t, ok)
	assert.Equal(t, "Welcome to postdesk", post.Title)

	m, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	m = settle(t, m, cmd)
	assert.Equal(t, nav.List(), m.Route())
	assert.False(t, m.List().Loading())
	assert.Len(t, m.List().Posts(), len(mockapi.SeedPosts), "every activation refetches")
}

func TestModel_BackOnEmptyHistoryGoesToList(t *testing.T) {
	m, _ := newTestModel(t, nav.Detail(2))
	m, cmd := send(t, m, nav.Back())
	assert.Equal(t, nav.List(), m.Route())
	assert.NotNil(t, cmd)
}

func TestModel_CreateFlow(t *testing.T) {
	m, srv := newTestModel(t, nav.Create())
	require.Equal(t, nav.Create(), m.Route())

	for _, r := range "Hi" {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	assert.Equal(t, "Hi", m.Form().Draft().Title)

	for _, field := range []string{"Dee", "2024-05-05", "Body"} {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
		for _, r := range field {
			m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		}
	}
	require.True(t, m.Form().Complete())

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	m = settle(t, m, cmd)
	assert.True(t, m.Form().SubmitSuccess())
	assert.Equal(t, nav.Create(), m.Route(), "a successful submit stays on the form")
	assert.Len(t, srv.Posts(), len(mockapi.SeedPosts)+1)

	m, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = settle(t, m, cmd)
	assert.Equal(t, nav.List(), m.Route())
	assert.Len(t, m.List().Posts(), len(mockapi.SeedPosts)+1)
}

func TestModel_LateListResponseAfterLeaving(t *testing.T) {
	m, _ := newTestModel(t, nav.List())
	initial := m.Init()

	m, _ = send(t, m, nav.Create())
	m = settle(t, m, initial)

	assert.Equal(t, nav.Create(), m.Route())
	assert.Empty(t, m.List().Posts(), "torn down list ignores its fetch")
}

func TestModel_CtrlCQuits(t *testing.T) {
	m, _ := newTestModel(t, nav.List())
	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_TooSmall(t *testing.T) {
	m, _ := newTestModel(t, nav.List())
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 20, Height: 5})
	assert.Contains(t, m.View(), "Terminal too small")
}
