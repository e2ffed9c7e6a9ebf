package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"postdesk/internal/nav"
	"postdesk/internal/posts"
)

func TestDetailPage_SelectsPostByID(t *testing.T) {
	other := posts.Record{ID: 2, Title: "Second", Author: "Bob", CreationDate: "2024-03-03", Content: "# Heading\n\nbody"}
	client := &mockPostsAPI{}
	client.On("ListPosts", mock.Anything).Return([]posts.Record{helloWorld, other}, nil).Once()

	page := NewDetailPage(client, DefaultStyles(), 2)
	page.SetSize(100, 30)
	cmd := page.Activate()
	require.NotNil(t, cmd)
	assert.True(t, page.Loading())
	assert.Nil(t, page.Activate())

	page, _ = page.Update(cmd())
	assert.False(t, page.Loading())
	got, ok := page.Post()
	require.True(t, ok)
	assert.Equal(t, other, got)

	view := page.View()
	assert.Contains(t, view, "Second")
	assert.Contains(t, view, "by Bob")
	assert.Contains(t, view, "╭", "post is drawn in a card")
	client.AssertNumberOfCalls(t, "ListPosts", 1)
}

func TestDetailPage_NotFound(t *testing.T) {
	client := &mockPostsAPI{}
	client.On("ListPosts", mock.Anything).Return([]posts.Record{helloWorld}, nil)

	page := NewDetailPage(client, DefaultStyles(), 99)
	msg := page.Activate()()
	page, _ = page.Update(msg)

	assert.True(t, page.NotFound())
	_, ok := page.Post()
	assert.False(t, ok)
	assert.Contains(t, page.View(), NotFoundMessage)
}

func TestDetailPage_FetchFailure(t *testing.T) {
	client := &mockPostsAPI{}
	client.On("ListPosts", mock.Anything).Return(nil, errors.New("offline"))

	page := NewDetailPage(client, DefaultStyles(), 1)
	msg := page.Activate()()
	page, _ = page.Update(msg)

	assert.Equal(t, FetchFailedMessage, page.Err())
	assert.False(t, page.NotFound())
}

func TestDetailPage_StaleResponseDropped(t *testing.T) {
	client := &mockPostsAPI{}
	client.On("ListPosts", mock.Anything).Return([]posts.Record{helloWorld}, nil)

	page := NewDetailPage(client, DefaultStyles(), 1)
	cmd := page.Activate()
	page.Teardown()

	page, _ = page.Update(cmd())
	_, ok := page.Post()
	assert.False(t, ok)
}

func TestDetailPage_BackKey(t *testing.T) {
	page := NewDetailPage(&mockPostsAPI{}, DefaultStyles(), 1)

	_, cmd := page.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, nav.Back(), cmd())
}

func TestRenderMarkdown(t *testing.T) {
	out := renderMarkdown("plain words", 60, false)
	assert.Contains(t, out, "plain")
	assert.Contains(t, out, "words")
}
