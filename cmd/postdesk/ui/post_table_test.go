package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"postdesk/internal/posts"
)

func TestPostTable(t *testing.T) {
	table := NewPostTable("Posts")
	table.AddPosts([]posts.Record{
		helloWorld,
		{ID: 2, Title: "Long", Author: "Bob", CreationDate: "2024-02-02", Content: strings.Repeat("x", 200)},
	})

	view := table.View(DefaultStyles())
	t.Logf("View:\n%s", view)

	assert.Contains(t, view, "Posts")
	assert.Contains(t, view, "Hello")
	assert.Contains(t, view, "Ann")
	assert.Contains(t, view, "2024-01-01")
	assert.NotContains(t, view, strings.Repeat("x", 200), "content is truncated")
	assert.Contains(t, view, "…")
}

func TestPostTable_Empty(t *testing.T) {
	assert.Empty(t, NewPostTable("Posts").View(DefaultStyles()))
}
