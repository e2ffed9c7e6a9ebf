package mockapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postdesk/internal/api"
	"postdesk/internal/posts"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestListEmpty(t *testing.T) {
	s := New(Options{})
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, api.PostsPath, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestSeed(t *testing.T) {
	s := New(Options{Seed: true})
	got := s.Posts()
	require.Len(t, got, len(SeedPosts))
	for i, r := range got {
		assert.Equal(t, i+1, r.ID)
		assert.Equal(t, SeedPosts[i].Title, r.Title)
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{"ok", `{"title":"T","author":"A","creationDate":"2024-01-01","content":"C"}`, http.StatusCreated},
		{"missing content", `{"title":"T","author":"A","creationDate":"2024-01-01"}`, http.StatusBadRequest},
		{"blank author", `{"title":"T","author":"  ","creationDate":"2024-01-01","content":"C"}`, http.StatusBadRequest},
		{"bad date", `{"title":"T","author":"A","creationDate":"01/01/2024","content":"C"}`, http.StatusBadRequest},
		{"not json", `title=T`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(Options{})
			req := httptest.NewRequest(http.MethodPost, api.PostsPath, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			s.Handler().ServeHTTP(w, req)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestClientRoundTrip(t *testing.T) {
	s := New(Options{Seed: true})
	server := httptest.NewServer(s.Handler())
	defer server.Close()

	client := api.NewClient(server.URL, 5*time.Second)
	ctx := context.Background()

	created, err := client.CreatePost(ctx, posts.Draft{
		Title: "New", Author: "Dee", CreationDate: "2024-06-01", Content: "Fresh",
	})
	require.NoError(t, err)
	assert.Equal(t, len(SeedPosts)+1, created.ID)

	list, err := client.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, list, len(SeedPosts)+1)
	assert.Equal(t, created, list[len(list)-1])

	_, err = client.CreatePost(ctx, posts.Draft{Title: "incomplete"})
	assert.ErrorIs(t, err, api.ErrSubmitFailed)
}

func TestDelayHonorsCancellation(t *testing.T) {
	s := New(Options{Delay: time.Hour})
	server := httptest.NewServer(s.Handler())
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := api.NewClient(server.URL, time.Minute).ListPosts(ctx)
	assert.ErrorIs(t, err, api.ErrFetchFailed)
}

func TestRunStopsOnCancel(t *testing.T) {
	s := New(Options{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
