// Package mockapi is an in-memory stand-in for the remote posts API, used for
// local development and end-to-end tests. It implements exactly the client's
// contract (list and create) and keeps nothing across restarts.
package mockapi

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"postdesk/internal/api"
	"postdesk/internal/logging"
	"postdesk/internal/posts"
)

// Options configures a Server.
type Options struct {
	Seed  bool          // start with SeedPosts
	Delay time.Duration // artificial latency added to every request
}

// SeedPosts are loaded when Options.Seed is set.
var SeedPosts = []posts.Draft{
	{Title: "Welcome to postdesk", Author: "Ann", CreationDate: "2024-01-01", Content: "Use **/** to search and **n** to write a new post."},
	{Title: "Release notes", Author: "Bob", CreationDate: "2024-02-14", Content: "Filtering now matches title, author and content."},
	{Title: "Weekend recipes", Author: "Carla", CreationDate: "2024-03-09", Content: "A short list of soups worth making twice."},
}

// Server serves the posts API from memory.
type Server struct {
	mu     sync.RWMutex
	posts  []posts.Record
	nextID int
	delay  time.Duration
	engine *gin.Engine
}

// New creates a server.
func New(opts Options) *Server {
	s := &Server{nextID: 1, delay: opts.Delay}
	if opts.Seed {
		for _, d := range SeedPosts {
			s.add(d)
		}
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.logRequests(), s.latency())
	engine.GET(api.PostsPath, s.handleList)
	engine.POST(api.PostsPath, s.handleCreate)
	s.engine = engine
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Posts returns a copy of the stored posts.
func (s *Server) Posts() []posts.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]posts.Record, len(s.posts))
	copy(out, s.posts)
	return out
}

func (s *Server) add(d posts.Draft) posts.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := posts.Record{
		ID:           s.nextID,
		Title:        d.Title,
		Author:       d.Author,
		CreationDate: d.CreationDate,
		Content:      d.Content,
	}
	s.nextID++
	s.posts = append(s.posts, r)
	return r
}

func (s *Server) handleList(c *gin.Context) {
	c.JSON(http.StatusOK, s.Posts())
}

func (s *Server) handleCreate(c *gin.Context) {
	var d posts.Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if !d.Complete() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, author, creationDate and content are required"})
		return
	}
	if _, err := posts.ParseDate(d.CreationDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "creationDate must be YYYY-MM-DD"})
		return
	}
	c.JSON(http.StatusCreated, s.add(d))
}

func (s *Server) latency() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.delay <= 0 {
			c.Next()
			return
		}
		select {
		case <-time.After(s.delay):
			c.Next()
		case <-c.Request.Context().Done():
			c.Abort()
		}
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logging.Get(logging.CategoryMockAPI).
			With("request_id", c.GetHeader(api.RequestIDHeader)).
			Info("%s %s -> %d in %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.Get(logging.CategoryMockAPI).Info("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
