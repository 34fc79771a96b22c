package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/feastkit/basil/internal/recipe"
)

// Store is the narrow catalog contract required by the HTTP API.
type Store interface {
	recipe.Service
	Count() int
	Revision() int64
}

// Server provides the recipe HTTP API consumed by the TUI and by
// third-party clients.
type Server struct {
	addr        string
	store       Store
	events      http.Handler
	logRequests bool
	server      *http.Server
	listener    net.Listener
	ctx         context.Context
	cancel      context.CancelFunc
	startTime   time.Time
}

// NewServer creates a new HTTP API server. events, when non-nil, is
// mounted at GET /api/events and upgrades to the websocket change feed.
func NewServer(addr string, store Store, events http.Handler) *Server {
	if addr == "" {
		addr = "127.0.0.1:8044"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:   addr,
		store:  store,
		events: events,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Addr returns the bound listen address once the server has started, so
// ":0" configurations report their real port.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Handler returns the API routes, for mounting under httptest or an
// existing mux.
func (s *Server) Handler() http.Handler { return s.router() }

// EnableRequestLog turns on gin's per-request log line. Must be called
// before Start.
func (s *Server) EnableRequestLog() { s.logRequests = true }

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if s.logRequests {
		r.Use(gin.Logger())
	}

	r.GET("/api/health", s.handleHealth)
	r.GET("/api/recipes", s.handleList)
	r.GET("/api/recipes/:id", s.handleGet)
	r.POST("/api/recipes", s.handleCreate)
	r.PUT("/api/recipes/:id", s.handleUpdate)
	r.DELETE("/api/recipes/:id", s.handleDelete)
	r.GET("/api/search", s.handleSearch)
	r.GET("/api/categories", s.handleCategories)
	if s.events != nil {
		r.GET("/api/events", gin.WrapH(s.events))
	}
	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)

	s.server = &http.Server{
		Handler:           s.router(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener

	s.startTime = time.Now()

	go s.server.Serve(listener)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"uptime":       time.Since(s.startTime).String(),
		"recipe_count": s.store.Count(),
		"revision":     s.store.Revision(),
	})
}

func (s *Server) handleList(c *gin.Context) {
	recipes, err := s.store.ListRecipes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (s *Server) handleGet(c *gin.Context) {
	r, err := s.store.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) handleCreate(c *gin.Context) {
	var d recipe.Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	r, err := s.store.CreateRecipe(c.Request.Context(), d)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (s *Server) handleUpdate(c *gin.Context) {
	var d recipe.Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	r, err := s.store.UpdateRecipe(c.Request.Context(), c.Param("id"), d)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) handleDelete(c *gin.Context) {
	if err := s.store.DeleteRecipe(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleSearch(c *gin.Context) {
	hits, err := s.store.Search(c.Request.Context(), c.Query("q"), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	if hits == nil {
		hits = []recipe.Recipe{}
	}
	c.JSON(http.StatusOK, hits)
}

func (s *Server) handleCategories(c *gin.Context) {
	cats, err := s.store.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

// respondError maps service errors onto the API's uniform error body.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, recipe.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
	case errors.Is(err, recipe.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
