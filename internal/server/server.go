// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the search core over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pdiddy/metasearch/internal/metrics"
	"github.com/pdiddy/metasearch/internal/profile"
	"github.com/pdiddy/metasearch/internal/provider"
	"github.com/pdiddy/metasearch/internal/search"
	"github.com/pdiddy/metasearch/pkg/types"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// Server wires the orchestrator and profile catalog to HTTP routes.
type Server struct {
	orch          *search.Orchestrator
	catalog       *profile.Catalog
	defaultPreset string
	metrics       *metrics.Metrics
	gatherer      prometheus.Gatherer
	logger        *slog.Logger
}

// Deps are the collaborators a Server needs. Metrics and Gatherer are
// optional; without a Gatherer /metrics is not mounted.
type Deps struct {
	Orchestrator *search.Orchestrator
	Catalog      *profile.Catalog

	// DefaultPreset names the catalog preset applied to requests without a
	// profile. Empty means profile.DefaultPreset.
	DefaultPreset string

	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// New returns a Server.
func New(d Deps) *Server {
	s := &Server{
		orch:          d.Orchestrator,
		catalog:       d.Catalog,
		defaultPreset: d.DefaultPreset,
		metrics:       d.Metrics,
		gatherer:      d.Gatherer,
		logger:        d.Logger,
	}
	if s.defaultPreset == "" {
		s.defaultPreset = profile.DefaultPreset
	}
	if s.catalog == nil {
		s.catalog = profile.NewCatalog()
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// Router builds the gin engine with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), s.accessLog(), cors())

	r.GET("/health", s.health)
	api := r.Group("/api")
	api.POST("/search", s.search)
	api.GET("/sources", s.sources)
	api.GET("/profiles", s.profiles)
	if s.gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
// within shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln, shutdownTimeout)
}

// Serve is Run over an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.logger.Info("API listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// searchBody is the POST /api/search payload. Profile is a pointer so an
// omitted profile can be told apart from an empty one.
type searchBody struct {
	Query    string         `json:"q"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
	Sources  []string       `json:"sources"`
	Profile  *types.Profile `json:"profile"`

	// Preset names a catalog profile used when Profile is omitted.
	Preset string `json:"preset"`
}

func (s *Server) search(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	var body searchBody
	if err := c.ShouldBindJSON(&body); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return
		}
		if errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing q"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(body.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing q"})
		return
	}

	req := types.Request{
		Query:    body.Query,
		Page:     body.Page,
		PageSize: body.PageSize,
		Sources:  body.Sources,
	}
	switch {
	case body.Profile != nil:
		req.Profile = *body.Profile
	case body.Preset != "":
		p, ok := s.catalog.Lookup(body.Preset)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown preset %q", body.Preset)})
			return
		}
		req.Profile = p.Profile
	default:
		req.Profile = s.fallbackProfile()
	}

	resp, err := s.orch.Run(c.Request.Context(), req)
	switch {
	case errors.Is(err, search.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing q"})
		return
	case err != nil:
		s.logger.Error("search failed", "err", err, "request_id", c.GetString(requestIDKey))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// sourceInfo describes one registered source.
type sourceInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (s *Server) sources(c *gin.Context) {
	names := s.orch.Sources()
	out := make([]sourceInfo, len(names))
	for i, n := range names {
		out[i] = sourceInfo{Name: n, Description: provider.Descriptions[n]}
	}
	c.JSON(http.StatusOK, gin.H{"sources": out})
}

func (s *Server) profiles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"default":  s.defaultPreset,
		"profiles": s.catalog.Presets(),
	})
}

// fallbackProfile is the configured default preset's profile, or the
// built-in default when that preset is not in the catalog.
func (s *Server) fallbackProfile() types.Profile {
	if p, ok := s.catalog.Lookup(s.defaultPreset); ok {
		return p.Profile
	}
	return s.catalog.Default()
}
