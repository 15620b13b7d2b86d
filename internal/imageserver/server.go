// Package imageserver serves hosted art to the renderer and accepts uploads
// from remote builds.
package imageserver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arcanaland/framesmith/internal/storage"
)

// DefaultPrefix is used when no path prefix is configured
const DefaultPrefix = "images"

const maxUpload = 64 << 20

// Server serves files below root under /<prefix>/
type Server struct {
	root   string
	prefix string
	logger *zap.Logger
	engine *gin.Engine
}

// New creates a Server and registers its routes
func New(root, prefix string, logger *zap.Logger) *Server {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{root: root, prefix: prefix, logger: logger, engine: gin.New()}
	s.engine.Use(gin.Recovery(), s.logRequests, cors)
	s.registerRoutes()
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	files := s.engine.Group("/" + s.prefix)
	{
		files.GET("/*path", s.serveFile)
		files.HEAD("/*path", s.serveFile)
		files.PUT("/*path", s.putFile)
		files.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	}
}

func (s *Server) resolve(c *gin.Context) (string, bool) {
	rel, err := storage.CleanRel(c.Param("path"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return filepath.Join(s.root, s.prefix, filepath.FromSlash(rel)), true
}

func (s *Server) serveFile(c *gin.Context) {
	path, ok := s.resolve(c)
	if !ok {
		return
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		c.Status(http.StatusNotFound)
		return
	}
	c.File(path)
}

func (s *Server) putFile(c *gin.Context) {
	path, ok := s.resolve(c)
	if !ok {
		return
	}
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxUpload+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(data) > maxUpload {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}
	if len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty body"})
		return
	}
	if err := storage.WriteAtomic(path, data); err != nil {
		s.logger.Error("upload failed", zap.String("path", path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store file"})
		return
	}
	c.Status(http.StatusCreated)
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logger.Debug("request",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("elapsed", time.Since(start)))
}

// cors lets the browser-based renderer load images from another origin
func cors(c *gin.Context) {
	h := c.Writer.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, HEAD, PUT, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	c.Next()
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("image server listening",
			zap.String("addr", addr), zap.String("root", s.root), zap.String("prefix", "/"+s.prefix))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
