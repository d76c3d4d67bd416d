package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"astuart.co/goswipe"
	"astuart.co/goswipe/internal/config"
)

// Server serves the compiler over HTTP.
type Server struct {
	cfg      *config.Config
	compiler *goswipe.Compiler
	log      *zap.Logger
}

type modifiersRequest struct {
	Modifiers  []string          `json:"modifiers"`
	Expression string            `json:"expression"`
	Companions map[string]string `json:"companions"`
}

type modifiersResponse struct {
	Config   goswipe.Config   `json:"config"`
	Modules  []goswipe.Module `json:"modules,omitempty"`
	Control  string           `json:"control,omitempty"`
	Sync     string           `json:"sync,omitempty"`
	Warnings []string         `json:"warnings,omitempty"`
}

// New returns a server for cfg. A nil log discards output.
func New(cfg *config.Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		cfg:      cfg,
		compiler: goswipe.NewCompiler(cfg.CompilerOptions()),
		log:      log,
	}
}

// Handler returns the gin router with every route mounted.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(s.requestLogger())
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	v1 := r.Group("/v1")
	v1.POST("/compile", s.handleCompile)
	v1.POST("/render", s.handleRender)
	v1.POST("/modifiers", s.handleModifiers)
	return r
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
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

func (s *Server) page(c *gin.Context) (*goswipe.Page, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.Server.MaxBodyBytes))
	if err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		return nil, false
	}
	page, err := goswipe.Compile(bytes.NewReader(body), s.compiler.Options())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return page, true
}

func (s *Server) handleCompile(c *gin.Context) {
	page, ok := s.page(c)
	if !ok {
		return
	}
	defer page.Destroy()
	c.JSON(http.StatusOK, page.Report())
}

func (s *Server) handleRender(c *gin.Context) {
	page, ok := s.page(c)
	if !ok {
		return
	}
	defer page.Destroy()

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handleModifiers(c *gin.Context) {
	var req modifiersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := s.compiler.Compile(goswipe.Directive{
		Modifiers:  req.Modifiers,
		Expression: req.Expression,
		Companions: req.Companions,
	})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	out := modifiersResponse{
		Config:  res.Config,
		Modules: goswipe.RequiredModules(res.Config),
		Control: res.Control,
		Sync:    res.Sync,
	}
	for _, w := range res.Warnings {
		out.Warnings = append(out.Warnings, w.Error())
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
