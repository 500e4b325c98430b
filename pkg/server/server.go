package server

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/synthdom/internal/errors"
	"github.com/vango-dev/synthdom/pkg/render"
	"github.com/vango-dev/synthdom/pkg/sink"
	"github.com/vango-dev/synthdom/pkg/treefile"
)

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	// Address is the listen address (e.g. ":8080").
	Address string

	// MaxBodyBytes limits the size of a tree document.
	MaxBodyBytes int64

	// Gatherer serves /metrics when set.
	Gatherer prometheus.Gatherer

	// Logger is the server logger. Defaults to slog.Default().
	Logger *slog.Logger

	// Middleware runs after request ID assignment and panic recovery,
	// in order.
	Middleware []func(http.Handler) http.Handler

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:           ":8080",
		MaxBodyBytes:      4 << 20,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ShutdownTimeout:   10 * time.Second,
	}
}

// Server renders tree documents over HTTP.
type Server struct {
	config     *ServerConfig
	xhtml      bool
	html       *render.Renderer
	xhtmlR     *render.Renderer
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a Server. rc sets the default rendering mode and doctype;
// opts are applied to both the HTML and the XHTML renderer.
func New(config *ServerConfig, rc render.RendererConfig, opts ...render.Option) *Server {
	if config == nil {
		config = DefaultServerConfig()
	}
	defaults := DefaultServerConfig()
	if config.MaxBodyBytes == 0 {
		config.MaxBodyBytes = defaults.MaxBodyBytes
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = defaults.ShutdownTimeout
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "server")

	htmlConfig, xhtmlConfig := rc, rc
	htmlConfig.XHTML = false
	xhtmlConfig.XHTML = true

	s := &Server{
		config: config,
		xhtml:  rc.XHTML,
		html:   render.NewRenderer(htmlConfig, opts...),
		xhtmlR: render.NewRenderer(xhtmlConfig, opts...),
		logger: logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.config.Middleware...)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Post("/render", s.handleRender)
	if s.config.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// Handler returns the HTTP handler for mounting in another router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	xhtml, err := boolParam(r, "xhtml", s.xhtml)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, errors.New("E160").WithDetail("xhtml: "+err.Error()))
		return
	}
	document, err := boolParam(r, "document", false)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, errors.New("E160").WithDetail("document: "+err.Error()))
		return
	}

	body := http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)
	node, err := treefile.DecodeReader(body, treefile.FormatFromContentType(r.Header.Get("Content-Type")))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge, errors.New("E105").
				WithDetail(fmt.Sprintf("Request bodies are limited to %d bytes.", tooLarge.Limit)))
			return
		}
		s.writeError(w, r, http.StatusBadRequest, errors.FromError(err, "E100"))
		return
	}

	renderer := s.html
	if xhtml {
		renderer = s.xhtmlR
	}

	var buf bytes.Buffer
	if document {
		err = renderer.RenderDocument(r.Context(), &buf, node)
	} else {
		err = renderer.Render(r.Context(), &buf, node)
	}
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, errors.FromError(err, "E120"))
		return
	}

	w.Header().Set("Content-Type", sink.ContentType(xhtml))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err *errors.SynthError) {
	s.logger.InfoContext(r.Context(), "render request rejected",
		"status", status,
		"code", err.Code,
		"error", err.Error(),
		"request_id", middleware.GetReqID(r.Context()),
	)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintln(w, err.FormatJSON())
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.DebugContext(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// boolParam parses a boolean query parameter, returning def when absent.
func boolParam(r *http.Request, name string, def bool) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	return strconv.ParseBool(v)
}

// Run starts the server and blocks until ctx is cancelled or the listener
// fails. Cancelling ctx shuts the server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil

	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Config returns the server configuration.
func (s *Server) Config() *ServerConfig {
	return s.config
}
