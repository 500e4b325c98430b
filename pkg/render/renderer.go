package render

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/synthdom/internal/errors"
	"github.com/vango-dev/synthdom/pkg/synthdom"
)

// Default tracer name for renders.
const defaultTracerName = "synthdom/render"

// RendererConfig configures the renderer.
type RendererConfig struct {
	// XHTML closes self-closing elements with "/>".
	XHTML bool

	// Doctype is written before documents by RenderDocument and RenderPage.
	// Nothing is written when it is empty.
	Doctype string
}

// Renderer renders synthdom trees. It holds no per-render state and is
// safe for concurrent use, provided no tree is mutated while it renders.
type Renderer struct {
	config  RendererConfig
	metrics *Metrics
	tracer  trace.Tracer
	logger  *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithMetrics records every render in m.
func WithMetrics(m *Metrics) Option {
	return func(r *Renderer) {
		r.metrics = m
	}
}

// WithTracer sets the tracer used for render spans. The default is the
// global OpenTelemetry tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(r *Renderer) {
		r.tracer = t
	}
}

// WithLogger sets the logger. Renders are logged at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = l
	}
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig, opts ...Option) *Renderer {
	r := &Renderer{config: config}
	for _, opt := range opts {
		opt(r)
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer(defaultTracerName)
	}
	if r.logger == nil {
		r.logger = slog.Default().With("component", "render")
	}
	return r
}

// Config returns the renderer configuration.
func (r *Renderer) Config() RendererConfig {
	return r.config
}

// RenderToString renders a tree to a string.
func (r *Renderer) RenderToString(node synthdom.Node) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter renders a tree to w.
func (r *Renderer) RenderToWriter(w io.Writer, node synthdom.Node) error {
	return r.Render(context.Background(), w, node)
}

// Render renders a tree to w inside a span. A nil node writes nothing.
func (r *Renderer) Render(ctx context.Context, w io.Writer, node synthdom.Node) error {
	return r.render(ctx, w, "", node)
}

// RenderDocument renders a tree to w preceded by the configured doctype.
func (r *Renderer) RenderDocument(ctx context.Context, w io.Writer, node synthdom.Node) error {
	prefix := ""
	if r.config.Doctype != "" {
		prefix = r.config.Doctype + "\n"
	}
	return r.render(ctx, w, prefix, node)
}

func (r *Renderer) render(ctx context.Context, w io.Writer, prefix string, node synthdom.Node) error {
	kind := "None"
	if !synthdom.IsNil(node) {
		kind = node.Kind().String()
	}

	ctx, span := r.tracer.Start(ctx, "synthdom.render",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("synthdom.kind", kind),
			attribute.Bool("synthdom.xhtml", r.config.XHTML),
		),
	)
	defer span.End()

	start := time.Now()
	out := prefix
	if !synthdom.IsNil(node) {
		out += node.Markup(r.config.XHTML)
	}

	var (
		n   int
		err error
	)
	if out != "" {
		n, err = io.WriteString(w, out)
	}
	r.metrics.observe(kind, n, time.Since(start), err)
	span.SetAttributes(attribute.Int("synthdom.bytes", n))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.logger.WarnContext(ctx, "render failed", "kind", kind, "error", err)
		return errors.New("E120").Wrap(err)
	}

	span.SetStatus(codes.Ok, "")
	r.logger.DebugContext(ctx, "rendered", "kind", kind, "bytes", n, "xhtml", r.config.XHTML)
	return nil
}
