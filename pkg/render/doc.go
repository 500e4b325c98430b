// Package render provides instrumented server-side rendering of synthdom
// trees.
//
// The synthdom package already knows how to serialize a tree. This package
// wraps it with what a rendering layer needs around that:
//
//   - One configuration for XHTML mode and the document doctype
//   - Full page assembly (html, head, body) from PageData
//   - Streaming output with flushing for HTTP responses
//   - Prometheus metrics and OpenTelemetry spans per render
//   - An adapter that embeds a tree in a gomponents page
//
// # Basic Usage
//
// To render a tree to a string:
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// To stream it to a writer with tracing and metrics:
//
//	renderer := render.NewRenderer(render.RendererConfig{XHTML: true},
//	    render.WithMetrics(render.NewMetrics(render.WithNamespace("site"))),
//	    render.WithLogger(slog.Default()),
//	)
//	err := renderer.Render(ctx, w, node)
//
// # Full Page Rendering
//
//	page := render.PageData{
//	    Title: "My Page",
//	    Body:  bodyNode,
//	}
//	err := renderer.RenderPage(ctx, w, page)
//
// # Security
//
// All text content and attribute values are escaped by synthdom. There is
// no raw HTML node kind.
package render
