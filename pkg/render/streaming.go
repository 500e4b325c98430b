package render

import (
	"context"
	"io"
	"net/http"

	"github.com/vango-dev/synthdom/internal/errors"
	"github.com/vango-dev/synthdom/pkg/synthdom"
)

// StreamingRenderer wraps Renderer with chunked output support.
// It flushes content incrementally for faster time-to-first-byte.
type StreamingRenderer struct {
	*Renderer
	flusher http.Flusher
	w       io.Writer
}

// NewStreamingRenderer creates a streaming renderer that writes to w. If w
// implements http.Flusher, content is flushed after each section.
func NewStreamingRenderer(w io.Writer, r *Renderer) *StreamingRenderer {
	flusher, _ := w.(http.Flusher)
	return &StreamingRenderer{
		Renderer: r,
		flusher:  flusher,
		w:        w,
	}
}

// RenderPage renders a complete document, flushing the head before the
// body. The output is identical to Renderer.RenderPage.
func (s *StreamingRenderer) RenderPage(ctx context.Context, page PageData) error {
	// The html element is assembled by hand so the head can be flushed
	// before the body renders. Its markup matches BuildPage.
	open := synthdom.NewElement("html", []synthdom.Attr{synthdom.A("lang", pageLang(page))}).Markup(false)
	open = open[:len(open)-len("</html>")]

	if s.config.Doctype != "" {
		open = s.config.Doctype + "\n" + open
	}
	if err := s.write(open); err != nil {
		return err
	}
	if err := s.Render(ctx, s.w, BuildHead(page)); err != nil {
		return err
	}
	s.flush()

	if err := s.Render(ctx, s.w, synthdom.NewElement("body", nil, page.Body)); err != nil {
		return err
	}
	if err := s.write("</html>"); err != nil {
		return err
	}
	s.flush()

	return nil
}

func (s *StreamingRenderer) write(str string) error {
	if _, err := io.WriteString(s.w, str); err != nil {
		return errors.New("E120").Wrap(err)
	}
	return nil
}

// flush flushes the writer if it supports flushing.
func (s *StreamingRenderer) flush() {
	if s.flusher != nil {
		s.flusher.Flush()
	}
}

// FlushableWriter wraps an io.Writer with optional flushing capability.
// This is useful for testing streaming behavior without using http.ResponseWriter.
type FlushableWriter struct {
	io.Writer
	FlushCount int
}

// Flush implements http.Flusher.
func (w *FlushableWriter) Flush() {
	w.FlushCount++
}
