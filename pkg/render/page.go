package render

import (
	"context"
	"io"

	"github.com/vango-dev/synthdom/pkg/synthdom"
)

// PageData contains all data needed to render a complete page.
type PageData struct {
	// Body is the page content, placed inside <body>.
	Body synthdom.Node

	// Title is the page title.
	Title string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string

	// Meta contains meta tags for the page.
	Meta []MetaTag

	// Links contains link tags (stylesheets, favicon, etc.)
	Links []LinkTag

	// StyleSheets contains paths to external stylesheets.
	StyleSheets []string
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name      string // name attribute
	Content   string // content attribute
	Property  string // property attribute (for OpenGraph)
	HTTPEquiv string // http-equiv attribute
	Charset   string // charset attribute
}

// LinkTag represents a link element in the document head.
type LinkTag struct {
	Rel  string // rel attribute
	Href string // href attribute
	Type string // type attribute
}

// BuildHead builds the <head> element for page.
func BuildHead(page PageData) *synthdom.Element {
	head := synthdom.NewElement("head", nil,
		synthdom.NewElement("meta", []synthdom.Attr{synthdom.A("charset", "utf-8")}),
		synthdom.NewElement("meta", []synthdom.Attr{
			synthdom.A("name", "viewport"),
			synthdom.A("content", "width=device-width, initial-scale=1"),
		}),
	)

	if page.Title != "" {
		head.AppendChild(synthdom.NewElement("title", nil, synthdom.NewText(page.Title)))
	}
	for _, meta := range page.Meta {
		head.AppendChild(synthdom.NewElement("meta", nonEmpty(
			synthdom.A("charset", meta.Charset),
			synthdom.A("name", meta.Name),
			synthdom.A("property", meta.Property),
			synthdom.A("http-equiv", meta.HTTPEquiv),
			synthdom.A("content", meta.Content),
		)))
	}
	for _, link := range page.Links {
		head.AppendChild(synthdom.NewElement("link", nonEmpty(
			synthdom.A("rel", link.Rel),
			synthdom.A("href", link.Href),
			synthdom.A("type", link.Type),
		)))
	}
	for _, href := range page.StyleSheets {
		head.AppendChild(synthdom.NewElement("link", []synthdom.Attr{
			synthdom.A("rel", "stylesheet"),
			synthdom.A("href", href),
		}))
	}
	return head
}

// BuildPage builds the <html> element for page.
func BuildPage(page PageData) *synthdom.Element {
	return synthdom.NewElement("html", []synthdom.Attr{synthdom.A("lang", pageLang(page))},
		BuildHead(page),
		synthdom.NewElement("body", nil, page.Body),
	)
}

// RenderPage renders a complete document to w.
func (r *Renderer) RenderPage(ctx context.Context, w io.Writer, page PageData) error {
	return r.RenderDocument(ctx, w, BuildPage(page))
}

func pageLang(page PageData) string {
	if page.Lang == "" {
		return "en"
	}
	return page.Lang
}

// nonEmpty drops attributes without a value. Page tags only carry the
// fields that were set.
func nonEmpty(attrs ...synthdom.Attr) []synthdom.Attr {
	out := attrs[:0]
	for _, a := range attrs {
		if a.Value != "" {
			out = append(out, a)
		}
	}
	return out
}
