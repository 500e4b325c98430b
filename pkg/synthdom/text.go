package synthdom

import (
	"io"
	"strings"
)

// Text is a leaf node holding a raw string. It is immutable.
type Text struct {
	value string
}

// NewText creates a Text node. value is stored unescaped; escaping is
// applied on serialization.
func NewText(value string) *Text {
	return &Text{value: value}
}

// Kind implements Node.
func (t *Text) Kind() Kind { return KindText }

// Name implements Node. It is always "#text".
func (t *Text) Name() string { return TextNodeName }

// Value implements Node.
func (t *Text) Value() string { return t.value }

// Markup implements Node. The xhtml flag has no effect on text.
func (t *Text) Markup(xhtml bool) string { return markup(t, xhtml) }

// WriteMarkup implements Node.
func (t *Text) WriteMarkup(w io.Writer, xhtml bool) error { return writeMarkup(w, t, xhtml) }

// String implements Node.
func (t *Text) String() string { return t.Markup(false) }

func (t *Text) writeTo(b *strings.Builder, _ bool) {
	b.WriteString(EscapeText(t.value))
}
