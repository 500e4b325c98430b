package synthdom

import (
	"io"
	"strings"
)

// Element is a tag with ordered attributes and ordered children.
type Element struct {
	name          string
	attrs         Attributes
	children      []Node
	isSelfClosing bool
}

// NewElement creates an Element. Whether the element is self-closing is
// decided once, here, by an exact match of name against the self-closing
// registry. Children of a self-closing element are discarded. No
// validation is applied to name; an empty or unknown name is an ordinary
// tag.
func NewElement(name string, attrs []Attr, children ...Node) *Element {
	e := &Element{
		name:          name,
		attrs:         NewAttributes(attrs...),
		children:      make([]Node, 0, len(children)),
		isSelfClosing: IsSelfClosing(name),
	}
	if !e.isSelfClosing {
		e.children = appendAll(e.children, children)
	}
	return e
}

// Kind implements Node.
func (e *Element) Kind() Kind { return KindElement }

// Name implements Node. It returns the tag name.
func (e *Element) Name() string { return e.name }

// Value implements Node. Elements carry no value.
func (e *Element) Value() string { return "" }

// IsSelfClosing reports whether the element renders without a closing tag.
func (e *Element) IsSelfClosing() bool { return e.isSelfClosing }

// AppendChild appends n with fragment flattening.
//
// AppendChild does not refuse children on a self-closing element. They are
// stored and reported by Children, but never rendered.
func (e *Element) AppendChild(n Node) {
	e.children = Append(e.children, n)
}

// GetAttribute returns the attribute value and whether it is present.
func (e *Element) GetAttribute(name string) (string, bool) {
	return e.attrs.Get(name)
}

// Attributes returns the element's attributes.
func (e *Element) Attributes() Attributes { return e.attrs }

// Children returns a copy of the child list.
func (e *Element) Children() []Node {
	out := make([]Node, len(e.children))
	copy(out, e.children)
	return out
}

// Markup implements Node.
func (e *Element) Markup(xhtml bool) string { return markup(e, xhtml) }

// WriteMarkup implements Node.
func (e *Element) WriteMarkup(w io.Writer, xhtml bool) error { return writeMarkup(w, e, xhtml) }

// String implements Node.
func (e *Element) String() string { return e.Markup(false) }

func (e *Element) writeTo(b *strings.Builder, xhtml bool) {
	b.WriteByte('<')
	b.WriteString(e.name)
	e.attrs.Each(func(name, value string) {
		b.WriteByte(' ')
		b.WriteString(name)
		if value != "" {
			b.WriteString(`="`)
			b.WriteString(EscapeAttribute(value))
			b.WriteByte('"')
		}
	})

	if e.isSelfClosing {
		if xhtml {
			b.WriteString("/>")
		} else {
			b.WriteByte('>')
		}
		return
	}

	b.WriteByte('>')
	for _, child := range e.children {
		child.writeTo(b, xhtml)
	}
	b.WriteString("</")
	b.WriteString(e.name)
	b.WriteByte('>')
}
