package synthdom

import (
	"io"
	"strings"
)

// Fragment groups nodes without markup of its own. It disappears when
// appended to an Element or another Fragment.
type Fragment struct {
	children []Node
}

// NewFragment creates a Fragment, flattening any nested fragments.
func NewFragment(children ...Node) *Fragment {
	return &Fragment{children: appendAll(make([]Node, 0, len(children)), children)}
}

// Kind implements Node.
func (f *Fragment) Kind() Kind { return KindFragment }

// Name implements Node. Fragments have no name.
func (f *Fragment) Name() string { return "" }

// Value implements Node. Fragments carry no value.
func (f *Fragment) Value() string { return "" }

// AppendChild appends n with fragment flattening.
func (f *Fragment) AppendChild(n Node) {
	f.children = Append(f.children, n)
}

// Children returns a copy of the child list.
func (f *Fragment) Children() []Node {
	out := make([]Node, len(f.children))
	copy(out, f.children)
	return out
}

// Len returns the number of children.
func (f *Fragment) Len() int { return len(f.children) }

// Markup implements Node.
func (f *Fragment) Markup(xhtml bool) string { return markup(f, xhtml) }

// WriteMarkup implements Node.
func (f *Fragment) WriteMarkup(w io.Writer, xhtml bool) error { return writeMarkup(w, f, xhtml) }

// String implements Node.
func (f *Fragment) String() string { return f.Markup(false) }

func (f *Fragment) writeTo(b *strings.Builder, xhtml bool) {
	for _, child := range f.children {
		child.writeTo(b, xhtml)
	}
}
