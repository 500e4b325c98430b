package synthdom

import (
	"io"
	"strings"
)

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement  Kind = 1  // <div>, <br>, etc.
	KindText     Kind = 3  // Plain text
	KindFragment Kind = 11 // Grouping without wrapper
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// TextNodeName is the Name of every Text node.
const TextNodeName = "#text"

// Node is a node of a synthetic tree. The only implementations are *Text,
// *Element and *Fragment.
type Node interface {
	// Kind returns the node type discriminator.
	Kind() Kind

	// Name returns "#text" for Text, the tag name for Element, and ""
	// for Fragment.
	Name() string

	// Value returns the raw payload of a Text node and "" otherwise.
	Value() string

	// Markup serializes the node. xhtml closes self-closing elements
	// with "/>".
	Markup(xhtml bool) string

	// WriteMarkup streams the same output as Markup to w.
	WriteMarkup(w io.Writer, xhtml bool) error

	// String is Markup(false).
	String() string

	writeTo(b *strings.Builder, xhtml bool)
}

// markup renders n into a fresh builder.
func markup(n Node, xhtml bool) string {
	var b strings.Builder
	n.writeTo(&b, xhtml)
	return b.String()
}

// writeMarkup renders n and copies it to w in a single Write.
func writeMarkup(w io.Writer, n Node, xhtml bool) error {
	_, err := io.WriteString(w, markup(n, xhtml))
	return err
}
