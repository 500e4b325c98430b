// Package synthdom provides a synthetic DOM: a small in-memory tree of
// markup content that is built programmatically and serialized to a string.
//
// It is a lightweight alternative to a full document tree. There are no
// mutation observers, no layout, no events and no querying. A templating
// or rendering layer builds a tree bottom-up and serializes it once.
//
// # Node Variants
//
// Node is a closed set of three variants, discriminated by Kind:
//
//   - Text (KindText = 3): a leaf holding a raw, unescaped string.
//   - Element (KindElement = 1): a tag with ordered attributes and children.
//   - Fragment (KindFragment = 11): a grouping construct without markup of
//     its own.
//
// The numbering follows the conventional DOM nodeType values.
//
// # Fragment Flattening
//
// Appending a Fragment to an Element or another Fragment splices the
// fragment's children into the parent in its place. A Fragment is never
// retained as a child:
//
//	list := synthdom.NewFragment(
//	    synthdom.NewFragment(synthdom.NewText("a"), synthdom.NewText("b")),
//	    synthdom.NewText("c"),
//	)
//	p := synthdom.NewElement("p", nil, list)
//	// p.Children() is [Text(a), Text(b), Text(c)]
//
// # Serialization
//
// Every node renders through Markup(xhtml). Text is escaped with
// EscapeText, attribute values with EscapeAttribute. Elements named in the
// self-closing registry render without a closing tag, as <br/> in XHTML
// mode and <br> otherwise:
//
//	synthdom.NewElement("div", nil,
//	    synthdom.NewText("hi"),
//	    synthdom.NewElement("br", nil),
//	).Markup(false)
//	// <div>hi<br></div>
//
// # Concurrency
//
// Trees are single-owner while being assembled. Concurrent AppendChild
// calls on the same node must be serialized by the caller. Serialization
// is read-only and may run concurrently as long as nothing mutates the
// tree.
package synthdom
