package synthdom

// Append returns children with n appended, applying fragment flattening:
// a Fragment contributes its children instead of itself. A nil node
// (including a typed nil) contributes nothing.
//
// A Fragment never holds another Fragment, so splicing one level always
// produces a flat list no matter how deeply fragments were nested when
// they were built.
func Append(children []Node, n Node) []Node {
	if IsNil(n) {
		return children
	}
	if f, ok := n.(*Fragment); ok {
		return append(children, f.children...)
	}
	return append(children, n)
}

// appendAll applies Append to each node in order.
func appendAll(children []Node, nodes []Node) []Node {
	for _, n := range nodes {
		children = Append(children, n)
	}
	return children
}

// IsNil reports whether n is nil or a nil pointer of one of the node
// types.
func IsNil(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *Text:
		return v == nil
	case *Element:
		return v == nil
	case *Fragment:
		return v == nil
	}
	return false
}
