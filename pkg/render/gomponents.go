package render

import (
	"io"

	g "maragu.dev/gomponents"

	"github.com/vango-dev/synthdom/pkg/synthdom"
)

// Component adapts a tree to a gomponents.Node so it can be embedded in a
// gomponents page. A nil node renders nothing.
func Component(node synthdom.Node, xhtml bool) g.Node {
	return g.NodeFunc(func(w io.Writer) error {
		if synthdom.IsNil(node) {
			return nil
		}
		return node.WriteMarkup(w, xhtml)
	})
}
