// Package treefile reads and writes synthdom trees as declarative JSON or
// YAML documents.
//
// A document node is an object with a kind and the fields of that kind:
//
//	{"kind": "element", "name": "a", "attrs": [["href", "/"], ["hidden"]],
//	 "children": [{"kind": "text", "value": "home"}]}
//
// kind is "element", "text" or "fragment", or the node type numbers 1, 3
// and 11. attrs is a list of [name, value] pairs; a pair with only a name
// has an empty value. The same shape is accepted in YAML:
//
//	kind: fragment
//	children:
//	  - kind: text
//	    value: hello
//	  - kind: 1
//	    name: br
//
// Documents describe trees; they are not markup and are never parsed as
// such.
package treefile
