// Package errors provides structured, actionable error messages for synthdom.
//
// Errors carry a registered code (e.g. "E100") that maps to a category, a
// short message and a longer explanation. Tree document errors also carry
// the document path of the offending node and, when known, the source
// location.
//
// # Error Categories
//
//   - document: malformed tree documents (JSON or YAML)
//   - render: serialization and output failures
//   - config: configuration file errors
//   - cli: command line usage errors
//
// # Usage
//
//	err := errors.New("E101").
//	    WithPath("$.children[2]").
//	    WithSuggestion(`Use one of "element", "text", "fragment" or 1, 3, 11`)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E101: Unknown node kind
//	//
//	//   at $.children[2]
//	//
//	//   Hint: Use one of "element", "text", "fragment" or 1, 3, 11
package errors
