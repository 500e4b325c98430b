package synthdom

import "strings"

// Each replacer makes a single pass over its input, so an entity it emits
// is never escaped a second time.
var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
)

// EscapeText escapes s for inclusion as element content. It replaces
// '&', '<' and '>' with entities. Already escaped input is escaped again.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// EscapeAttribute escapes s for inclusion in a double- or single-quoted
// attribute value. In addition to EscapeText it replaces '"' and '\''.
func EscapeAttribute(s string) string {
	return attrEscaper.Replace(s)
}
