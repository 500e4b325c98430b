package synthdom

import "sort"

// selfClosing holds the elements that cannot have children and have no
// closing tag.
var selfClosing = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"keygen": true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsSelfClosing reports whether name is a self-closing element. The match
// is exact and case-sensitive: "BR" is not self-closing.
func IsSelfClosing(name string) bool {
	return selfClosing[name]
}

// SelfClosingNames returns the self-closing element names, sorted.
func SelfClosingNames() []string {
	names := make([]string, 0, len(selfClosing))
	for name := range selfClosing {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
