package synthdom

import (
	"strings"
	"testing"
)

func TestEscapeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"plain text", "Hello, World!", "Hello, World!"},
		{"ampersand", "Tom & Jerry", "Tom &amp; Jerry"},
		{"less than", "a < b", "a &lt; b"},
		{"greater than", "a > b", "a &gt; b"},
		{"quotes untouched", `say "it's"`, `say "it's"`},
		{"script tag", "<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{"already escaped", "&lt;", "&amp;lt;"},
		{"unicode preserved", "Hello 世界 🌍", "Hello 世界 🌍"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeText(tt.input); got != tt.expected {
				t.Errorf("EscapeText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEscapeAttribute(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"plain text", "hello", "hello"},
		{"ampersand", "a&b", "a&amp;b"},
		{"double quote", `value="test"`, "value=&quot;test&quot;"},
		{"single quote", "it's", "it&#39;s"},
		{"whitespace untouched", "a\n\tb", "a\n\tb"},
		{"all special chars", `<>&"'`, "&lt;&gt;&amp;&quot;&#39;"},
		{"already escaped", "&quot;", "&amp;quot;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeAttribute(tt.input); got != tt.expected {
				t.Errorf("EscapeAttribute(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// hasBareAmpersand reports whether s has an '&' that does not start one of
// the given entities.
func hasBareAmpersand(s string, entities []string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '&' {
			continue
		}
		ok := false
		for _, e := range entities {
			if strings.HasPrefix(s[i:], e) {
				ok = true
				break
			}
		}
		if !ok {
			return true
		}
	}
	return false
}

func TestEscapeProperties(t *testing.T) {
	inputs := []string{
		"", "&", "&&", "<<>>", "&amp;", "&lt;&gt;", `"'`, "a<b>c&d\"e'f",
		"<a href=\"?x=1&y=2\">", "日本<語>", strings.Repeat("&<>\"'", 50),
	}
	textEntities := []string{"&amp;", "&lt;", "&gt;"}
	attrEntities := append(textEntities, "&quot;", "&#39;")

	for _, in := range inputs {
		text := EscapeText(in)
		if strings.ContainsAny(text, "<>") {
			t.Errorf("EscapeText(%q) = %q contains '<' or '>'", in, text)
		}
		if hasBareAmpersand(text, textEntities) {
			t.Errorf("EscapeText(%q) = %q contains a bare '&'", in, text)
		}

		attr := EscapeAttribute(in)
		if strings.ContainsAny(attr, `<>"'`) {
			t.Errorf("EscapeAttribute(%q) = %q contains an unescaped character", in, attr)
		}
		if hasBareAmpersand(attr, attrEntities) {
			t.Errorf("EscapeAttribute(%q) = %q contains a bare '&'", in, attr)
		}
	}
}

func BenchmarkEscapeText(b *testing.B) {
	s := `<script>alert("xss")</script> & more content here`
	for i := 0; i < b.N; i++ {
		EscapeText(s)
	}
}

func BenchmarkEscapeAttribute(b *testing.B) {
	s := `value="test" with 'quotes' & more`
	for i := 0; i < b.N; i++ {
		EscapeAttribute(s)
	}
}
