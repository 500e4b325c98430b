package treefile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/synthdom/internal/errors"
	"github.com/vango-dev/synthdom/pkg/synthdom"
)

const jsonDoc = `{
  "kind": "element",
  "name": "div",
  "attrs": [["class", "card"], ["hidden"]],
  "children": [
    {"kind": 3, "value": "a < b"},
    {"kind": "fragment", "children": [
      {"kind": "element", "name": "br"},
      {"kind": 11, "children": [{"kind": "text", "value": "deep"}]}
    ]}
  ]
}`

const yamlDoc = `
kind: element
name: div
attrs:
  - [class, card]
  - [hidden]
children:
  - kind: 3
    value: a < b
  - kind: fragment
    children:
      - kind: element
        name: br
      - kind: 11
        children:
          - kind: text
            value: deep
`

func TestDecode(t *testing.T) {
	want := synthdom.NewElement("div",
		[]synthdom.Attr{synthdom.A("class", "card"), synthdom.A("hidden", "")},
		synthdom.NewText("a < b"),
		synthdom.NewFragment(
			synthdom.NewElement("br", nil),
			synthdom.NewFragment(synthdom.NewText("deep")),
		),
	).String()

	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"json", jsonDoc, FormatJSON},
		{"yaml", yamlDoc, FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Decode([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if got := node.String(); got != want {
				t.Errorf("String() = %q, want %q", got, want)
			}
			el, ok := node.(*synthdom.Element)
			if !ok {
				t.Fatalf("root = %T, want *synthdom.Element", node)
			}
			if n := len(el.Children()); n != 3 {
				t.Errorf("len(Children()) = %d, want 3 after flattening", n)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		format   Format
		wantCode string
		wantPath string
	}{
		{"malformed json", `{"kind":`, FormatJSON, "E100", ""},
		{"malformed yaml", "kind: [", FormatYAML, "E100", ""},
		{"missing kind", `{"name": "div"}`, FormatJSON, "E101", "$.kind"},
		{"unknown kind name", `{"kind": "comment"}`, FormatJSON, "E101", "$.kind"},
		{"unknown kind number", `{"kind": 8}`, FormatJSON, "E101", "$.kind"},
		{"fractional kind", `{"kind": 1.5}`, FormatJSON, "E101", "$.kind"},
		{"nested unknown kind", `{"kind": 11, "children": [{"kind": 3}, {"kind": "x"}]}`, FormatJSON, "E101", "$.children[1].kind"},
		{"empty attr pair", `{"kind": 1, "name": "a", "attrs": [[]]}`, FormatJSON, "E102", "$.attrs[0]"},
		{"numeric attr value", `{"kind": 1, "name": "a", "attrs": [["tabindex", 0]]}`, FormatJSON, "E102", "$.attrs[0]"},
		{"numeric attr name yaml", "kind: 1\nname: a\nattrs:\n  - [1, x]\n", FormatYAML, "E102", "$.attrs[0]"},
		{"unknown format", `{}`, Format("toml"), "E103", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.format)
			if err == nil {
				t.Fatal("expected error")
			}
			se := errors.FromError(err, "")
			if se.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q (%v)", se.Code, tt.wantCode, err)
			}
			if se.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", se.Path, tt.wantPath)
			}
		})
	}
}

// nested returns a document of levels nodes: levels-1 fragments around
// one text node.
func nested(levels int) []byte {
	var b strings.Builder
	for i := 0; i < levels-1; i++ {
		b.WriteString(`{"kind":"fragment","children":[`)
	}
	b.WriteString(`{"kind":"text","value":"x"}`)
	for i := 0; i < levels-1; i++ {
		b.WriteString(`]}`)
	}
	return []byte(b.String())
}

func TestDecodeDepthLimit(t *testing.T) {
	tests := []struct {
		levels   int
		wantCode string
	}{
		{MaxDepth - 1, ""},
		{MaxDepth, ""},
		{MaxDepth + 1, "E104"},
		{MaxDepth + 10, "E104"},
	}

	for _, tt := range tests {
		node, err := Decode(nested(tt.levels), FormatJSON)
		if code := errors.Code(err); code != tt.wantCode {
			t.Errorf("levels %d: Code = %q, want %q (%v)", tt.levels, code, tt.wantCode, err)
		}
		if tt.wantCode == "" && node.String() != "x" {
			t.Errorf("levels %d: String() = %q, want %q", tt.levels, node.String(), "x")
		}
	}
}

func TestDecodeTrailingData(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"trailing whitespace", "{\"kind\":\"text\",\"value\":\"a\"} \n\t", false},
		{"trailing garbage", `{"kind":"text"} junk`, true},
		{"second document", `{"kind":"text"}{"kind":"text"}`, true},
		{"trailing array", `{"kind":"text"} []`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input), FormatJSON)
			if tt.wantErr {
				if code := errors.Code(err); code != "E100" {
					t.Errorf("Code = %q, want E100 (%v)", code, err)
				}
				return
			}
			if err != nil {
				t.Errorf("Decode() error = %v", err)
			}
		})
	}
}

func TestDecodeKindStrings(t *testing.T) {
	for _, kind := range []string{`"1"`, `"Element"`, `"ELEMENT"`} {
		node, err := Decode([]byte(`{"kind": `+kind+`, "name": "p"}`), FormatJSON)
		if err != nil {
			t.Fatalf("kind %s: Decode() error = %v", kind, err)
		}
		if node.Kind() != synthdom.KindElement {
			t.Errorf("kind %s: Kind() = %v, want Element", kind, node.Kind())
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	tree := synthdom.NewElement("ul", []synthdom.Attr{synthdom.A("id", "list"), synthdom.A("data-x", `"q"`)},
		synthdom.NewElement("li", nil, synthdom.NewText("one & two")),
		synthdom.NewElement("li", []synthdom.Attr{synthdom.A("hidden", "")}),
		synthdom.NewElement("input", nil),
	)

	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := Encode(tree, format)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			node, err := Decode(data, format)
			if err != nil {
				t.Fatalf("Decode() error = %v\n%s", err, data)
			}
			if node.Markup(true) != tree.Markup(true) {
				t.Errorf("round trip = %q, want %q", node.Markup(true), tree.Markup(true))
			}
		})
	}
}

func TestEncodeNil(t *testing.T) {
	data, err := Encode(nil, FormatJSON)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	node, err := Decode(data, FormatJSON)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if node.Kind() != synthdom.KindFragment || node.String() != "" {
		t.Errorf("decoded %v %q, want empty fragment", node.Kind(), node.String())
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "page.json")
	if err := os.WriteFile(jsonPath, []byte(jsonDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	yamlPath := filepath.Join(dir, "page.yml")
	if err := os.WriteFile(yamlPath, []byte(yamlDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	a, err := Load(jsonPath)
	if err != nil {
		t.Fatalf("Load(json) error = %v", err)
	}
	b, err := Load(yamlPath)
	if err != nil {
		t.Fatalf("Load(yaml) error = %v", err)
	}
	if a.String() != b.String() {
		t.Errorf("json and yaml documents differ: %q vs %q", a.String(), b.String())
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "page.toml")); errors.Code(err) != "E103" {
		t.Errorf("Load(.toml) code = %q, want E103", errors.Code(err))
	}
	if _, err := Load(filepath.Join(dir, "missing.json")); errors.Code(err) != "E100" {
		t.Errorf("Load(missing) code = %q, want E100", errors.Code(err))
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{\n  \"kind\": \"element\",\n  \"name\": ]\n}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(bad)
	se := errors.FromError(err, "")
	if se == nil || se.Code != "E100" {
		t.Fatalf("Load(bad) = %v, want E100", err)
	}
	if se.Location == nil || se.Location.Line != 3 {
		t.Errorf("Location = %v, want line 3", se.Location)
	}
}

func TestFormatFromContentType(t *testing.T) {
	tests := []struct {
		contentType string
		want        Format
	}{
		{"application/json", FormatJSON},
		{"application/json; charset=utf-8", FormatJSON},
		{"application/yaml", FormatYAML},
		{"text/x-yaml; charset=utf-8", FormatYAML},
		{"", FormatJSON},
		{"text/plain", FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			if got := FormatFromContentType(tt.contentType); got != tt.want {
				t.Errorf("FormatFromContentType(%q) = %q, want %q", tt.contentType, got, tt.want)
			}
		})
	}
}
