package treefile

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/synthdom/internal/errors"
	"github.com/vango-dev/synthdom/pkg/synthdom"
)

// MaxDepth is the deepest nesting a document may have.
const MaxDepth = 512

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath returns the format for a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New("E103").
			WithDetail(fmt.Sprintf("Cannot infer a document format from %q.", path)).
			WithSuggestion("Rename the file to .json, .yaml or .yml")
	}
}

// FormatFromContentType returns the format for a MIME type. Anything that
// is not a YAML type is treated as JSON.
func FormatFromContentType(contentType string) Format {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return FormatJSON
	}
	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// document is the wire shape of a node.
type document struct {
	Kind     any        `json:"kind" yaml:"kind"`
	Name     string     `json:"name,omitempty" yaml:"name,omitempty"`
	Value    string     `json:"value,omitempty" yaml:"value,omitempty"`
	Attrs    [][]any    `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Children []document `json:"children,omitempty" yaml:"children,omitempty"`
}

// Decode decodes a document into a tree.
func Decode(data []byte, format Format) (synthdom.Node, error) {
	var doc document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.New("E100").Wrap(err)
		}
		if _, err := dec.Token(); err != io.EOF {
			return nil, errors.New("E100").
				WithDetail("A document holds exactly one root node; found data after it.")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.New("E100").Wrap(err)
		}
	default:
		return nil, errors.New("E103").WithDetail(fmt.Sprintf("Unknown format %q.", format))
	}
	return build(doc, "$", 0)
}

// DecodeReader reads r fully and decodes it.
func DecodeReader(r io.Reader, format Format) (synthdom.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.New("E100").Wrap(err)
	}
	return Decode(data, format)
}

// Load reads and decodes the document at path. The format is taken from
// the file extension.
func Load(path string) (synthdom.Node, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E100").WithDetail("Cannot read " + path + ".").Wrap(err)
	}
	node, err := Decode(data, format)
	if err != nil {
		se := errors.FromError(err, "E100")
		if line, col := errorPosition(data, se.Wrapped); line > 0 {
			se.WithLocation(path, line, col)
		}
		return nil, se
	}
	return node, nil
}

// errorPosition extracts the source line and column of a decoder error.
func errorPosition(data []byte, err error) (int, int) {
	if err == nil {
		return 0, 0
	}
	var syn *json.SyntaxError
	var typ *json.UnmarshalTypeError
	switch {
	case stderrors.As(err, &syn):
		return lineColumn(data, syn.Offset)
	case stderrors.As(err, &typ):
		return lineColumn(data, typ.Offset)
	}
	var line int
	if _, scanErr := fmt.Sscanf(err.Error(), "yaml: line %d:", &line); scanErr == nil {
		return line, 0
	}
	return 0, 0
}

// lineColumn converts a decoder byte offset, which counts the offending
// byte, into its 1-based line and column.
func lineColumn(data []byte, offset int64) (int, int) {
	line, col := 1, 1
	for i := int64(0); i < offset-1 && i < int64(len(data)); i++ {
		if data[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

func build(doc document, path string, depth int) (synthdom.Node, error) {
	if depth >= MaxDepth {
		return nil, errors.New("E104").WithPath(path).
			WithDetail(fmt.Sprintf("Documents may nest at most %d levels.", MaxDepth))
	}

	kind, err := parseKind(doc.Kind)
	if err != nil {
		return nil, errors.New("E101").WithPath(path + ".kind").Wrap(err).
			WithSuggestion(`Use one of "element", "text", "fragment" or 1, 3, 11`)
	}

	switch kind {
	case synthdom.KindText:
		return synthdom.NewText(doc.Value), nil

	case synthdom.KindElement:
		attrs, err := buildAttrs(doc.Attrs, path)
		if err != nil {
			return nil, err
		}
		children, err := buildChildren(doc.Children, path, depth)
		if err != nil {
			return nil, err
		}
		return synthdom.NewElement(doc.Name, attrs, children...), nil

	default:
		children, err := buildChildren(doc.Children, path, depth)
		if err != nil {
			return nil, err
		}
		return synthdom.NewFragment(children...), nil
	}
}

func buildChildren(docs []document, path string, depth int) ([]synthdom.Node, error) {
	children := make([]synthdom.Node, 0, len(docs))
	for i, child := range docs {
		node, err := build(child, fmt.Sprintf("%s.children[%d]", path, i), depth+1)
		if err != nil {
			return nil, err
		}
		children = append(children, node)
	}
	return children, nil
}

func buildAttrs(pairs [][]any, path string) ([]synthdom.Attr, error) {
	attrs := make([]synthdom.Attr, 0, len(pairs))
	for i, pair := range pairs {
		attrPath := fmt.Sprintf("%s.attrs[%d]", path, i)
		if len(pair) != 1 && len(pair) != 2 {
			return nil, errors.New("E102").WithPath(attrPath).
				WithDetail(fmt.Sprintf("Expected [name, value], got %d elements.", len(pair)))
		}
		name, ok := pair[0].(string)
		if !ok {
			return nil, errors.New("E102").WithPath(attrPath).
				WithDetail(fmt.Sprintf("Attribute name must be a string, got %T.", pair[0]))
		}
		value := ""
		if len(pair) == 2 {
			if value, ok = pair[1].(string); !ok {
				return nil, errors.New("E102").WithPath(attrPath).
					WithDetail(fmt.Sprintf("Attribute value must be a string, got %T.", pair[1])).
					WithSuggestion(`Quote the value, e.g. ["tabindex", "0"]`)
			}
		}
		attrs = append(attrs, synthdom.Attr{Name: name, Value: value})
	}
	return attrs, nil
}

// parseKind accepts kind names and node type numbers from either decoder.
func parseKind(v any) (synthdom.Kind, error) {
	switch k := v.(type) {
	case string:
		switch strings.ToLower(k) {
		case "element":
			return synthdom.KindElement, nil
		case "text":
			return synthdom.KindText, nil
		case "fragment":
			return synthdom.KindFragment, nil
		}
		if n, err := strconv.Atoi(k); err == nil {
			return kindFromNumber(n)
		}
		return 0, fmt.Errorf("unknown kind %q", k)
	case float64:
		if k != float64(int(k)) {
			return 0, fmt.Errorf("unknown kind %v", k)
		}
		return kindFromNumber(int(k))
	case int:
		return kindFromNumber(k)
	case nil:
		return 0, fmt.Errorf("missing kind")
	default:
		return 0, fmt.Errorf("unknown kind %v (%T)", k, k)
	}
}

func kindFromNumber(n int) (synthdom.Kind, error) {
	switch n {
	case int(synthdom.KindElement), int(synthdom.KindText), int(synthdom.KindFragment):
		return synthdom.Kind(n), nil
	}
	return 0, fmt.Errorf("unknown kind %d", n)
}

// Encode writes node as a document. Kinds are written by name.
// A nil node is written as an empty fragment.
func Encode(node synthdom.Node, format Format) ([]byte, error) {
	doc := document{Kind: "fragment"}
	if !synthdom.IsNil(node) {
		doc = toDocument(node)
	}
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, errors.New("E100").Wrap(err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, errors.New("E100").Wrap(err)
		}
		return data, nil
	default:
		return nil, errors.New("E103").WithDetail(fmt.Sprintf("Unknown format %q.", format))
	}
}

func toDocument(node synthdom.Node) document {
	switch n := node.(type) {
	case *synthdom.Text:
		return document{Kind: "text", Value: n.Value()}
	case *synthdom.Element:
		doc := document{Kind: "element", Name: n.Name()}
		n.Attributes().Each(func(name, value string) {
			doc.Attrs = append(doc.Attrs, []any{name, value})
		})
		doc.Children = toDocuments(n.Children())
		return doc
	case *synthdom.Fragment:
		return document{Kind: "fragment", Children: toDocuments(n.Children())}
	default:
		return document{Kind: "fragment"}
	}
}

func toDocuments(nodes []synthdom.Node) []document {
	if len(nodes) == 0 {
		return nil
	}
	docs := make([]document, 0, len(nodes))
	for _, n := range nodes {
		docs = append(docs, toDocument(n))
	}
	return docs
}
