package synthdom

// Attr is a single attribute name/value pair used to build an Element.
type Attr struct {
	Name  string
	Value string
}

// A builds an Attr.
func A(name, value string) Attr {
	return Attr{Name: name, Value: value}
}

// Attributes is an insertion-ordered mapping from attribute name to value.
// Setting an existing name overwrites the value and keeps the original
// position. The zero value is an empty mapping ready to use.
type Attributes struct {
	names  []string
	values map[string]string
}

// NewAttributes builds Attributes from pairs. Duplicate names keep their
// first position and take the last value.
func NewAttributes(pairs ...Attr) Attributes {
	var a Attributes
	for _, p := range pairs {
		a.set(p.Name, p.Value)
	}
	return a
}

func (a *Attributes) set(name, value string) {
	if a.values == nil {
		a.values = make(map[string]string)
	}
	if _, ok := a.values[name]; !ok {
		a.names = append(a.names, name)
	}
	a.values[name] = value
}

// Get returns the value for name and whether it is present.
func (a Attributes) Get(name string) (string, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Has reports whether name is present.
func (a Attributes) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// Len returns the number of attributes.
func (a Attributes) Len() int {
	return len(a.names)
}

// Names returns the attribute names in insertion order.
func (a Attributes) Names() []string {
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

// Pairs returns the attributes as pairs in insertion order.
func (a Attributes) Pairs() []Attr {
	out := make([]Attr, 0, len(a.names))
	for _, name := range a.names {
		out = append(out, Attr{Name: name, Value: a.values[name]})
	}
	return out
}

// Each calls fn for every attribute in insertion order.
func (a Attributes) Each(fn func(name, value string)) {
	for _, name := range a.names {
		fn(name, a.values[name])
	}
}
