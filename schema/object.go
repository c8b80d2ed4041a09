package schema

// Field is a named object property.
type Field struct {
	Name string
	Node Node
}

// ObjectNode is an object schema with properties in declaration order.
type ObjectNode struct {
	base
	fields []Field
	index  map[string]int
}

// Object returns an empty object schema; add properties with Field.
func Object() *ObjectNode {
	return &ObjectNode{base: newBase(), index: map[string]int{}}
}

func (*ObjectNode) Kind() Kind { return KindObject }

// Field declares a property. Redeclaring a name replaces its node but keeps
// the original position.
func (o *ObjectNode) Field(name string, n Node) *ObjectNode {
	if i, ok := o.index[name]; ok {
		o.fields[i].Node = n
		return o
	}
	o.index[name] = len(o.fields)
	o.fields = append(o.fields, Field{Name: name, Node: n})
	return o
}

// Fields returns the properties in declaration order.
func (o *ObjectNode) Fields() []Field { return append([]Field(nil), o.fields...) }

// Lookup returns the node declared for name.
func (o *ObjectNode) Lookup(name string) (Node, bool) {
	i, ok := o.index[name]
	if !ok {
		return nil, false
	}
	return o.fields[i].Node, true
}

func (o *ObjectNode) Describe(d string) *ObjectNode { o.desc = d; return o }
