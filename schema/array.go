package schema

// ArrayNode is a homogeneous array schema.
type ArrayNode struct {
	base
	elem Node
}

// Array returns an array schema whose items follow elem.
func Array(elem Node) *ArrayNode { return &ArrayNode{base: newBase(), elem: elem} }

func (*ArrayNode) Kind() Kind { return KindArray }

// Elem returns the element schema.
func (a *ArrayNode) Elem() Node { return a.elem }

func (a *ArrayNode) Describe(d string) *ArrayNode { a.desc = d; return a }
