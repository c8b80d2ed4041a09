package schema

// The nodes below exist so that schemas can be described faithfully; they
// have no strict structured-output representation and are rejected by the
// converter.

// AnyNode accepts every value.
type AnyNode struct{ base }

func Any() *AnyNode { return &AnyNode{base: newBase()} }

func (*AnyNode) Kind() Kind                   { return KindAny }
func (a *AnyNode) Describe(d string) *AnyNode { a.desc = d; return a }

// NeverNode accepts nothing.
type NeverNode struct{ base }

func Never() *NeverNode { return &NeverNode{base: newBase()} }

func (*NeverNode) Kind() Kind                     { return KindNever }
func (n *NeverNode) Describe(d string) *NeverNode { n.desc = d; return n }

// IntersectionNode requires both sides to match.
type IntersectionNode struct {
	base
	left, right Node
}

func Intersection(left, right Node) *IntersectionNode {
	return &IntersectionNode{base: newBase(), left: left, right: right}
}

func (*IntersectionNode) Kind() Kind                            { return KindIntersection }
func (i *IntersectionNode) Left() Node                          { return i.left }
func (i *IntersectionNode) Right() Node                         { return i.right }
func (i *IntersectionNode) Describe(d string) *IntersectionNode { i.desc = d; return i }

// TupleNode is a fixed-length, positionally typed sequence.
type TupleNode struct {
	base
	items []Node
}

func Tuple(items ...Node) *TupleNode {
	return &TupleNode{base: newBase(), items: append([]Node(nil), items...)}
}

func (*TupleNode) Kind() Kind                     { return KindTuple }
func (t *TupleNode) Items() []Node                { return append([]Node(nil), t.items...) }
func (t *TupleNode) Describe(d string) *TupleNode { t.desc = d; return t }

// RecordNode is a mapping from arbitrary string keys to value.
type RecordNode struct {
	base
	value Node
}

func Record(value Node) *RecordNode { return &RecordNode{base: newBase(), value: value} }

func (*RecordNode) Kind() Kind                      { return KindRecord }
func (r *RecordNode) Value() Node                   { return r.value }
func (r *RecordNode) Describe(d string) *RecordNode { r.desc = d; return r }
