package schema

// NullableNode accepts null in addition to its inner schema.
type NullableNode struct {
	base
	inner Node
}

// Nullable wraps n so that null is also accepted.
func Nullable(n Node) *NullableNode { return &NullableNode{base: newBase(), inner: n} }

func (*NullableNode) Kind() Kind                        { return KindNullable }
func (w *NullableNode) Inner() Node                     { return w.inner }
func (w *NullableNode) Describe(d string) *NullableNode { w.desc = d; return w }

// OptionalNode marks a value that may be absent.
type OptionalNode struct {
	base
	inner Node
}

// Optional wraps n so that the value may be missing.
func Optional(n Node) *OptionalNode { return &OptionalNode{base: newBase(), inner: n} }

func (*OptionalNode) Kind() Kind                        { return KindOptional }
func (w *OptionalNode) Inner() Node                     { return w.inner }
func (w *OptionalNode) Describe(d string) *OptionalNode { w.desc = d; return w }

// DefaultNode substitutes a value when the input is missing.
type DefaultNode struct {
	base
	inner Node
	value any
}

// Default wraps n with a default used for absent values.
func Default(n Node, v any) *DefaultNode {
	return &DefaultNode{base: newBase(), inner: n, value: v}
}

func (*DefaultNode) Kind() Kind                       { return KindDefault }
func (w *DefaultNode) Inner() Node                    { return w.inner }
func (w *DefaultNode) Value() any                     { return w.value }
func (w *DefaultNode) Describe(d string) *DefaultNode { w.desc = d; return w }
