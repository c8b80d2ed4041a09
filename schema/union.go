package schema

// UnionNode accepts a value matching any of its options.
type UnionNode struct {
	base
	options []Node
}

// Union returns a union over options, keeping their order.
func Union(options ...Node) *UnionNode {
	return &UnionNode{base: newBase(), options: append([]Node(nil), options...)}
}

func (*UnionNode) Kind() Kind { return KindUnion }

// Options returns the alternatives in declaration order.
func (u *UnionNode) Options() []Node { return append([]Node(nil), u.options...) }

func (u *UnionNode) Describe(d string) *UnionNode { u.desc = d; return u }

// DiscriminatedUnionNode is a union of objects told apart by a literal-valued
// field named by the discriminator.
type DiscriminatedUnionNode struct {
	base
	discriminator string
	options       []*ObjectNode
}

// DiscriminatedUnion returns a union of options keyed by discriminator.
func DiscriminatedUnion(discriminator string, options ...*ObjectNode) *DiscriminatedUnionNode {
	return &DiscriminatedUnionNode{
		base:          newBase(),
		discriminator: discriminator,
		options:       append([]*ObjectNode(nil), options...),
	}
}

func (*DiscriminatedUnionNode) Kind() Kind { return KindDiscriminatedUnion }

// Discriminator returns the name of the tag field.
func (u *DiscriminatedUnionNode) Discriminator() string { return u.discriminator }

// Options returns the variants in enumeration order.
func (u *DiscriminatedUnionNode) Options() []*ObjectNode {
	return append([]*ObjectNode(nil), u.options...)
}

// Variant returns the option whose discriminator literal equals tag.
func (u *DiscriminatedUnionNode) Variant(tag any) (*ObjectNode, bool) {
	for _, o := range u.options {
		n, ok := o.Lookup(u.discriminator)
		if !ok {
			continue
		}
		n, _ = Unwrap(n)
		if lit, ok := n.(*LiteralNode); ok && lit.value == tag {
			return o, true
		}
	}
	return nil, false
}

func (u *DiscriminatedUnionNode) Describe(d string) *DiscriminatedUnionNode {
	u.desc = d
	return u
}
