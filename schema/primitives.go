package schema

// StringNode is a string schema.
type StringNode struct{ base }

// String returns a string schema.
func String() *StringNode { return &StringNode{base: newBase()} }

func (*StringNode) Kind() Kind { return KindString }

// Describe attaches a human-readable description.
func (s *StringNode) Describe(d string) *StringNode { s.desc = d; return s }

// NumberNode is a number schema, optionally constrained to integers.
type NumberNode struct {
	base
	integer bool
}

// Number returns a number schema.
func Number() *NumberNode { return &NumberNode{base: newBase()} }

// Int returns a number schema carrying an integer constraint.
func Int() *NumberNode { return &NumberNode{base: newBase(), integer: true} }

func (*NumberNode) Kind() Kind { return KindNumber }

// Int adds the integer constraint.
func (n *NumberNode) Int() *NumberNode { n.integer = true; return n }

// IsInt reports whether the integer constraint is set.
func (n *NumberNode) IsInt() bool { return n.integer }

func (n *NumberNode) Describe(d string) *NumberNode { n.desc = d; return n }

// BigIntNode is an arbitrary-precision integer schema.
type BigIntNode struct{ base }

func BigInt() *BigIntNode { return &BigIntNode{base: newBase()} }

func (*BigIntNode) Kind() Kind                      { return KindBigInt }
func (b *BigIntNode) Describe(d string) *BigIntNode { b.desc = d; return b }

// BoolNode is a boolean schema.
type BoolNode struct{ base }

func Bool() *BoolNode { return &BoolNode{base: newBase()} }

func (*BoolNode) Kind() Kind                    { return KindBoolean }
func (b *BoolNode) Describe(d string) *BoolNode { b.desc = d; return b }

// NullNode accepts only null.
type NullNode struct{ base }

func Null() *NullNode { return &NullNode{base: newBase()} }

func (*NullNode) Kind() Kind                    { return KindNull }
func (n *NullNode) Describe(d string) *NullNode { n.desc = d; return n }

// LiteralNode accepts exactly one value.
type LiteralNode struct {
	base
	value any
}

// Literal returns a schema accepting only v.
func Literal(v any) *LiteralNode { return &LiteralNode{base: newBase(), value: v} }

func (*LiteralNode) Kind() Kind { return KindLiteral }

// Value returns the literal value.
func (l *LiteralNode) Value() any { return l.value }

func (l *LiteralNode) Describe(d string) *LiteralNode { l.desc = d; return l }
