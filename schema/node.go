package schema

import "sync/atomic"

// ID is a process-unique node identity. Two nodes are the same only when their
// IDs match; structurally equal nodes built separately never share an ID.
type ID uint64

var lastID atomic.Uint64

func nextID() ID { return ID(lastID.Add(1)) }

// NewID allocates an identity for Node implementations defined outside this
// package.
func NewID() ID { return nextID() }

// Node is one construct in a schema tree.
type Node interface {
	ID() ID
	Kind() Kind
	Description() string
}

// base carries the attributes shared by every node.
type base struct {
	id   ID
	desc string
}

func newBase() base { return base{id: nextID()} }

func (b *base) ID() ID              { return b.id }
func (b *base) Description() string { return b.desc }
func (b *base) self() *base         { return b }

// WithDescription sets the description of any node built by this package and
// returns n. Other Node implementations are returned unchanged.
func WithDescription(n Node, d string) Node {
	if h, ok := n.(interface{ self() *base }); ok {
		h.self().desc = d
	}
	return n
}

// Children returns the nodes directly traversable from n in declared order.
// Lazy nodes are resolved. Leaves and unrecognized nodes have no children.
func Children(n Node) []Node {
	switch t := n.(type) {
	case *ObjectNode:
		out := make([]Node, 0, len(t.fields))
		for _, f := range t.fields {
			out = append(out, f.Node)
		}
		return out
	case *ArrayNode:
		return []Node{t.elem}
	case *UnionNode:
		return append([]Node(nil), t.options...)
	case *DiscriminatedUnionNode:
		out := make([]Node, 0, len(t.options))
		for _, o := range t.options {
			out = append(out, o)
		}
		return out
	case *LazyNode:
		if r := t.Resolve(); r != nil {
			return []Node{r}
		}
		return nil
	case *NullableNode:
		return []Node{t.inner}
	case *OptionalNode:
		return []Node{t.inner}
	case *DefaultNode:
		return []Node{t.inner}
	case *IntersectionNode:
		return []Node{t.left, t.right}
	case *TupleNode:
		return append([]Node(nil), t.items...)
	case *RecordNode:
		return []Node{t.value}
	default:
		return nil
	}
}

// Presence describes which wrappers were stripped by Unwrap.
type Presence struct {
	Nullable bool
	Optional bool
	Default  bool
}

// Unwrap strips nullable/optional/default wrappers around n and reports which
// were present. Lazy nodes are not resolved.
func Unwrap(n Node) (Node, Presence) {
	var p Presence
	for {
		switch t := n.(type) {
		case *NullableNode:
			p.Nullable = true
			n = t.inner
		case *OptionalNode:
			p.Optional = true
			n = t.inner
		case *DefaultNode:
			p.Default = true
			n = t.inner
		default:
			return n, p
		}
	}
}
