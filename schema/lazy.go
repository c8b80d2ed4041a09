package schema

import "sync"

// LazyNode defers construction of its target so that schemas can refer to
// themselves. The getter runs at most once; every Resolve returns the same node.
type LazyNode struct {
	base
	once   sync.Once
	get    func() Node
	target Node
}

// Lazy returns a node resolved through get on first use.
//
//	var tree *schema.ObjectNode
//	tree = schema.Object().
//	    Field("value", schema.String()).
//	    Field("children", schema.Array(schema.Lazy(func() schema.Node { return tree })))
func Lazy(get func() Node) *LazyNode { return &LazyNode{base: newBase(), get: get} }

func (*LazyNode) Kind() Kind { return KindLazy }

// Resolve returns the target node, or nil when the getter yields nothing.
func (l *LazyNode) Resolve() Node {
	l.once.Do(func() {
		if l.get != nil {
			l.target = l.get()
		}
	})
	return l.target
}

func (l *LazyNode) Describe(d string) *LazyNode { l.desc = d; return l }
