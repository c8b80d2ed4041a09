// Package reach counts how often each schema node is reached from a root.
// This package is internal and not part of the public API.
package reach

import "github.com/reoring/strictskema/schema"

// DefaultMaxDepth bounds traversal of pathological trees. Nodes deeper than
// the ceiling are simply not counted.
const DefaultMaxDepth = 1000

// Map records, per node identity, how many times the node was reached. The
// root counts as reached once.
//
// An object's body is emitted once however often the object is referenced,
// so the walk descends into an object only on its first visit. Every other
// node is inlined at each site and is therefore descended on every visit,
// unless it is already being walked since the last object entered. Such a
// cycle has no finite shape and is rejected by the converter.
type Map map[schema.ID]int

// Get returns the count for n (0 when n was never reached).
func (m Map) Get(n schema.Node) int { return m[n.ID()] }

// Shared reports whether n was reached more than once.
func (m Map) Shared(n schema.Node) bool { return m.Get(n) > 1 }

// Count walks the tree under root. It never fails: nodes that cannot be
// converted later are counted like any other. A maxDepth <= 0 selects
// DefaultMaxDepth.
func Count(root schema.Node, maxDepth int) Map {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	m := Map{}
	if root == nil {
		return m
	}
	// non-object nodes on the walk path since the innermost object
	path := map[schema.ID]bool{}
	var walk func(n schema.Node, depth int)
	walk = func(n schema.Node, depth int) {
		if n == nil || depth > maxDepth {
			return
		}
		id := n.ID()
		m[id]++
		if n.Kind() == schema.KindObject {
			if m[id] > 1 {
				return
			}
			saved := path
			path = map[schema.ID]bool{}
			defer func() { path = saved }()
		} else {
			if path[id] {
				return
			}
			path[id] = true
			defer delete(path, id)
		}
		for _, c := range schema.Children(n) {
			walk(c, depth+1)
		}
	}
	walk(root, 0)
	return m
}
