package strictskema

import (
	"github.com/reoring/strictskema/internal/reach"
	"github.com/reoring/strictskema/schema"
)

// DefaultMaxDepth is the reachability depth ceiling used when Options.MaxDepth
// is zero. Nodes nested deeper are not counted, which can only cause a shared
// object to be inlined instead of hoisted; cycles are still cut.
const DefaultMaxDepth = reach.DefaultMaxDepth

// Definition pins the definition name of one object node. Matching is by node
// identity, not by shape.
type Definition struct {
	Name   string
	Schema schema.Node
}

// Options bundles conversion options. The zero value is ready to use.
type Options struct {
	// Definitions pins names for specific nodes; the first pin of a name or of
	// a node wins. Nodes that are not pinned get Def_1, Def_2, ... in the
	// order they are first hoisted.
	Definitions []Definition
	// MaxDepth bounds the reachability pre-pass (0 means DefaultMaxDepth).
	MaxDepth int
}
