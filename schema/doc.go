// Package schema describes typed schema trees consumed by strictskema.
//
// A tree is built from constructors that mirror the familiar Zod vocabulary:
//
//	user := schema.Object().
//	    Field("id", schema.String()).
//	    Field("age", schema.Int()).
//	    Field("nickname", schema.Nullable(schema.String())).
//	    Describe("a registered user")
//
// Every node carries an ID assigned at construction. Identity, not shape,
// decides whether two occurrences are the same node: reusing one *ObjectNode
// in two places is sharing, building two equal objects is not.
//
// Nodes are immutable once they are handed to a converter. Builder methods
// (Field, Describe, Int) mutate the receiver and are meant for construction
// time only.
package schema
