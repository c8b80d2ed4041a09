// Package defs owns definition names and hoisted bodies for one conversion.
// This package is internal and not part of the public API.
package defs

import (
	"strconv"

	js "github.com/reoring/strictskema/jsonschema"
	"github.com/reoring/strictskema/schema"
)

// Pin fixes the definition name of one node.
type Pin struct {
	Name string
	Node schema.Node
}

type entry struct {
	name string
	node schema.Node
	body *js.Schema
}

// Registry assigns stable names to hoisted nodes and accumulates their bodies.
// A Registry belongs to a single conversion and is not safe for concurrent use.
type Registry struct {
	pinned  map[schema.ID]string
	taken   map[string]bool
	byID    map[schema.ID]*entry
	order   []*entry
	counter int
}

// New returns a registry honoring pins. When a node or a name is pinned more
// than once the first pin wins.
func New(pins []Pin) *Registry {
	r := &Registry{
		pinned: map[schema.ID]string{},
		taken:  map[string]bool{},
		byID:   map[schema.ID]*entry{},
	}
	for _, p := range pins {
		if p.Node == nil || p.Name == "" || r.taken[p.Name] {
			continue
		}
		if _, ok := r.pinned[p.Node.ID()]; ok {
			continue
		}
		r.pinned[p.Node.ID()] = p.Name
		r.taken[p.Name] = true
	}
	return r
}

// NameFor returns the definition name of n, registering n on first use.
func (r *Registry) NameFor(n schema.Node) string {
	if e, ok := r.byID[n.ID()]; ok {
		return e.name
	}
	name, ok := r.pinned[n.ID()]
	if !ok {
		name = r.nextName()
	}
	e := &entry{name: name, node: n}
	r.byID[n.ID()] = e
	r.order = append(r.order, e)
	return name
}

func (r *Registry) nextName() string {
	for {
		r.counter++
		name := "Def_" + strconv.Itoa(r.counter)
		if !r.taken[name] {
			r.taken[name] = true
			return name
		}
	}
}

// Record stores the lowered body of n. The first body recorded wins; nodes
// that were never named are registered first.
func (r *Registry) Record(n schema.Node, body *js.Schema) {
	r.NameFor(n)
	e := r.byID[n.ID()]
	if e.body != nil {
		return
	}
	e.body = body
}

// Pending returns registered nodes without a body, in registration order.
func (r *Registry) Pending() []schema.Node {
	var out []schema.Node
	for _, e := range r.order {
		if e.body == nil {
			out = append(out, e.node)
		}
	}
	return out
}

// Materialize returns the name -> body table in registration order. Entries
// whose body has not been recorded are left out.
func (r *Registry) Materialize() *js.Map {
	out := js.NewMap()
	for _, e := range r.order {
		if e.body != nil {
			out.Set(e.name, e.body)
		}
	}
	return out
}
