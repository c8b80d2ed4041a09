package strictskema

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/reoring/strictskema/internal/defs"
	"github.com/reoring/strictskema/internal/reach"
	js "github.com/reoring/strictskema/jsonschema"
	"github.com/reoring/strictskema/schema"
)

// converter holds the call-scoped state of one conversion.
type converter struct {
	counts reach.Map
	reg    *defs.Registry
	// objects on the active lowering stack; an object met again while it is
	// still being lowered must become a reference.
	active map[schema.ID]bool
	// lazy nodes resolved since the innermost enclosing object
	lazies map[schema.ID]bool
}

func newConverter(root schema.Node, opt Options) *converter {
	pins := make([]defs.Pin, 0, len(opt.Definitions))
	for _, d := range opt.Definitions {
		pins = append(pins, defs.Pin{Name: d.Name, Node: d.Schema})
	}
	return &converter{
		counts: reach.Count(root, opt.MaxDepth),
		reg:    defs.New(pins),
		active: map[schema.ID]bool{},
		lazies: map[schema.ID]bool{},
	}
}

// run converts root, materializes hoisted definitions and rewrites a root
// that would otherwise be a bare reference.
func (c *converter) run(root schema.Node) (*js.Schema, error) {
	out, err := c.convert(root, true, rootPath())
	if err != nil {
		return nil, err
	}
	// bodies may register further definitions; loop until none are pending
	for {
		pending := c.reg.Pending()
		if len(pending) == 0 {
			break
		}
		for _, n := range pending {
			name := c.reg.NameFor(n)
			body, err := c.lower(n, false, rootPath().Field("$defs").Field(name))
			if err != nil {
				return nil, err
			}
			c.reg.Record(n, body)
		}
	}
	table := c.reg.Materialize()
	out = dereferenceRoot(out, table)
	if table.Len() > 0 {
		out.Defs = table
	}
	return out, nil
}

// convert decides between a reference and inline lowering.
func (c *converter) convert(n schema.Node, isRoot bool, p pathRef) (*js.Schema, error) {
	if obj, ok := n.(*schema.ObjectNode); ok && !isRoot {
		if c.counts.Shared(obj) || c.active[obj.ID()] {
			return js.Ref(c.reg.NameFor(obj)), nil
		}
	}
	return c.lower(n, isRoot, p)
}

// lower emits the inline shape of n.
func (c *converter) lower(n schema.Node, isRoot bool, p pathRef) (*js.Schema, error) {
	var (
		out *js.Schema
		err error
	)
	switch t := n.(type) {
	case *schema.StringNode:
		out = &js.Schema{Type: "string"}
	case *schema.NumberNode:
		if t.IsInt() {
			out = &js.Schema{Type: "integer"}
		} else {
			out = &js.Schema{Type: "number"}
		}
	case *schema.BigIntNode:
		out = &js.Schema{Type: "integer"}
	case *schema.BoolNode:
		out = &js.Schema{Type: "boolean"}
	case *schema.NullNode:
		out = &js.Schema{Type: "null"}
	case *schema.LiteralNode:
		out = literalSchema(t.Value())
	case *schema.ObjectNode:
		out, err = c.lowerObject(t, p)
	case *schema.ArrayNode:
		var items *js.Schema
		if items, err = c.convert(t.Elem(), false, p.Field("items")); err == nil {
			out = &js.Schema{Type: "array", Items: items}
		}
	case *schema.UnionNode:
		out, err = c.anyOf(t.Options(), p)
	case *schema.DiscriminatedUnionNode:
		opts := t.Options()
		nodes := make([]schema.Node, len(opts))
		for i, o := range opts {
			nodes[i] = o
		}
		out, err = c.anyOf(nodes, p)
	case *schema.LazyNode:
		out, err = c.lowerLazy(t, isRoot, p)
	case *schema.NullableNode:
		out, err = c.convert(t.Inner(), isRoot, p)
	case *schema.OptionalNode:
		out, err = c.convert(t.Inner(), isRoot, p)
	case *schema.DefaultNode:
		out, err = c.convert(t.Inner(), isRoot, p)
	default:
		return nil, unsupportedVariantIssue(p.Pointer(), variantName(n))
	}
	if err != nil {
		return nil, err
	}
	if d := n.Description(); d != "" && !out.IsPureRef() {
		out.Description = d
	}
	return out, nil
}

func (c *converter) lowerObject(o *schema.ObjectNode, p pathRef) (*js.Schema, error) {
	c.active[o.ID()] = true
	saved := c.lazies
	c.lazies = map[schema.ID]bool{}
	defer func() {
		delete(c.active, o.ID())
		c.lazies = saved
	}()

	fields := o.Fields()
	props := js.NewMap()
	required := make([]string, 0, len(fields))
	for _, f := range fields {
		fp := p.Field("properties").Field(f.Name)
		inner, nullable, desc, err := propertyPresence(f.Name, f.Node, fp)
		if err != nil {
			return nil, err
		}
		var ps *js.Schema
		if nullable {
			base, err := c.convert(inner, false, fp.Field("anyOf").Index(0))
			if err != nil {
				return nil, err
			}
			ps = &js.Schema{AnyOf: []*js.Schema{base, {Type: "null"}}, Description: desc}
		} else if ps, err = c.convert(f.Node, false, fp); err != nil {
			return nil, err
		}
		props.Set(f.Name, ps)
		required = append(required, f.Name)
	}
	return &js.Schema{
		Type:                 "object",
		Properties:           props,
		Required:             required,
		AdditionalProperties: false,
	}, nil
}

// propertyPresence inspects the wrappers around a property node. Optional
// and defaulted properties are rejected even when also nullable. For a
// nullable property it returns the node beneath the nullable layers and the
// outermost description carried by those layers.
func propertyPresence(name string, n schema.Node, p pathRef) (inner schema.Node, nullable bool, desc string, err error) {
	seen := map[schema.ID]bool{}
	cur := n
	for {
		switch t := cur.(type) {
		case *schema.OptionalNode:
			return nil, false, "", optionalPropertyIssue(p.Pointer(), name, "optional")
		case *schema.DefaultNode:
			return nil, false, "", optionalPropertyIssue(p.Pointer(), name, "default")
		case *schema.NullableNode:
			nullable = true
			if desc == "" {
				desc = t.Description()
			}
			cur = t.Inner()
			continue
		case *schema.LazyNode:
			if r := t.Resolve(); r != nil && !seen[t.ID()] {
				seen[t.ID()] = true
				if desc == "" {
					desc = t.Description()
				}
				cur = r
				continue
			}
		}
		return cur, nullable, desc, nil
	}
}

func (c *converter) anyOf(options []schema.Node, p pathRef) (*js.Schema, error) {
	out := &js.Schema{AnyOf: make([]*js.Schema, 0, len(options))}
	for i, o := range options {
		s, err := c.convert(o, false, p.Field("anyOf").Index(i))
		if err != nil {
			return nil, err
		}
		out.AnyOf = append(out.AnyOf, s)
	}
	return out, nil
}

// lowerLazy converts the target with the caller's root flag. A lazy node
// that leads back to itself without passing an object has no finite shape.
func (c *converter) lowerLazy(l *schema.LazyNode, isRoot bool, p pathRef) (*js.Schema, error) {
	target := l.Resolve()
	if target == nil || c.lazies[l.ID()] {
		iss := unsupportedVariantIssue(p.Pointer(), schema.KindLazy.String())
		iss[0].Hint = "lazy reference must resolve to a schema that reaches an object"
		return nil, iss
	}
	c.lazies[l.ID()] = true
	defer delete(c.lazies, l.ID())
	return c.convert(target, isRoot, p)
}

func literalSchema(v any) *js.Schema {
	if n, ok := v.(json.Number); ok {
		return &js.Schema{Type: "number", Enum: []any{n}}
	}
	if v != nil {
		switch reflect.ValueOf(v).Kind() {
		case reflect.String:
			return &js.Schema{Type: "string", Enum: []any{v}}
		case reflect.Bool:
			return &js.Schema{Type: "boolean", Enum: []any{v}}
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return &js.Schema{Type: "number", Enum: []any{v}}
		}
	}
	// null and every other value kind travel as their textual form
	text := "null"
	if v != nil {
		text = fmt.Sprint(v)
	}
	return &js.Schema{Type: "string", Enum: []any{text}}
}

func variantName(n schema.Node) string {
	if n == nil {
		return schema.KindUnknown.String()
	}
	return n.Kind().String()
}

// dereferenceRoot replaces a root that is only a reference with a copy of the
// referenced body. The definition is dropped when nothing else points to it.
func dereferenceRoot(root *js.Schema, table *js.Map) *js.Schema {
	if !root.IsPureRef() {
		return root
	}
	name, ok := root.RefName()
	if !ok {
		return root
	}
	body, ok := table.Get(name)
	if !ok {
		return root
	}
	out := body.Clone()
	out.Ref = ""
	used := false
	check := func(n string) {
		if n == name {
			used = true
		}
	}
	out.Refs(check)
	table.Each(func(k string, s *js.Schema) {
		if k != name {
			s.Refs(check)
		}
	})
	if !used {
		table.Delete(name)
	}
	return out
}
