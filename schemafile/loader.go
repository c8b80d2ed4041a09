package schemafile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/reoring/strictskema/schema"
)

type loader struct {
	opts     Options
	d        *simpleDiag
	raw      map[string]*yaml.Node
	order    []string
	built    map[string]schema.Node
	building map[string]bool
}

var knownKeys = map[string]bool{
	"type": true, "description": true, "properties": true, "items": true,
	"anyOf": true, "oneOf": true, "discriminator": true, "allOf": true,
	"prefixItems": true, "additionalProperties": true, "const": true,
	"enum": true, "nullable": true, "optional": true, "default": true,
	"$ref": true,
}

func (l *loader) errorf(n *yaml.Node, path, f string, a ...any) error {
	return fmt.Errorf("schemafile: %s (line %d): %s", path, n.Line, fmt.Sprintf(f, a...))
}

func (l *loader) unknown(path string, n *yaml.Node) error {
	if l.opts.Strict {
		return l.errorf(n, path, "unknown key")
	}
	l.d.warnf("%s: unknown key ignored (line %d)", path, n.Line)
	return nil
}

// index records raw definitions in document order.
func (l *loader) index(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return l.errorf(n, "/definitions", "expected mapping")
	}
	for _, e := range mappingEntries(n) {
		if _, dup := l.raw[e.key]; dup {
			return l.errorf(e.value, "/definitions/"+e.key, "duplicate definition")
		}
		l.raw[e.key] = e.value
		l.order = append(l.order, e.key)
	}
	return nil
}

// def builds the named definition once.
func (l *loader) def(name string) (schema.Node, error) {
	if n, ok := l.built[name]; ok {
		return n, nil
	}
	raw, ok := l.raw[name]
	if !ok {
		return nil, fmt.Errorf("schemafile: unknown definition %q", name)
	}
	if l.building[name] {
		return nil, l.errorf(raw, "/definitions/"+name, "definition refers to itself without indirection")
	}
	l.building[name] = true
	defer delete(l.building, name)
	n, err := l.node(raw, "/definitions/"+name)
	if err != nil {
		return nil, err
	}
	l.built[name] = n
	return n, nil
}

// ref returns a fresh lazy node resolving to the named definition.
func (l *loader) ref(n *yaml.Node, path, ref string) (schema.Node, error) {
	name := refName(ref)
	if _, ok := l.raw[name]; !ok {
		return nil, l.errorf(n, path, "$ref to unknown definition %q", name)
	}
	return schema.Lazy(func() schema.Node { return l.built[name] }), nil
}

func (l *loader) node(n *yaml.Node, path string) (schema.Node, error) {
	n = resolveAlias(n)
	if n == nil {
		return nil, fmt.Errorf("schemafile: %s: missing schema", path)
	}
	if n.Kind == yaml.ScalarNode {
		// shorthand: "string" == {type: string}
		return l.typed(n, path, n.Value, nil)
	}
	if n.Kind != yaml.MappingNode {
		return nil, l.errorf(n, path, "expected mapping")
	}
	entries := mappingEntries(n)
	fields := make(map[string]*yaml.Node, len(entries))
	for _, e := range entries {
		if !knownKeys[e.key] {
			if err := l.unknown(path+"/"+e.key, e.value); err != nil {
				return nil, err
			}
			continue
		}
		fields[e.key] = e.value
	}

	out, err := l.base(n, path, fields)
	if err != nil {
		return nil, err
	}
	if v, ok := fields["description"]; ok {
		schema.WithDescription(out, v.Value)
	}
	if v, ok := fields["nullable"]; ok && isTrue(v) {
		out = schema.Nullable(out)
	}
	if v, ok := fields["default"]; ok {
		var dv any
		if err := v.Decode(&dv); err != nil {
			return nil, l.errorf(v, path+"/default", "%v", err)
		}
		out = schema.Default(out, dv)
	}
	if v, ok := fields["optional"]; ok && isTrue(v) {
		out = schema.Optional(out)
	}
	return out, nil
}

func isTrue(n *yaml.Node) bool {
	var b bool
	return n.Decode(&b) == nil && b
}

// base builds the node before wrappers are applied.
func (l *loader) base(n *yaml.Node, path string, f map[string]*yaml.Node) (schema.Node, error) {
	if v, ok := f["$ref"]; ok {
		return l.ref(v, path+"/$ref", v.Value)
	}
	if v, ok := f["const"]; ok {
		var c any
		if err := v.Decode(&c); err != nil {
			return nil, l.errorf(v, path+"/const", "%v", err)
		}
		return schema.Literal(c), nil
	}
	if v, ok := f["enum"]; ok {
		return l.enum(v, path+"/enum")
	}
	if v, ok := f["anyOf"]; ok {
		opts, err := l.list(v, path+"/anyOf")
		if err != nil {
			return nil, err
		}
		return schema.Union(opts...), nil
	}
	if v, ok := f["oneOf"]; ok {
		return l.oneOf(v, path, f["discriminator"])
	}
	if v, ok := f["allOf"]; ok {
		parts, err := l.list(v, path+"/allOf")
		if err != nil {
			return nil, err
		}
		if len(parts) == 0 {
			return nil, l.errorf(v, path+"/allOf", "empty allOf")
		}
		out := parts[0]
		for _, p := range parts[1:] {
			out = schema.Intersection(out, p)
		}
		return out, nil
	}
	if v, ok := f["prefixItems"]; ok {
		items, err := l.list(v, path+"/prefixItems")
		if err != nil {
			return nil, err
		}
		return schema.Tuple(items...), nil
	}

	t, hasType := f["type"]
	switch {
	case hasType && t.Kind == yaml.SequenceNode:
		opts := make([]schema.Node, 0, len(t.Content))
		for i, c := range t.Content {
			o, err := l.typed(c, fmt.Sprintf("%s/type/%d", path, i), c.Value, f)
			if err != nil {
				return nil, err
			}
			opts = append(opts, o)
		}
		return schema.Union(opts...), nil
	case hasType:
		return l.typed(t, path, t.Value, f)
	case f["properties"] != nil || f["additionalProperties"] != nil:
		return l.typed(n, path, "object", f)
	case f["items"] != nil:
		return l.typed(n, path, "array", f)
	}
	return schema.Any(), nil
}

func (l *loader) typed(n *yaml.Node, path, typ string, f map[string]*yaml.Node) (schema.Node, error) {
	switch typ {
	case "string":
		return schema.String(), nil
	case "number":
		return schema.Number(), nil
	case "integer":
		return schema.Int(), nil
	case "bigint":
		return schema.BigInt(), nil
	case "boolean":
		return schema.Bool(), nil
	case "null":
		return schema.Null(), nil
	case "any":
		return schema.Any(), nil
	case "never":
		return schema.Never(), nil
	case "object":
		return l.object(n, path, f)
	case "array":
		items, ok := f["items"]
		if !ok {
			return nil, l.errorf(n, path, "array requires items")
		}
		elem, err := l.node(items, path+"/items")
		if err != nil {
			return nil, err
		}
		return schema.Array(elem), nil
	}
	return nil, l.errorf(n, path+"/type", "unknown type %q", typ)
}

func (l *loader) object(n *yaml.Node, path string, f map[string]*yaml.Node) (schema.Node, error) {
	props, hasProps := f["properties"]
	if ap, ok := f["additionalProperties"]; ok && ap.Kind == yaml.MappingNode {
		if hasProps {
			return nil, l.errorf(ap, path+"/additionalProperties", "properties cannot be combined with an additionalProperties schema")
		}
		val, err := l.node(ap, path+"/additionalProperties")
		if err != nil {
			return nil, err
		}
		return schema.Record(val), nil
	} else if ok && isTrue(ap) {
		l.d.warnf("%s/additionalProperties: open objects are not representable; treated as closed (line %d)", path, ap.Line)
	}
	obj := schema.Object()
	if !hasProps {
		return obj, nil
	}
	if props.Kind != yaml.MappingNode {
		return nil, l.errorf(props, path+"/properties", "expected mapping")
	}
	for _, e := range mappingEntries(props) {
		c, err := l.node(e.value, path+"/properties/"+e.key)
		if err != nil {
			return nil, err
		}
		obj.Field(e.key, c)
	}
	return obj, nil
}

func (l *loader) list(n *yaml.Node, path string) ([]schema.Node, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, l.errorf(n, path, "expected sequence")
	}
	out := make([]schema.Node, 0, len(n.Content))
	for i, c := range n.Content {
		s, err := l.node(c, fmt.Sprintf("%s/%d", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (l *loader) enum(n *yaml.Node, path string) (schema.Node, error) {
	var vals []any
	if err := n.Decode(&vals); err != nil {
		return nil, l.errorf(n, path, "expected sequence of values")
	}
	if len(vals) == 0 {
		return nil, l.errorf(n, path, "empty enum")
	}
	if len(vals) == 1 {
		return schema.Literal(vals[0]), nil
	}
	opts := make([]schema.Node, len(vals))
	for i, v := range vals {
		opts[i] = schema.Literal(v)
	}
	return schema.Union(opts...), nil
}

// oneOf builds a discriminated union when a discriminator is named and a
// plain union otherwise. Variants must be objects, given inline or by $ref.
func (l *loader) oneOf(n *yaml.Node, path string, disc *yaml.Node) (schema.Node, error) {
	if disc == nil {
		opts, err := l.list(n, path+"/oneOf")
		if err != nil {
			return nil, err
		}
		return schema.Union(opts...), nil
	}
	key := disc.Value
	if disc.Kind == yaml.MappingNode {
		// OpenAPI style: {propertyName: kind}
		pn, _ := lookupAny(mappingEntries(disc), "propertyName")
		if pn == nil {
			return nil, l.errorf(disc, path+"/discriminator", "missing propertyName")
		}
		key = pn.Value
	}
	if n.Kind != yaml.SequenceNode {
		return nil, l.errorf(n, path+"/oneOf", "expected sequence")
	}
	variants := make([]*schema.ObjectNode, 0, len(n.Content))
	for i, c := range n.Content {
		vp := fmt.Sprintf("%s/oneOf/%d", path, i)
		var (
			v   schema.Node
			err error
		)
		if r, ok := lookupAny(mappingEntries(resolveAlias(c)), "$ref"); ok {
			v, err = l.def(refName(r.Value))
		} else {
			v, err = l.node(c, vp)
		}
		if err != nil {
			return nil, err
		}
		obj, ok := v.(*schema.ObjectNode)
		if !ok {
			return nil, l.errorf(c, vp, "discriminated union variant must be an object, got %s", v.Kind())
		}
		if _, ok := obj.Lookup(key); !ok {
			return nil, l.errorf(c, vp, "variant lacks discriminator property %q", key)
		}
		variants = append(variants, obj)
	}
	return schema.DiscriminatedUnion(key, variants...), nil
}
