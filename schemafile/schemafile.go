// Package schemafile loads schema trees from YAML or JSON documents.
//
// A document is either a single node or a wrapper naming shared definitions:
//
//	definitions:
//	  Category:
//	    type: object
//	    properties:
//	      name: {type: string}
//	      parent: {$ref: Category, nullable: true}
//	root:
//	  type: object
//	  properties:
//	    primary: {$ref: Category}
//	    secondary: {$ref: Category}
//
// Every definition is built exactly once, and each $ref resolves lazily to
// that single node, so references share identity and may form cycles.
// Property order follows the document.
package schemafile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reoring/strictskema"
	"github.com/reoring/strictskema/schema"
)

// Document is a loaded schema tree together with its named definitions in
// document order. Definitions can be passed as strictskema.Options.Definitions
// to keep the document's names in the output.
type Document struct {
	Root        schema.Node
	Definitions []strictskema.Definition
}

// LoadFile reads and loads the document at path.
func LoadFile(path string, opts Options) (*Document, Diag, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &simpleDiag{}, fmt.Errorf("schemafile: %w", err)
	}
	return Load(data, opts)
}

// Load parses a YAML (or JSON) document into a schema tree.
func Load(data []byte, opts Options) (*Document, Diag, error) {
	d := &simpleDiag{}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, d, fmt.Errorf("schemafile: invalid document: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, d, errors.New("schemafile: empty document")
	}
	top := resolveAlias(doc.Content[0])
	l := &loader{
		opts:     opts,
		d:        d,
		raw:      map[string]*yaml.Node{},
		built:    map[string]schema.Node{},
		building: map[string]bool{},
	}

	rootNode := top
	if top.Kind == yaml.MappingNode {
		entries := mappingEntries(top)
		defsNode, hasDefs := lookupAny(entries, "definitions", "$defs")
		rn, hasRoot := lookupAny(entries, "root")
		if hasDefs || hasRoot {
			for _, e := range entries {
				switch e.key {
				case "definitions", "$defs", "root":
				default:
					if err := l.unknown("/"+e.key, e.value); err != nil {
						return nil, d, err
					}
				}
			}
			if hasDefs {
				if err := l.index(defsNode); err != nil {
					return nil, d, err
				}
			}
			if !hasRoot {
				return nil, d, errors.New("schemafile: document has definitions but no root")
			}
			rootNode = rn
		}
	}

	out := &Document{}
	for _, name := range l.order {
		n, err := l.def(name)
		if err != nil {
			return nil, d, err
		}
		out.Definitions = append(out.Definitions, strictskema.Definition{Name: name, Schema: n})
	}
	root, err := l.node(rootNode, "/root")
	if err != nil {
		return nil, d, err
	}
	out.Root = root
	return out, d, nil
}

type entry struct {
	key   string
	value *yaml.Node
}

func mappingEntries(n *yaml.Node) []entry {
	out := make([]entry, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		out = append(out, entry{key: n.Content[i].Value, value: resolveAlias(n.Content[i+1])})
	}
	return out
}

func lookupAny(entries []entry, keys ...string) (*yaml.Node, bool) {
	for _, e := range entries {
		for _, k := range keys {
			if e.key == k {
				return e.value, true
			}
		}
	}
	return nil, false
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// refName accepts "Name", "#/$defs/Name" and "#/definitions/Name".
func refName(ref string) string {
	for _, p := range []string{"#/$defs/", "#/definitions/"} {
		if strings.HasPrefix(ref, p) {
			return strings.TrimPrefix(ref, p)
		}
	}
	return ref
}
