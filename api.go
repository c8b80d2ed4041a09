package strictskema

import (
	json "github.com/goccy/go-json"

	js "github.com/reoring/strictskema/jsonschema"
	"github.com/reoring/strictskema/schema"
)

// Convert lowers the schema tree under root into strict JSON Schema.
//
// Object nodes reached more than once (and not the root) are hoisted into
// $defs and referenced by name; everything else is inlined. Every property is
// required and additionalProperties is false. Optional or defaulted
// properties and unsupported variants fail the whole call with Issues; no
// partial document is returned.
//
// Convert never mutates root. All state lives for one call, so concurrent
// calls are safe, including over shared subtrees.
func Convert(root schema.Node, opts ...Options) (*js.Schema, error) {
	var opt Options
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.MaxDepth <= 0 {
		opt.MaxDepth = DefaultMaxDepth
	}
	return newConverter(root, opt).run(root)
}

// MustConvert is like Convert but panics on error.
func MustConvert(root schema.Node, opts ...Options) *js.Schema {
	s, err := Convert(root, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// ConvertJSON converts root and encodes the result. Output is byte-stable for
// the same tree and options.
func ConvertJSON(root schema.Node, opts ...Options) ([]byte, error) {
	s, err := Convert(root, opts...)
	if err != nil {
		return nil, err
	}
	return json.Marshal(s)
}
