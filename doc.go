package strictskema

// Package strictskema provides:
//
// - Conversion of typed schema trees (package schema) into the strict JSON
//   Schema subset accepted by structured-output APIs
// - Hoisting of shared and self-referential objects into $defs with stable names
// - A stable error model via Issues (JSON Pointer, code, message)
//
// Strict output has no optional properties, no numeric or length bounds and no
// open objects. Every property is listed in required, additionalProperties is
// false, and nullable properties become anyOf [T, null]. Constructs without a
// strict form (optional/default properties, any, never, intersection, tuple,
// record) fail the conversion instead of degrading silently.
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place the node model under schema/, the output document under jsonschema/,
//   the YAML/JSON loader under schemafile/, and the CLI under cmd/strictskema.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  var node *schema.ObjectNode
//  node = schema.Object().
//      Field("value", schema.String()).
//      Field("children", schema.Array(schema.Lazy(func() schema.Node { return node })))
//
//  out, err := strictskema.Convert(node, strictskema.Options{
//      Definitions: []strictskema.Definition{{Name: "Node", Schema: node}},
//  })
//  b, err := strictskema.ConvertJSON(node)
//
