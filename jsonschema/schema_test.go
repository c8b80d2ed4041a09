package jsonschema_test

import (
	"reflect"
	"testing"

	json "github.com/goccy/go-json"

	js "github.com/reoring/strictskema/jsonschema"
)

func sample() *js.Schema {
	props := js.NewMap()
	props.Set("zeta", &js.Schema{Type: "string", Description: "last letter"})
	props.Set("alpha", &js.Schema{AnyOf: []*js.Schema{js.Ref("Item"), {Type: "null"}}})
	props.Set("list", &js.Schema{Type: "array", Items: &js.Schema{Type: "number", Enum: []any{1.5}}})
	defs := js.NewMap()
	defs.Set("Item", &js.Schema{Type: "object", AdditionalProperties: false})
	return &js.Schema{
		Type:                 "object",
		Properties:           props,
		Required:             []string{"zeta", "alpha", "list"},
		AdditionalProperties: false,
		Defs:                 defs,
	}
}

func TestSchema_MarshalKeyOrder(t *testing.T) {
	b, err := json.Marshal(sample())
	if err != nil {
		t.Fatalf("marshal err: %v", err)
	}
	want := `{"type":"object","properties":{` +
		`"zeta":{"type":"string","description":"last letter"},` +
		`"alpha":{"anyOf":[{"$ref":"#/$defs/Item"},{"type":"null"}]},` +
		`"list":{"type":"array","items":{"type":"number","enum":[1.5]}}},` +
		`"required":["zeta","alpha","list"],"additionalProperties":false,` +
		`"$defs":{"Item":{"type":"object","properties":{},"required":[],"additionalProperties":false}}}`
	if string(b) != want {
		t.Fatalf("got  %s\nwant %s", b, want)
	}
}

func TestSchema_RoundTripPreservesOrder(t *testing.T) {
	b, err := json.Marshal(sample())
	if err != nil {
		t.Fatalf("marshal err: %v", err)
	}
	var back js.Schema
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if !reflect.DeepEqual(back.Properties.Keys(), []string{"zeta", "alpha", "list"}) {
		t.Fatalf("property order lost: %v", back.Properties.Keys())
	}
	b2, err := json.Marshal(&back)
	if err != nil {
		t.Fatalf("marshal err: %v", err)
	}
	if string(b) != string(b2) {
		t.Fatalf("round trip changed output\n got=%s\nwant=%s", b2, b)
	}
}

func TestSchema_RefHelpers(t *testing.T) {
	r := js.Ref("Node")
	if r.Ref != "#/$defs/Node" || !r.IsPureRef() {
		t.Fatalf("unexpected ref: %+v", r)
	}
	if name, ok := r.RefName(); !ok || name != "Node" {
		t.Fatalf("RefName = %q, %v", name, ok)
	}
	r.Description = "x"
	if r.IsPureRef() {
		t.Fatalf("described reference is not pure")
	}
	if _, ok := (&js.Schema{Ref: "#/definitions/X"}).RefName(); ok {
		t.Fatalf("only $defs references are recognized")
	}
}

func TestSchema_CloneIsDeep(t *testing.T) {
	orig := sample()
	c := orig.Clone()
	c.Required[0] = "changed"
	p, _ := c.Properties.Get("zeta")
	p.Type = "number"
	c.Defs.Delete("Item")
	if orig.Required[0] != "zeta" {
		t.Fatalf("required aliased")
	}
	if p0, _ := orig.Properties.Get("zeta"); p0.Type != "string" {
		t.Fatalf("properties aliased")
	}
	if orig.Defs.Len() != 1 {
		t.Fatalf("defs aliased")
	}
}

func TestSchema_Refs(t *testing.T) {
	var got []string
	sample().Refs(func(name string) { got = append(got, name) })
	if !reflect.DeepEqual(got, []string{"Item"}) {
		t.Fatalf("refs = %v", got)
	}
}

func TestMap_SetReplaceDelete(t *testing.T) {
	m := js.NewMap()
	m.Set("a", &js.Schema{Type: "string"})
	m.Set("b", &js.Schema{Type: "number"})
	m.Set("a", &js.Schema{Type: "boolean"})
	if !reflect.DeepEqual(m.Keys(), []string{"a", "b"}) {
		t.Fatalf("keys = %v", m.Keys())
	}
	if s, _ := m.Get("a"); s.Type != "boolean" {
		t.Fatalf("replace failed")
	}
	m.Delete("a")
	m.Delete("missing")
	if !reflect.DeepEqual(m.Keys(), []string{"b"}) || m.Len() != 1 {
		t.Fatalf("keys after delete = %v", m.Keys())
	}
	var nilMap *js.Map
	if nilMap.Len() != 0 || nilMap.Keys() != nil {
		t.Fatalf("nil map should be empty")
	}
}
