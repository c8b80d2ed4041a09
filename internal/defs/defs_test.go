package defs

import (
	"reflect"
	"testing"

	js "github.com/reoring/strictskema/jsonschema"
	"github.com/reoring/strictskema/schema"
)

func TestRegistry_AutoNamesInFirstEncounterOrder(t *testing.T) {
	a, b := schema.Object(), schema.Object()
	r := New(nil)
	if got := r.NameFor(a); got != "Def_1" {
		t.Fatalf("a = %s", got)
	}
	if got := r.NameFor(b); got != "Def_2" {
		t.Fatalf("b = %s", got)
	}
	if got := r.NameFor(a); got != "Def_1" {
		t.Fatalf("name must be stable, got %s", got)
	}
	if p := r.Pending(); len(p) != 2 || p[0] != a || p[1] != b {
		t.Fatalf("pending = %v", p)
	}
}

func TestRegistry_PinsByIdentity(t *testing.T) {
	a := schema.Object().Field("x", schema.String())
	twin := schema.Object().Field("x", schema.String())
	r := New([]Pin{
		{Name: "Thing", Node: a},
		{Name: "Thing", Node: twin}, // duplicate name: ignored
		{Name: "Other", Node: a},    // duplicate node: ignored
		{Name: "", Node: twin},
		{Name: "Nil", Node: nil},
	})
	if got := r.NameFor(twin); got != "Def_1" {
		t.Fatalf("twin = %s", got)
	}
	if got := r.NameFor(a); got != "Thing" {
		t.Fatalf("a = %s", got)
	}
}

func TestRegistry_AutoNamesSkipPinnedNames(t *testing.T) {
	a, b := schema.Object(), schema.Object()
	r := New([]Pin{{Name: "Def_1", Node: b}})
	if got := r.NameFor(a); got != "Def_2" {
		t.Fatalf("a = %s", got)
	}
}

func TestRegistry_RecordFirstWriterWins(t *testing.T) {
	a, b := schema.Object(), schema.Object()
	r := New(nil)
	r.NameFor(a)
	r.NameFor(b)
	if got := r.Pending(); len(got) != 2 || got[0] != schema.Node(a) {
		t.Fatalf("pending = %v", got)
	}
	first := &js.Schema{Type: "object"}
	r.Record(a, first)
	r.Record(a, &js.Schema{Type: "string"})
	if got := r.Pending(); len(got) != 1 || got[0] != schema.Node(b) {
		t.Fatalf("pending after record = %v", got)
	}
	m := r.Materialize()
	if !reflect.DeepEqual(m.Keys(), []string{"Def_1"}) {
		t.Fatalf("keys = %v", m.Keys())
	}
	if s, _ := m.Get("Def_1"); s != first {
		t.Fatalf("later record must not replace the first body")
	}
}

func TestRegistry_RecordRegistersUnknownNode(t *testing.T) {
	a := schema.Object()
	r := New(nil)
	r.Record(a, &js.Schema{Type: "object"})
	if r.NameFor(a) != "Def_1" || len(r.Pending()) != 0 || r.Materialize().Len() != 1 {
		t.Fatalf("record should register the node")
	}
}
