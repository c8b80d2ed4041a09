package schemafile_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reoring/strictskema"
	"github.com/reoring/strictskema/schema"
	"github.com/reoring/strictskema/schemafile"
)

const categoryDoc = `
definitions:
  Category:
    type: object
    description: a node in the category tree
    properties:
      name: {type: string}
      parent: {$ref: Category, nullable: true}
root:
  type: object
  properties:
    primary: {$ref: Category}
    secondary: {$ref: "#/$defs/Category"}
`

func mustLoad(t *testing.T, src string, opts schemafile.Options) *schemafile.Document {
	t.Helper()
	doc, _, err := schemafile.Load([]byte(src), opts)
	if err != nil {
		t.Fatalf("load err: %v", err)
	}
	return doc
}

func TestLoad_DefinitionsShareIdentity(t *testing.T) {
	doc := mustLoad(t, categoryDoc, schemafile.Options{})
	if len(doc.Definitions) != 1 || doc.Definitions[0].Name != "Category" {
		t.Fatalf("definitions = %+v", doc.Definitions)
	}
	root, ok := doc.Root.(*schema.ObjectNode)
	if !ok {
		t.Fatalf("root kind = %s", doc.Root.Kind())
	}
	p, _ := root.Lookup("primary")
	s, _ := root.Lookup("secondary")
	pl, ok1 := p.(*schema.LazyNode)
	sl, ok2 := s.(*schema.LazyNode)
	if !ok1 || !ok2 {
		t.Fatalf("refs should load as lazy nodes")
	}
	if pl.Resolve() != doc.Definitions[0].Schema || sl.Resolve() != doc.Definitions[0].Schema {
		t.Fatalf("refs must resolve to the single definition node")
	}
}

func TestLoad_ConvertKeepsDocumentNames(t *testing.T) {
	doc := mustLoad(t, categoryDoc, schemafile.Options{})
	b, err := strictskema.ConvertJSON(doc.Root, strictskema.Options{Definitions: doc.Definitions})
	if err != nil {
		t.Fatalf("convert err: %v", err)
	}
	want := `{"type":"object","properties":{"primary":{"$ref":"#/$defs/Category"},"secondary":{"$ref":"#/$defs/Category"}},"required":["primary","secondary"],"additionalProperties":false,` +
		`"$defs":{"Category":{"type":"object","description":"a node in the category tree","properties":{"name":{"type":"string"},"parent":{"anyOf":[{"$ref":"#/$defs/Category"},{"type":"null"}]}},"required":["name","parent"],"additionalProperties":false}}}`
	if string(b) != want {
		t.Fatalf("got  %s\nwant %s", b, want)
	}
}

func TestLoad_BareNodeAndShorthand(t *testing.T) {
	doc := mustLoad(t, `
type: object
properties:
  id: integer
  tags:
    type: array
    items: string
  status:
    enum: [open, closed]
  kind:
    const: user
  note:
    type: [string, "null"]
`, schemafile.Options{})
	if len(doc.Definitions) != 0 {
		t.Fatalf("bare node should have no definitions")
	}
	obj := doc.Root.(*schema.ObjectNode)
	names := []string{}
	for _, f := range obj.Fields() {
		names = append(names, f.Name)
	}
	if strings.Join(names, ",") != "id,tags,status,kind,note" {
		t.Fatalf("property order = %v", names)
	}
	id, _ := obj.Lookup("id")
	if n, ok := id.(*schema.NumberNode); !ok || !n.IsInt() {
		t.Fatalf("id should be an integer number")
	}
	status, _ := obj.Lookup("status")
	if u, ok := status.(*schema.UnionNode); !ok || len(u.Options()) != 2 {
		t.Fatalf("enum should load as a union of literals")
	}
	kind, _ := obj.Lookup("kind")
	if l, ok := kind.(*schema.LiteralNode); !ok || l.Value() != "user" {
		t.Fatalf("const should load as a literal")
	}
	b, err := strictskema.ConvertJSON(doc.Root)
	if err != nil {
		t.Fatalf("convert err: %v", err)
	}
	if !strings.Contains(string(b), `"note":{"anyOf":[{"type":"string"},{"type":"null"}]}`) {
		t.Fatalf("type list should become anyOf: %s", b)
	}
}

func TestLoad_DiscriminatedUnion(t *testing.T) {
	doc := mustLoad(t, `
definitions:
  Card:
    type: object
    properties:
      type: {const: card}
      last4: {type: string}
root:
  oneOf:
    - $ref: Card
    - type: object
      properties:
        type: {const: bank}
        iban: {type: string}
  discriminator: {propertyName: type}
`, schemafile.Options{})
	u, ok := doc.Root.(*schema.DiscriminatedUnionNode)
	if !ok {
		t.Fatalf("root kind = %s", doc.Root.Kind())
	}
	if u.Discriminator() != "type" || len(u.Options()) != 2 {
		t.Fatalf("union = %s %d", u.Discriminator(), len(u.Options()))
	}
	if v, ok := u.Variant("card"); !ok || v != doc.Definitions[0].Schema {
		t.Fatalf("card variant should be the Card definition")
	}
}

func TestLoad_DiscriminatorMissingOnVariant(t *testing.T) {
	_, _, err := schemafile.Load([]byte(`
oneOf:
  - type: object
    properties:
      other: {type: string}
discriminator: type
`), schemafile.Options{})
	if err == nil || !strings.Contains(err.Error(), "discriminator property") {
		t.Fatalf("expected discriminator error, got %v", err)
	}
}

func TestLoad_UnknownKeys(t *testing.T) {
	src := `
type: object
format: weird
properties:
  a: {type: string}
`
	_, diag, err := schemafile.Load([]byte(src), schemafile.Options{})
	if err != nil {
		t.Fatalf("lenient load err: %v", err)
	}
	if !diag.HasWarnings() || !strings.Contains(diag.Warnings()[0], "/root/format") {
		t.Fatalf("expected unknown key warning, got %v", diag.Warnings())
	}
	if _, _, err := schemafile.Load([]byte(src), schemafile.Options{Strict: true}); err == nil {
		t.Fatalf("strict load should reject unknown keys")
	}
}

func TestLoad_WrappersSurfaceAsConvertErrors(t *testing.T) {
	doc := mustLoad(t, `
type: object
properties:
  a: {type: string, optional: true}
  b: {type: number, default: 3}
`, schemafile.Options{})
	_, err := strictskema.Convert(doc.Root)
	if !errors.Is(err, strictskema.ErrOptionalProperty) {
		t.Fatalf("expected optional property error, got %v", err)
	}
	iss, _ := strictskema.AsIssues(err)
	if len(iss) != 1 || iss[0].Path != "/properties/a" {
		t.Fatalf("issues = %+v", iss)
	}
}

func TestLoad_UnsupportedConstructs(t *testing.T) {
	cases := []struct {
		name, src, variant string
	}{
		{"record", "additionalProperties: {type: string}", "record"},
		{"tuple", "prefixItems: [{type: string}, {type: number}]", "tuple"},
		{"intersection", "allOf: [{type: string}, {type: number}]", "intersection"},
		{"any", "description: anything", "any"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := mustLoad(t, tc.src, schemafile.Options{})
			_, err := strictskema.Convert(doc.Root)
			if !errors.Is(err, strictskema.ErrUnsupportedVariant) {
				t.Fatalf("expected unsupported variant, got %v", err)
			}
			iss, _ := strictskema.AsIssues(err)
			if iss[0].Params["variant"] != tc.variant {
				t.Fatalf("variant = %v", iss[0].Params["variant"])
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	cases := []struct {
		name, src, want string
	}{
		{"unknown ref", "$ref: Missing", "unknown definition"},
		{"defs without root", "definitions: {A: {type: string}}", "no root"},
		{"array without items", "type: array", "array requires items"},
		{"unknown type", "type: date", "unknown type"},
		{"direct self reference", "definitions: {A: {oneOf: [{$ref: A}], discriminator: k}}\nroot: {$ref: A}", "without indirection"},
		{"empty", "", "empty document"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := schemafile.Load([]byte(tc.src), schemafile.Options{})
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "s.json")
	if err := os.WriteFile(p, []byte(`{"type":"object","properties":{"x":{"type":"boolean"}}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, _, err := schemafile.LoadFile(p, schemafile.Options{})
	if err != nil {
		t.Fatalf("load err: %v", err)
	}
	if doc.Root.Kind() != schema.KindObject {
		t.Fatalf("root kind = %s", doc.Root.Kind())
	}
	if _, _, err := schemafile.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"), schemafile.Options{}); err == nil {
		t.Fatalf("missing file should fail")
	}
}
