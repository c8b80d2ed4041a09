package jsonschema

import (
	"bytes"
	"strings"

	json "github.com/goccy/go-json"
)

// DefsPrefix is the pointer prefix of every reference produced by the converter.
const DefsPrefix = "#/$defs/"

// Schema is the strict JSON Schema subset accepted by structured-output APIs.
// Keys are emitted in a fixed order so that output is byte-stable.
type Schema struct {
	Ref         string    `json:"$ref,omitempty"`
	Type        string    `json:"type,omitempty"`
	Enum        []any     `json:"enum,omitempty"`
	AnyOf       []*Schema `json:"anyOf,omitempty"`
	Description string    `json:"description,omitempty"`

	// Object. For Type "object" both keys are always written, empty or not.
	Properties           *Map     `json:"properties,omitempty"`
	Required             []string `json:"required,omitempty"`
	AdditionalProperties any      `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	Defs *Map `json:"$defs,omitempty"`
}

// Ref returns a pure reference to the named definition.
func Ref(name string) *Schema { return &Schema{Ref: DefsPrefix + name} }

// RefName returns the definition name s points to.
func (s *Schema) RefName() (string, bool) {
	if s == nil || !strings.HasPrefix(s.Ref, DefsPrefix) {
		return "", false
	}
	return strings.TrimPrefix(s.Ref, DefsPrefix), true
}

// IsPureRef reports whether s is a reference carrying no other keys.
func (s *Schema) IsPureRef() bool {
	if s == nil || s.Ref == "" {
		return false
	}
	return s.Type == "" && s.Enum == nil && s.AnyOf == nil && s.Description == "" &&
		s.Properties == nil && s.Required == nil && s.AdditionalProperties == nil &&
		s.Items == nil && s.Defs == nil
}

// Clone returns a deep copy of s.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := *s
	if s.Enum != nil {
		out.Enum = append([]any{}, s.Enum...)
	}
	if s.AnyOf != nil {
		out.AnyOf = make([]*Schema, len(s.AnyOf))
		for i, a := range s.AnyOf {
			out.AnyOf[i] = a.Clone()
		}
	}
	if s.Required != nil {
		out.Required = append([]string{}, s.Required...)
	}
	out.Properties = s.Properties.Clone()
	out.Items = s.Items.Clone()
	out.Defs = s.Defs.Clone()
	return &out
}

// Refs calls fn for every $ref reachable from s, including those nested in
// $defs.
func (s *Schema) Refs(fn func(name string)) {
	if s == nil {
		return
	}
	if name, ok := s.RefName(); ok {
		fn(name)
	}
	for _, a := range s.AnyOf {
		a.Refs(fn)
	}
	s.Properties.Each(func(_ string, p *Schema) { p.Refs(fn) })
	s.Items.Refs(fn)
	s.Defs.Each(func(_ string, d *Schema) { d.Refs(fn) })
}

func (s *Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	write := func(key string, v any) error {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		kb, _ := json.Marshal(key)
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(b)
		return nil
	}
	type entry struct {
		key  string
		val  any
		emit bool
	}
	isObject := s.Type == "object"
	props := s.Properties
	if props == nil && isObject {
		props = NewMap()
	}
	req := s.Required
	if req == nil && isObject {
		req = []string{}
	}
	entries := []entry{
		{"$ref", s.Ref, s.Ref != ""},
		{"type", s.Type, s.Type != ""},
		{"enum", s.Enum, s.Enum != nil},
		{"anyOf", s.AnyOf, s.AnyOf != nil},
		{"description", s.Description, s.Description != ""},
		{"properties", props, props != nil},
		{"required", req, req != nil},
		{"items", s.Items, s.Items != nil},
		{"additionalProperties", s.AdditionalProperties, s.AdditionalProperties != nil},
		{"$defs", s.Defs, s.Defs != nil},
	}
	for _, e := range entries {
		if !e.emit {
			continue
		}
		if err := write(e.key, e.val); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// schemaWire mirrors Schema without its methods so decoding does not recurse.
type schemaWire struct {
	Ref                  string    `json:"$ref"`
	Type                 string    `json:"type"`
	Enum                 []any     `json:"enum"`
	AnyOf                []*Schema `json:"anyOf"`
	Description          string    `json:"description"`
	Properties           *Map      `json:"properties"`
	Required             []string  `json:"required"`
	AdditionalProperties any       `json:"additionalProperties"`
	Items                *Schema   `json:"items"`
	Defs                 *Map      `json:"$defs"`
}

func (s *Schema) UnmarshalJSON(b []byte) error {
	var w schemaWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*s = Schema(w)
	return nil
}
