package jsonschema

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// Map is a name -> schema table that remembers insertion order. It backs
// "properties" and "$defs", whose order is visible to callers.
type Map struct {
	keys []string
	vals map[string]*Schema
}

// NewMap returns an empty Map.
func NewMap() *Map { return &Map{vals: map[string]*Schema{}} }

// Len returns the number of entries; a nil Map is empty.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the names in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Get returns the schema stored under name.
func (m *Map) Get(name string) (*Schema, bool) {
	if m == nil {
		return nil, false
	}
	s, ok := m.vals[name]
	return s, ok
}

// Set stores s under name. Replacing keeps the original position.
func (m *Map) Set(name string, s *Schema) {
	if m.vals == nil {
		m.vals = map[string]*Schema{}
	}
	if _, ok := m.vals[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.vals[name] = s
}

// Delete removes name.
func (m *Map) Delete(name string) {
	if m == nil {
		return
	}
	if _, ok := m.vals[name]; !ok {
		return
	}
	delete(m.vals, name)
	for i, k := range m.keys {
		if k == name {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Each calls fn for every entry in insertion order.
func (m *Map) Each(fn func(name string, s *Schema)) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		fn(k, m.vals[k])
	}
}

// Clone returns a deep copy of m.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}
	out := NewMap()
	m.Each(func(k string, s *Schema) { out.Set(k, s.Clone()) })
	return out
}

func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *Map) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("jsonschema: expected object, got %v", tok)
	}
	m.keys = nil
	m.vals = map[string]*Schema{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("jsonschema: expected key, got %v", tok)
		}
		var s *Schema
		if err := dec.Decode(&s); err != nil {
			return fmt.Errorf("jsonschema: %s: %w", key, err)
		}
		m.Set(key, s)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
