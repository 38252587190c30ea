// Package record defines the narrow boundary between the indexing core and
// whatever environment presents records to a caller: a finalized record is
// rendered as an ordered list of named values.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is a single named value of a record.
type Field struct {
	Name  string
	Value any
}

// Fields is an ordered field list. Its JSON encoding is an object whose keys
// appear in list order.
type Fields []Field

// Renderer is implemented by every finalized record.
type Renderer interface {
	Fields() Fields
}

// Get returns the value of the named field.
func (f Fields) Get(name string) (any, bool) {
	for _, field := range f {
		if field.Name == name {
			return field.Value, true
		}
	}
	return nil, false
}

// Names returns the field names in order.
func (f Fields) Names() []string {
	names := make([]string, len(f))
	for i, field := range f {
		names[i] = field.Name
	}
	return names
}

// Map returns the fields as an unordered map.
func (f Fields) Map() map[string]any {
	m := make(map[string]any, len(f))
	for _, field := range f {
		m[field.Name] = field.Value
	}
	return m
}

// MarshalJSON writes the fields as a JSON object preserving order.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(field.Value)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
