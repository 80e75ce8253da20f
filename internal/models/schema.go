package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Property types allowed in a graphic's data schema.
const (
	PropString  = "string"
	PropNumber  = "number"
	PropBoolean = "boolean"
)

type SchemaProperty struct {
	Type    string `json:"type"`
	Title   string `json:"title,omitempty"`
	Default any    `json:"default"`
}

// SchemaProperties is a name → property mapping that preserves insertion
// order. Order matters: the editor renders the data form and the generated
// artifact embeds the schema in the order properties were declared.
type SchemaProperties struct {
	keys   []string
	values map[string]SchemaProperty
}

func NewSchemaProperties() SchemaProperties {
	return SchemaProperties{values: map[string]SchemaProperty{}}
}

// Set inserts name at the end, or updates it in place if already present.
func (p *SchemaProperties) Set(name string, prop SchemaProperty) {
	if p.values == nil {
		p.values = map[string]SchemaProperty{}
	}
	if _, ok := p.values[name]; !ok {
		p.keys = append(p.keys, name)
	}
	p.values[name] = prop
}

func (p *SchemaProperties) Get(name string) (SchemaProperty, bool) {
	prop, ok := p.values[name]
	return prop, ok
}

func (p *SchemaProperties) Delete(name string) {
	if _, ok := p.values[name]; !ok {
		return
	}
	delete(p.values, name)
	for i, k := range p.keys {
		if k == name {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the property names in insertion order.
func (p *SchemaProperties) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

func (p *SchemaProperties) Len() int {
	return len(p.keys)
}

// Clone returns an independent copy.
func (p *SchemaProperties) Clone() SchemaProperties {
	out := NewSchemaProperties()
	for _, k := range p.keys {
		out.Set(k, p.values[k])
	}
	return out
}

// MarshalJSON emits a JSON object with keys in insertion order.
func (p SchemaProperties) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p.values[k])
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(val)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// UnmarshalJSON reads a JSON object and keeps its key order.
func (p *SchemaProperties) UnmarshalJSON(data []byte) error {
	*p = NewSchemaProperties()

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("schema properties: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("schema properties: expected key, got %v", tok)
		}

		var prop SchemaProperty
		if err := dec.Decode(&prop); err != nil {
			return err
		}
		if n, ok := prop.Default.(json.Number); ok {
			if f, err := n.Float64(); err == nil {
				prop.Default = f
			}
		}
		p.Set(name, prop)
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
