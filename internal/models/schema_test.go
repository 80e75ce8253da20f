package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaPropertiesKeepInsertionOrder(t *testing.T) {
	props := NewSchemaProperties()
	props.Set("zeta", SchemaProperty{Type: PropString, Default: "z"})
	props.Set("alpha", SchemaProperty{Type: PropNumber, Default: 1.0})
	props.Set("mid", SchemaProperty{Type: PropBoolean, Default: true})

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, props.Keys())

	// updating an existing key keeps its position
	props.Set("alpha", SchemaProperty{Type: PropNumber, Default: 2.0})
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, props.Keys())

	props.Delete("zeta")
	assert.Equal(t, []string{"alpha", "mid"}, props.Keys())
}

func TestSchemaPropertiesJSONRoundTrip(t *testing.T) {
	props := NewSchemaProperties()
	props.Set("name", SchemaProperty{Type: PropString, Title: "Name", Default: "John Doe"})
	props.Set("size", SchemaProperty{Type: PropNumber, Default: 42.0})
	props.Set("live", SchemaProperty{Type: PropBoolean, Default: false})
	props.Set("note", SchemaProperty{Type: PropString, Default: ""})

	data, err := json.Marshal(props)
	require.NoError(t, err)

	// object keys appear in insertion order, not sorted
	assert.Regexp(t, `"name".*"size".*"live".*"note"`, string(data))

	var got SchemaProperties
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, props.Keys(), got.Keys())
	for _, k := range props.Keys() {
		want, _ := props.Get(k)
		have, ok := got.Get(k)
		require.True(t, ok, k)
		assert.Equal(t, want, have, k)
	}

	// a second marshal of the decoded value is byte-identical
	again, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}

func TestSchemaPropertiesUnmarshalNumbers(t *testing.T) {
	var props SchemaProperties
	err := json.Unmarshal([]byte(`{"count":{"type":"number","default":3}}`), &props)
	require.NoError(t, err)

	prop, ok := props.Get("count")
	require.True(t, ok)
	assert.Equal(t, 3.0, prop.Default)
}

func TestSchemaPropertiesUnmarshalRejectsArray(t *testing.T) {
	var props SchemaProperties
	err := json.Unmarshal([]byte(`[1,2]`), &props)
	assert.Error(t, err)
}

func TestSchemaPropertiesClone(t *testing.T) {
	props := NewSchemaProperties()
	props.Set("a", SchemaProperty{Type: PropString, Default: "x"})

	clone := props.Clone()
	clone.Set("b", SchemaProperty{Type: PropString, Default: "y"})

	assert.Equal(t, 1, props.Len())
	assert.Equal(t, 2, clone.Len())
}
