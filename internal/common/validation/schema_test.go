package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": ["string", "null"]},
		"age": {"type": "integer"},
		"tags": {"type": "array", "items": {"type": "string"}}
	}
}`

func TestSchema_Valid(t *testing.T) {
	s := MustCompile(personSchema)

	res, err := s.Validate(map[string]interface{}{"name": "Asha", "age": 21, "tags": []interface{}{"go"}})
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
}

func TestSchema_ReportsFieldErrors(t *testing.T) {
	s := MustCompile(personSchema)

	res, err := s.Validate(map[string]interface{}{"name": 42, "tags": []interface{}{"ok", 3}})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.True(t, res.HasErrors("name"))
	assert.True(t, res.HasErrors("tags"))
	assert.False(t, res.HasErrors("age"))
	assert.Len(t, res.GetErrorMessages(), len(res.Errors))
}

func TestCompile_RejectsBrokenSchema(t *testing.T) {
	_, err := Compile(`{"type": 12}`)
	assert.Error(t, err)
	assert.Panics(t, func() { MustCompile(`not json`) })
}
