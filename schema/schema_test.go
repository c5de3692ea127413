package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchInput struct {
	Query string `json:"query" jsonschema:"required,description=Search query"`
	Limit int    `json:"limit,omitempty" jsonschema:"description=Maximum results"`
}

func TestFor(t *testing.T) {
	s := For[searchInput]()
	require.NotNil(t, s)

	query, ok := s.Properties.Get("query")
	require.True(t, ok)
	assert.Equal(t, "string", query.Type)
	assert.Equal(t, "Search query", query.Description)

	limit, ok := s.Properties.Get("limit")
	require.True(t, ok)
	assert.Equal(t, "integer", limit.Type)

	assert.Contains(t, s.Required, "query")
	assert.NotContains(t, s.Required, "limit")
}

func TestFor_NoReferences(t *testing.T) {
	s := For[searchInput]()

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "$ref")
}

func TestObject(t *testing.T) {
	s := Object(
		Property{Name: "city", Description: "City name", Required: true},
		Property{Name: "count", Type: "integer"},
	)

	assert.Equal(t, "object", s.Type)

	city, ok := s.Properties.Get("city")
	require.True(t, ok)
	assert.Equal(t, "string", city.Type)
	assert.Equal(t, "City name", city.Description)

	count, ok := s.Properties.Get("count")
	require.True(t, ok)
	assert.Equal(t, "integer", count.Type)

	assert.Equal(t, []string{"city"}, s.Required)
}

func TestObject_PreservesOrder(t *testing.T) {
	s := Object(
		Property{Name: "zebra"},
		Property{Name: "apple"},
		Property{Name: "mango"},
	)

	var names []string
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	assert.Equal(t, []string{"zebra", "apple", "mango"}, names)
}

func TestParse(t *testing.T) {
	s, err := Parse(json.RawMessage(`{"type": "object", "properties": {"id": {"type": "string"}}, "required": ["id"]}`))
	require.NoError(t, err)

	assert.Equal(t, "object", s.Type)
	id, ok := s.Properties.Get("id")
	require.True(t, ok)
	assert.Equal(t, "string", id.Type)
	assert.Equal(t, []string{"id"}, s.Required)

	_, err = Parse(json.RawMessage(`not json`))
	assert.Error(t, err)
}
