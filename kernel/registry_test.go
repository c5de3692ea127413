package kernel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedFunction(name, result string) Function {
	return NewFunction(name, "returns "+result,
		func(ctx context.Context, in struct{}) (string, error) {
			return result, nil
		},
	)
}

func TestQualify(t *testing.T) {
	tests := []struct {
		name      string
		namespace string
		fnName    string
		want      string
	}{
		{name: "namespaced", namespace: "TimePlugin", fnName: "Date", want: "TimePlugin-Date"},
		{name: "empty namespace", namespace: "", fnName: "Date", want: "Date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Qualify(tt.namespace, tt.fnName))
		})
	}
}

func TestRegistry_RegisterAndResolve(t *testing.T) {
	registry := NewRegistry()
	registry.Register("TimePlugin", namedFunction("Date", "today"))

	fn, ok := registry.Resolve("TimePlugin-Date")
	require.True(t, ok)
	assert.Equal(t, "Date", fn.Name())

	_, ok = registry.Resolve("TimePlugin-Missing")
	assert.False(t, ok)

	_, ok = registry.Resolve("Date") // unqualified
	assert.False(t, ok)
}

func TestRegistry_ResolveIsIdempotent(t *testing.T) {
	registry := NewRegistry()
	registry.Register("TimePlugin", namedFunction("Date", "today"))

	first, ok := registry.Resolve("TimePlugin-Date")
	require.True(t, ok)
	second, ok := registry.Resolve("TimePlugin-Date")
	require.True(t, ok)

	assert.Same(t, first, second)
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_DeclarationsInRegistrationOrder(t *testing.T) {
	registry := NewRegistry()
	registry.Register("B", namedFunction("Second", "2"))
	registry.Register("A", namedFunction("Third", "3"))
	registry.Register("B", namedFunction("First", "1"))

	decls := registry.Declarations()
	require.Len(t, decls, 3)
	assert.Equal(t, "B-Second", decls[0].QualifiedName())
	assert.Equal(t, "A-Third", decls[1].QualifiedName())
	assert.Equal(t, "B-First", decls[2].QualifiedName())
}

func TestRegistry_ReplaceKeepsPosition(t *testing.T) {
	registry := NewRegistry()
	registry.Register("P", namedFunction("One", "old"))
	registry.Register("P", namedFunction("Two", "2"))
	registry.Register("P", namedFunction("One", "new"))

	require.Equal(t, 2, registry.Len())

	decls := registry.Declarations()
	assert.Equal(t, "P-One", decls[0].QualifiedName())
	assert.Equal(t, "P-Two", decls[1].QualifiedName())

	fn, ok := registry.Resolve("P-One")
	require.True(t, ok)
	out, err := fn.Execute(context.Background(), []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "new", out)
}

func TestRegistry_DeclarationCarriesSchema(t *testing.T) {
	type input struct {
		City string `json:"city" jsonschema:"required,description=City name"`
	}
	registry := NewRegistry()
	registry.Register("WeatherPlugin", NewFunction("Forecast", "Get a forecast",
		func(ctx context.Context, in input) (string, error) {
			return "sunny", nil
		},
	))

	decls := registry.Declarations()
	require.Len(t, decls, 1)
	assert.Equal(t, "WeatherPlugin", decls[0].Namespace)
	assert.Equal(t, "Forecast", decls[0].Name)
	assert.Equal(t, "Get a forecast", decls[0].Description)

	require.NotNil(t, decls[0].Parameters)
	_, hasCity := decls[0].Parameters.Properties.Get("city")
	assert.True(t, hasCity, "schema should declare the city property")
}

func TestRegistry_FunctionDefs(t *testing.T) {
	t.Run("empty registry yields nil", func(t *testing.T) {
		assert.Nil(t, NewRegistry().functionDefs())
	})

	t.Run("defs use qualified names", func(t *testing.T) {
		registry := NewRegistry()
		registry.Register("TimePlugin", namedFunction("Date", "today"))

		defs := registry.functionDefs()
		require.Len(t, defs, 1)
		assert.Equal(t, "TimePlugin-Date", defs[0].Name)
		assert.NotEmpty(t, defs[0].Parameters)
	})
}
