package genaiutils_test

import (
	"testing"

	"github.com/matheushmfr/gemini-mcp-client/pkg/llms"
	"github.com/matheushmfr/gemini-mcp-client/pkg/llms/gemini/internal/genaiutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestConvertTools(t *testing.T) {
	in := []llms.Tool{
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        "get_weather",
				Description: "Returns the current weather for a city.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"city": map[string]any{
							"type":        "string",
							"description": "City name",
						},
						"days": map[string]any{"type": "integer"},
					},
					"required": []any{"city"},
				},
			},
		},
	}

	out, err := genaiutils.ConvertTools(in)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Len(t, out[0].FunctionDeclarations, 1)

	decl := out[0].FunctionDeclarations[0]
	assert.Equal(t, "get_weather", decl.Name)
	assert.Equal(t, "Returns the current weather for a city.", decl.Description)

	require.NotNil(t, decl.Parameters)
	assert.Equal(t, genai.TypeObject, decl.Parameters.Type)
	assert.Equal(t, []string{"city"}, decl.Parameters.Required)
	require.Contains(t, decl.Parameters.Properties, "city")
	assert.Equal(t, genai.TypeString, decl.Parameters.Properties["city"].Type)
	assert.Equal(t, "City name", decl.Parameters.Properties["city"].Description)
	assert.Equal(t, genai.TypeInteger, decl.Parameters.Properties["days"].Type)
}

func TestConvertTools_Empty(t *testing.T) {
	out, err := genaiutils.ConvertTools(nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestConvertTools_UnsupportedType(t *testing.T) {
	_, err := genaiutils.ConvertTools([]llms.Tool{
		{Type: "retrieval", Function: &llms.FunctionDefinition{Name: "x"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported type")
}

func TestConvertSchemaMap_Array(t *testing.T) {
	schema, err := genaiutils.ConvertSchemaMap(map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name": map[string]any{"type": "string"},
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, genai.TypeArray, schema.Type)
	require.NotNil(t, schema.Items)
	assert.Equal(t, genai.TypeObject, schema.Items.Type)
	assert.Equal(t, genai.TypeString, schema.Items.Properties["name"].Type)
}

func TestConvertSchemaMap_MissingType(t *testing.T) {
	schema, err := genaiutils.ConvertSchemaMap(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"anything": map[string]any{"description": "untyped"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, genai.TypeString, schema.Properties["anything"].Type)
}

func TestConvertSchemaMap_InvalidProperty(t *testing.T) {
	_, err := genaiutils.ConvertSchemaMap(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"bad": "not an object",
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "property [bad]")
}

func TestConvertSchemaType(t *testing.T) {
	assert.Equal(t, genai.TypeObject, genaiutils.ConvertSchemaType("object"))
	assert.Equal(t, genai.TypeString, genaiutils.ConvertSchemaType("string"))
	assert.Equal(t, genai.TypeNumber, genaiutils.ConvertSchemaType("number"))
	assert.Equal(t, genai.TypeInteger, genaiutils.ConvertSchemaType("integer"))
	assert.Equal(t, genai.TypeBoolean, genaiutils.ConvertSchemaType("boolean"))
	assert.Equal(t, genai.TypeArray, genaiutils.ConvertSchemaType("array"))
	assert.Equal(t, genai.TypeString, genaiutils.ConvertSchemaType(""))
	assert.Equal(t, genai.TypeString, genaiutils.ConvertSchemaType("date"))
}

func TestFloat32Ptr(t *testing.T) {
	p := genaiutils.Float32Ptr(0)
	require.NotNil(t, p)
	assert.Equal(t, float32(0), *p)
}
