// Package genaiutils converts tool and schema definitions from their
// wire-format JSON representation to the genai SDK types.
package genaiutils

import (
	"github.com/cockroachdb/errors"
	"github.com/matheushmfr/gemini-mcp-client/pkg/llms"
	"google.golang.org/genai"
)

// ConvertTools converts from a list of llms tools to a list of genai tools.
func ConvertTools(tools []llms.Tool) ([]*genai.Tool, error) {
	if len(tools) == 0 {
		return nil, nil
	}

	genaiTools := make([]*genai.Tool, 0, len(tools))
	for i, tool := range tools {
		if tool.Type != "function" {
			return nil, errors.Newf("tool [%d]: unsupported type %q, want 'function'", i, tool.Type)
		}

		genaiFuncDecl := &genai.FunctionDeclaration{
			Name:        tool.Function.Name,
			Description: tool.Function.Description,
		}

		if tool.Function.Parameters != nil {
			schema, err := ConvertSchemaMap(tool.Function.Parameters)
			if err != nil {
				return nil, errors.WithMessagef(err, "tool [%d]", i)
			}
			genaiFuncDecl.Parameters = schema
		}

		genaiTools = append(genaiTools, &genai.Tool{
			FunctionDeclarations: []*genai.FunctionDeclaration{genaiFuncDecl},
		})
	}

	return genaiTools, nil
}

// ConvertSchemaMap converts a wire-format JSON schema, as listed by an MCP
// server, to a genai.Schema. Nested object properties and array items are
// converted recursively.
func ConvertSchemaMap(m map[string]any) (*genai.Schema, error) {
	if m == nil {
		return nil, nil
	}

	typ, _ := m["type"].(string)
	out := &genai.Schema{
		Type: ConvertSchemaType(typ),
	}
	if desc, ok := m["description"].(string); ok {
		out.Description = desc
	}
	if req, ok := m["required"].([]any); ok {
		for _, name := range req {
			if s, ok := name.(string); ok {
				out.Required = append(out.Required, s)
			}
		}
	}

	if props, ok := m["properties"].(map[string]any); ok {
		out.Properties = make(map[string]*genai.Schema, len(props))
		for name, prop := range props {
			propMap, ok := prop.(map[string]any)
			if !ok {
				return nil, errors.Newf("property [%s]: expected an object", name)
			}
			propSchema, err := ConvertSchemaMap(propMap)
			if err != nil {
				return nil, errors.WithMessagef(err, "property [%s]", name)
			}
			out.Properties[name] = propSchema
		}
	}

	if items, ok := m["items"].(map[string]any); ok {
		itemsSchema, err := ConvertSchemaMap(items)
		if err != nil {
			return nil, errors.WithMessage(err, "items")
		}
		out.Items = itemsSchema
	}

	return out, nil
}

// ConvertSchemaType maps JSON schema types to genai types. Missing and
// unknown types fall back to STRING so unusual server schemas still produce a
// usable declaration.
func ConvertSchemaType(ty string) genai.Type {
	switch ty {
	case "object":
		return genai.TypeObject
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	default:
		return genai.TypeString
	}
}

// Float32Ptr returns a pointer to the given value. Zero is a meaningful
// setting for sampling parameters, so it is not collapsed to nil.
func Float32Ptr(f float32) *float32 {
	return &f
}
