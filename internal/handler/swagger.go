package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dafibh/mortgagefree/mortgagefree-backend/docs"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

// OpenAPI3Spec represents an OpenAPI 3.0 spec structure
type OpenAPI3Spec struct {
	OpenAPI    string                 `json:"openapi"`
	Info       map[string]interface{} `json:"info"`
	Servers    []Server               `json:"servers"`
	Paths      map[string]interface{} `json:"paths"`
	Components map[string]interface{} `json:"components,omitempty"`
}

// Server represents an OpenAPI 3.0 server
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// transformRefs recursively transforms $ref from #/definitions/ to #/components/schemas/
// and converts Swagger 2.0 parameters to OpenAPI 3.0 format
func transformRefs(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{})

		// Check if this is a parameter object (has "in" and "name" fields)
		if _, hasIn := v["in"]; hasIn {
			if _, hasName := v["name"]; hasName {
				return transformParameter(v)
			}
		}

		for key, value := range v {
			if key == "$ref" {
				if ref, ok := value.(string); ok {
					result[key] = strings.Replace(ref, "#/definitions/", "#/components/schemas/", 1)
				} else {
					result[key] = value
				}
			} else {
				result[key] = transformRefs(value)
			}
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = transformRefs(item)
		}
		return result
	default:
		return data
	}
}

// transformParameter converts a Swagger 2.0 parameter to OpenAPI 3.0 format
func transformParameter(param map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{})

	// Copy standard fields
	for _, field := range []string{"name", "in", "description", "required"} {
		if val, ok := param[field]; ok {
			result[field] = val
		}
	}

	// Body parameters are lifted into requestBody by convertOperation
	if param["in"] == "body" {
		body := make(map[string]interface{}, len(param))
		for key, value := range param {
			body[key] = transformRefs(value)
		}
		return body
	}

	// Build schema object from type-related fields
	schema := make(map[string]interface{})
	for _, field := range []string{"type", "format", "enum", "default", "minimum", "maximum", "items"} {
		if val, ok := param[field]; ok {
			if field == "items" {
				// Transform $ref in items
				schema[field] = transformRefs(val)
			} else {
				schema[field] = val
			}
		}
	}

	if len(schema) > 0 {
		result["schema"] = schema
	}

	return result
}

// OpenAPIHandler serves the swagger spec converted to OpenAPI 3.0
type OpenAPIHandler struct {
	servers []Server
}

// NewOpenAPIHandler creates an OpenAPIHandler advertising the given base URL
func NewOpenAPIHandler(publicURL string) *OpenAPIHandler {
	servers := []Server{{URL: "http://localhost:8080/api/v1", Description: "Local"}}
	if publicURL != "" {
		servers = append(servers, Server{URL: strings.TrimSuffix(publicURL, "/") + "/api/v1", Description: "Configured"})
	}
	return &OpenAPIHandler{servers: servers}
}

// ServeOpenAPI3Spec handles GET /openapi.json
func (h *OpenAPIHandler) ServeOpenAPI3Spec(c echo.Context) error {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		return NewInternalError(c, "Failed to read swagger doc")
	}

	var swagger2 map[string]interface{}
	if err := json.Unmarshal([]byte(doc), &swagger2); err != nil {
		return NewInternalError(c, "Failed to parse swagger doc")
	}

	info, _ := swagger2["info"].(map[string]interface{})

	// Convert $ref from definitions to components/schemas
	paths, _ := swagger2["paths"].(map[string]interface{})
	transformedPaths, _ := transformRefs(paths).(map[string]interface{})
	for _, item := range transformedPaths {
		operations, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		for method, op := range operations {
			if operation, ok := op.(map[string]interface{}); ok {
				operations[method] = convertOperation(operation)
			}
		}
	}

	components := make(map[string]interface{})
	if definitions, ok := swagger2["definitions"].(map[string]interface{}); ok {
		components["schemas"] = transformRefs(definitions)
	}

	return c.JSON(http.StatusOK, OpenAPI3Spec{
		OpenAPI:    "3.0.3",
		Info:       info,
		Servers:    h.servers,
		Paths:      transformedPaths,
		Components: components,
	})
}

// convertOperation moves a Swagger 2.0 body parameter into requestBody and wraps
// response schemas in a content map, as OpenAPI 3.0 expects
func convertOperation(op map[string]interface{}) map[string]interface{} {
	mediaType := "application/json"
	if produces, ok := op["produces"].([]interface{}); ok && len(produces) > 0 {
		if mt, ok := produces[0].(string); ok {
			mediaType = mt
		}
	}
	delete(op, "consumes")
	delete(op, "produces")

	if params, ok := op["parameters"].([]interface{}); ok {
		kept := make([]interface{}, 0, len(params))
		for _, p := range params {
			param, ok := p.(map[string]interface{})
			if ok && param["in"] == "body" {
				op["requestBody"] = map[string]interface{}{
					"required": param["required"],
					"content": map[string]interface{}{
						"application/json": map[string]interface{}{"schema": param["schema"]},
					},
				}
				continue
			}
			kept = append(kept, p)
		}
		if len(kept) == 0 {
			delete(op, "parameters")
		} else {
			op["parameters"] = kept
		}
	}

	if responses, ok := op["responses"].(map[string]interface{}); ok {
		for code, r := range responses {
			resp, ok := r.(map[string]interface{})
			if !ok {
				continue
			}
			if schema, ok := resp["schema"]; ok {
				responseType := mediaType
				if code != "200" {
					responseType = "application/problem+json"
				}
				resp["content"] = map[string]interface{}{
					responseType: map[string]interface{}{"schema": schema},
				}
				delete(resp, "schema")
			}
		}
	}
	return op
}
