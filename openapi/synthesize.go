// Package openapi builds OpenAPI documents that let an agent call a workflow's HTTP trigger.
package openapi

import (
	"strings"

	"github.com/awantoch/foundryflow/constants"
	"github.com/awantoch/foundryflow/utils"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	invokePath      = constants.OpenAPIInvokePath
	contentTypeJSON = constants.ContentTypeJSON
)

// Synthesize describes a POST /invoke operation whose JSON body follows schema.
//
// A property without a type becomes a string, and one whose nullable is explicitly false is
// listed in required. serverURL may be empty, in which case a placeholder is used until the
// callback URL is known. Synthesize never fails: missing input degrades to defaults.
func Synthesize(workflowName string, schema *TriggerSchema, serverURL string) *Document {
	name := DisplayName(workflowName)

	props := orderedmap.New[string, Schema]()
	var required []string
	schema.Each(func(key string, p Property) {
		typ := p.Type
		if typ == "" {
			utils.Warn("Property %q of workflow %s has no type; defaulting to %q", key, workflowName, constants.OpenAPIDefaultType)
			typ = constants.OpenAPIDefaultType
		}
		props.Set(key, Schema{Type: typ, Description: p.Description})
		if p.Required() {
			required = append(required, key)
		}
	})

	if serverURL == "" {
		serverURL = constants.OpenAPIPlaceholderURL
	}

	return &Document{
		OpenAPI: constants.OpenAPIVersion,
		Info: Info{
			Version:     constants.OpenAPIInfoVersion,
			Title:       name,
			Description: name,
		},
		Servers:  []Server{{URL: serverURL}},
		Security: []map[string][]string{{constants.OpenAPISecuritySchemeID: {}}},
		Paths: map[string]PathItem{
			invokePath: {
				Post: &Operation{
					Description: name,
					OperationID: constants.OpenAPIOperationID,
					Parameters:  triggerParameters(),
					Responses: map[string]Response{
						"200":     logicAppResponse(),
						"default": logicAppResponse(),
					},
					Deprecated: false,
					RequestBody: &RequestBody{
						Content: map[string]MediaType{
							contentTypeJSON: {Schema: Schema{
								Type:       "object",
								Properties: props,
								Required:   required,
							}},
						},
						Required: true,
					},
				},
			},
		},
		Components: Components{
			SecuritySchemes: map[string]SecurityScheme{
				constants.OpenAPISecuritySchemeID: {
					Type:        "apiKey",
					Description: constants.OpenAPISecurityDesc,
					Name:        constants.CallbackSignatureParam,
					In:          "query",
				},
			},
		},
	}
}

// DisplayName is the workflow name with underscores replaced by hyphens.
func DisplayName(workflowName string) string {
	return strings.ReplaceAll(workflowName, "_", "-")
}

// triggerParameters are fixed by the trigger invocation contract, not derived from input.
func triggerParameters() []Parameter {
	query := func(name, desc, def string) Parameter {
		return Parameter{
			Name:        name,
			In:          "query",
			Description: desc,
			Required:    true,
			Schema:      Schema{Type: "string", Default: def},
			Example:     def,
		}
	}
	return []Parameter{
		query("api-version", constants.TriggerAPIVersionDesc, constants.TriggerAPIVersion),
		query("sv", constants.TriggerSVDesc, constants.TriggerSV),
		query("sp", constants.TriggerSPDesc, constants.TriggerSP),
	}
}

func logicAppResponse() Response {
	return Response{
		Description: constants.OpenAPIResponseDesc,
		Content: map[string]MediaType{
			contentTypeJSON: {Schema: Schema{Type: "object"}},
		},
	}
}
