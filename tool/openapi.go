package tool

// Auth types for OpenAPI tools.
const (
	AuthAnonymous  = "anonymous"
	AuthConnection = "connection"
)

type OpenAPIFunction struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Spec        any         `json:"spec"`
	Auth        OpenAPIAuth `json:"auth"`
}

type OpenAPIAuth struct {
	Type           string          `json:"type"`
	SecurityScheme *SecurityScheme `json:"security_scheme,omitempty"`
}

type SecurityScheme struct {
	ConnectionID string `json:"connection_id"`
}

// AnonymousAuth calls the API without credentials.
func AnonymousAuth() OpenAPIAuth {
	return OpenAPIAuth{Type: AuthAnonymous}
}

// ConnectionAuth resolves the API key from a project connection.
func ConnectionAuth(connectionID string) OpenAPIAuth {
	return OpenAPIAuth{Type: AuthConnection, SecurityScheme: &SecurityScheme{ConnectionID: connectionID}}
}

// OpenAPI exposes the operations of an OpenAPI document as one tool.
type OpenAPI struct {
	fn OpenAPIFunction
}

// NewOpenAPI wraps spec, which must marshal to an OpenAPI 3 document.
func NewOpenAPI(name, description string, spec any, auth OpenAPIAuth) *OpenAPI {
	return &OpenAPI{fn: OpenAPIFunction{Name: name, Description: description, Spec: spec, Auth: auth}}
}

func (t *OpenAPI) Name() string { return t.fn.Name }

func (t *OpenAPI) Definitions() []Definition {
	fn := t.fn
	return []Definition{{Type: TypeOpenAPI, OpenAPI: &fn}}
}

func (t *OpenAPI) Resources() Resources { return Resources{} }
