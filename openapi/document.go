package openapi

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Document is the OpenAPI 3.0.3 description of a single trigger invocation.
type Document struct {
	OpenAPI    string                `json:"openapi"`
	Info       Info                  `json:"info"`
	Servers    []Server              `json:"servers"`
	Security   []map[string][]string `json:"security"`
	Paths      map[string]PathItem   `json:"paths"`
	Components Components            `json:"components"`
}

type Info struct {
	Version     string `json:"version"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Server struct {
	URL string `json:"url"`
}

type PathItem struct {
	Post *Operation `json:"post,omitempty"`
}

type Operation struct {
	Description string              `json:"description"`
	OperationID string              `json:"operationId"`
	Parameters  []Parameter         `json:"parameters"`
	Responses   map[string]Response `json:"responses"`
	Deprecated  bool                `json:"deprecated"`
	RequestBody *RequestBody        `json:"requestBody,omitempty"`
}

type Parameter struct {
	Name        string `json:"name"`
	In          string `json:"in"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Schema      Schema `json:"schema"`
	Example     string `json:"example,omitempty"`
}

type Schema struct {
	Type        string                                 `json:"type"`
	Description string                                 `json:"description,omitempty"`
	Default     string                                 `json:"default,omitempty"`
	Properties  *orderedmap.OrderedMap[string, Schema] `json:"properties,omitempty"`
	Required    []string                               `json:"required,omitempty"`
}

type MediaType struct {
	Schema Schema `json:"schema"`
}

type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content"`
}

type RequestBody struct {
	Content  map[string]MediaType `json:"content"`
	Required bool                 `json:"required"`
}

type Components struct {
	SecuritySchemes map[string]SecurityScheme `json:"securitySchemes"`
}

type SecurityScheme struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Name        string `json:"name"`
	In          string `json:"in"`
}

// SetServerURL points the document at url, replacing any existing servers.
func (d *Document) SetServerURL(url string) {
	d.Servers = []Server{{URL: url}}
}

// ServerURL returns the first server URL, or "" when there is none.
func (d *Document) ServerURL() string {
	if len(d.Servers) == 0 {
		return ""
	}
	return d.Servers[0].URL
}

// Invoke returns the POST /invoke operation.
func (d *Document) Invoke() *Operation {
	return d.Paths[invokePath].Post
}

// BodySchema returns the request body schema of the invoke operation.
func (d *Document) BodySchema() *Schema {
	op := d.Invoke()
	if op == nil || op.RequestBody == nil {
		return nil
	}
	mt, ok := op.RequestBody.Content[contentTypeJSON]
	if !ok {
		return nil
	}
	return &mt.Schema
}
