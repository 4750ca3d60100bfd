// Package tool builds tool definitions in the agent service wire format.
package tool

import (
	"strings"
)

// Tool types understood by the agent service.
const (
	TypeOpenAPI = "openapi"
	TypeMCP     = "mcp"
)

// Definition is one entry of an agent's tools array. Only the fields of the matching Type are set.
type Definition struct {
	Type    string           `json:"type"`
	OpenAPI *OpenAPIFunction `json:"openapi,omitempty"`

	ServerLabel     string   `json:"server_label,omitempty"`
	ServerURL       string   `json:"server_url,omitempty"`
	AllowedTools    []string `json:"allowed_tools,omitempty"`
	RequireApproval string   `json:"require_approval,omitempty"`
}

// Label names the definition: the function name of an OpenAPI tool, the server label of an MCP tool.
func (d Definition) Label() string {
	if d.OpenAPI != nil {
		return d.OpenAPI.Name
	}
	if d.ServerLabel != "" {
		return d.ServerLabel
	}
	return d.Type
}

// Resources are per-run tool settings, sent with a run rather than stored on the agent.
type Resources struct {
	MCP []MCPResource `json:"mcp,omitempty"`
}

// Empty reports whether there is nothing to send.
func (r Resources) Empty() bool {
	return len(r.MCP) == 0
}

// Merge appends the entries of other.
func (r Resources) Merge(other Resources) Resources {
	r.MCP = append(r.MCP, other.MCP...)
	return r
}

// Tool is anything that contributes definitions to an agent.
type Tool interface {
	Definitions() []Definition
	Resources() Resources
}

// Collect flattens the definitions and resources of tools.
func Collect(tools ...Tool) ([]Definition, Resources) {
	defs := []Definition{}
	var res Resources
	for _, t := range tools {
		defs = append(defs, t.Definitions()...)
		res = res.Merge(t.Resources())
	}
	return defs, res
}

// SanitizeName turns a workflow name into a tool name: hyphens and spaces become underscores.
func SanitizeName(name string) string {
	return strings.NewReplacer("-", "_", " ", "_").Replace(name)
}
