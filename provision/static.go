package provision

import (
	"context"
	"fmt"

	"github.com/awantoch/foundryflow/mcp"
	"github.com/awantoch/foundryflow/openapi"
	"github.com/awantoch/foundryflow/tool"
	"github.com/awantoch/foundryflow/utils"
)

// OpenAPIFileTool loads the document at path as an anonymous OpenAPI tool, pointing it at
// serverURL when that is set.
func OpenAPIFileTool(path, serverURL, name, description string) (*tool.OpenAPI, error) {
	spec, err := openapi.LoadSpec(path)
	if err != nil {
		return nil, err
	}
	utils.Debug("Loaded OpenAPI document %q from %s", spec.Title(), path)
	if serverURL != "" {
		spec.SetServerURL(serverURL)
		utils.Info("Using OpenAPI Tool with server URL: %s", serverURL)
	}
	return tool.NewOpenAPI(name, description, map[string]any(spec), tool.AnonymousAuth()), nil
}

// DiscoverFunc lists the tools of an MCP server.
type DiscoverFunc func(ctx context.Context, serverURL string, headers map[string]string) ([]mcp.Tool, error)

// MCPOptions configure an MCP tool.
type MCPOptions struct {
	ServerURL string
	Label     string
	Approval  string
	// Headers are sent to the MCP server on every run and during discovery.
	Headers map[string]string
	// Discover, when set, pins allowed_tools to what the server lists right now.
	Discover DiscoverFunc
}

// MCPTool builds the MCP tool for opts.
func MCPTool(ctx context.Context, opts MCPOptions) (*tool.MCP, error) {
	if opts.ServerURL == "" {
		return nil, fmt.Errorf("MCP server url is required")
	}
	t := tool.NewMCP(opts.Label, opts.ServerURL)
	if opts.Approval != "" {
		t.SetApprovalMode(opts.Approval)
	}
	for k, v := range opts.Headers {
		t.SetHeader(k, v)
	}
	if opts.Discover != nil {
		tools, err := opts.Discover(ctx, opts.ServerURL, opts.Headers)
		if err != nil {
			return nil, err
		}
		names := mcp.Names(tools)
		utils.Info("MCP server %s offers %d tools: %v", opts.Label, len(names), names)
		t.AllowTools(names...)
	}
	return t, nil
}
