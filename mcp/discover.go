// Package mcp discovers the tools an MCP server offers, to pin an agent's allowed tools.
package mcp

import (
	"context"
	"fmt"
	"net/url"

	mcp "github.com/metoro-io/mcp-golang"
	"github.com/metoro-io/mcp-golang/transport"
	mcphttp "github.com/metoro-io/mcp-golang/transport/http"

	"github.com/awantoch/foundryflow/utils"
)

// Tool is a tool advertised by a server.
type Tool struct {
	Name        string
	Description string
}

// Names returns the tool names in the order the server listed them.
func Names(tools []Tool) []string {
	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = t.Name
	}
	return names
}

// NewHTTPTransport splits serverURL into base and endpoint path for the streamable HTTP transport.
func NewHTTPTransport(serverURL string, headers map[string]string) (*mcphttp.HTTPClientTransport, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("parse MCP server url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("MCP server url %q is not absolute", serverURL)
	}
	endpoint := u.Path
	if endpoint == "" {
		endpoint = "/"
	}
	if u.RawQuery != "" {
		endpoint += "?" + u.RawQuery
	}
	t := mcphttp.NewHTTPClientTransport(endpoint).WithBaseURL(u.Scheme + "://" + u.Host)
	for k, v := range headers {
		t.WithHeader(k, v)
	}
	return t, nil
}

// Discover lists the tools of the MCP server at serverURL.
func Discover(ctx context.Context, serverURL string, headers map[string]string) ([]Tool, error) {
	t, err := NewHTTPTransport(serverURL, headers)
	if err != nil {
		return nil, err
	}
	tools, err := ListTools(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("discover tools at %s: %w", serverURL, err)
	}
	return tools, nil
}

// ListTools initializes a client session over t and pages through tools/list.
func ListTools(ctx context.Context, t transport.Transport) ([]Tool, error) {
	client := mcp.NewClient(t)
	if _, err := client.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}

	var out []Tool
	cursor := new(string)
	for {
		resp, err := client.ListTools(ctx, cursor)
		if err != nil {
			return nil, fmt.Errorf("list tools: %w", err)
		}
		for _, tool := range resp.Tools {
			desc := ""
			if tool.Description != nil {
				desc = *tool.Description
			}
			out = append(out, Tool{Name: tool.Name, Description: desc})
		}
		if resp.NextCursor == nil || *resp.NextCursor == "" || *resp.NextCursor == *cursor {
			break
		}
		cursor = resp.NextCursor
	}
	utils.Debug("MCP server listed %d tools", len(out))
	return out, nil
}
