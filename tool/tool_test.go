package tool

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "get_weather_now", SanitizeName("get-weather now"))
	assert.Equal(t, "plain", SanitizeName("plain"))
}

func TestOpenAPI_ConnectionWireFormat(t *testing.T) {
	spec := map[string]any{"openapi": "3.0.3"}
	defs := NewOpenAPI("wf_tool", "wf-tool OpenAPI tool", spec, ConnectionAuth("/conn/1")).Definitions()
	require.Len(t, defs, 1)

	b, err := json.Marshal(defs[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "openapi",
		"openapi": {
			"name": "wf_tool",
			"description": "wf-tool OpenAPI tool",
			"spec": {"openapi": "3.0.3"},
			"auth": {"type": "connection", "security_scheme": {"connection_id": "/conn/1"}}
		}
	}`, string(b))
}

func TestOpenAPI_AnonymousWireFormat(t *testing.T) {
	b, err := json.Marshal(NewOpenAPI("WeatherAPI", "", map[string]any{}, AnonymousAuth()).Definitions()[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"openapi","openapi":{"name":"WeatherAPI","spec":{},"auth":{"type":"anonymous"}}}`, string(b))
}

func TestMCP_WireFormat(t *testing.T) {
	m := NewMCP("tool", "https://mcp.example.com/mcp").
		AllowTools("get_forecast").
		SetApprovalMode(ApprovalNever).
		SetHeader("x-key", "v")

	b, err := json.Marshal(m.Definitions()[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "mcp",
		"server_label": "tool",
		"server_url": "https://mcp.example.com/mcp",
		"allowed_tools": ["get_forecast"],
		"require_approval": "never"
	}`, string(b))

	b, err = json.Marshal(m.Resources())
	require.NoError(t, err)
	assert.JSONEq(t, `{"mcp":[{"server_label":"tool","require_approval":"never","headers":{"x-key":"v"}}]}`, string(b))
}

func TestCollect(t *testing.T) {
	defs, res := Collect(
		NewOpenAPI("a", "", nil, AnonymousAuth()),
		NewMCP("tool", "u"),
	)
	require.Len(t, defs, 2)
	assert.Equal(t, TypeOpenAPI, defs[0].Type)
	assert.Equal(t, TypeMCP, defs[1].Type)
	assert.Equal(t, "a", defs[0].Label())
	assert.Equal(t, "tool", defs[1].Label())
	require.Len(t, res.MCP, 1)
	assert.False(t, res.Empty())

	defs, res = Collect()
	assert.NotNil(t, defs)
	assert.Empty(t, defs)
	assert.True(t, res.Empty())
}
