package provision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/awantoch/foundryflow/agent"
	"github.com/awantoch/foundryflow/arm"
	"github.com/awantoch/foundryflow/foundry"
	"github.com/awantoch/foundryflow/logicapp"
	"github.com/awantoch/foundryflow/mcp"
	"github.com/awantoch/foundryflow/openapi"
	"github.com/awantoch/foundryflow/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	workflows []logicapp.Workflow
	schemas   map[string]*openapi.TriggerDefinition
	callbacks map[string]string
	calls     []string
}

func (f *fakeSource) ListWorkflows(ctx context.Context, site string) ([]logicapp.Workflow, error) {
	f.calls = append(f.calls, "list "+site)
	return f.workflows, nil
}

func (f *fakeSource) TriggerSchema(ctx context.Context, site, workflow, trigger string) (*openapi.TriggerDefinition, error) {
	f.calls = append(f.calls, "schema "+workflow+"/"+trigger)
	def, ok := f.schemas[workflow]
	if !ok {
		return nil, errors.New("no schema")
	}
	return def, nil
}

func (f *fakeSource) CallbackURL(ctx context.Context, site, workflow, trigger string) (string, error) {
	f.calls = append(f.calls, "callback "+workflow)
	return f.callbacks[workflow], nil
}

type fakeRegistrar struct {
	puts map[string]map[string]string
}

func (f *fakeRegistrar) PutCustomKeys(ctx context.Context, name string, keys map[string]string) (string, error) {
	if f.puts == nil {
		f.puts = map[string]map[string]string{}
	}
	f.puts[name] = keys
	return "/connections/" + name, nil
}

func workflow(t *testing.T, raw string) logicapp.Workflow {
	t.Helper()
	var wf logicapp.Workflow
	require.NoError(t, json.Unmarshal([]byte(raw), &wf))
	return wf
}

func newFakeSource(t *testing.T) *fakeSource {
	nonNull := false
	return &fakeSource{
		workflows: []logicapp.Workflow{
			workflow(t, `{"name":"get-weather","triggers":{"manual":{"kind":"Http","type":"Request"}}}`),
			workflow(t, `{"name":"nightly","triggers":{"Recurrence":{"kind":"Recurrence"}}}`),
			workflow(t, `{"name":"no sig","triggers":{"manual":{"kind":"Http"}}}`),
		},
		schemas: map[string]*openapi.TriggerDefinition{
			"get-weather": {Type: "object", Properties: openapi.NewTriggerSchema().Set("city", openapi.Property{Type: "string", Nullable: &nonNull})},
			"no sig":      {Type: "object", Properties: openapi.NewTriggerSchema()},
		},
		callbacks: map[string]string{
			"get-weather": "https://host/api/get-weather/triggers/manual/invoke?api-version=2022-05-01&sig=ABC",
			"no sig":      "https://host/api/no%20sig/triggers/manual/invoke?sv=1.0",
		},
	}
}

func TestLogicAppTools(t *testing.T) {
	src := newFakeSource(t)
	reg := &fakeRegistrar{}
	var exported []string
	p := &LogicApp{
		Workflows:   src,
		Connections: reg,
		Site:        "site",
		Export: func(ctx context.Context, wf string, doc *openapi.Document) error {
			exported = append(exported, wf+"@"+doc.ServerURL())
			return nil
		},
	}

	tools, err := p.Tools(context.Background())
	require.NoError(t, err)
	require.Len(t, tools, 2)
	assert.NotContains(t, src.calls, "schema nightly/Recurrence")

	assert.Equal(t, map[string]string{"sig": "ABC"}, reg.puts["openapi-logicapp-site-get-weather"])
	assert.Equal(t, map[string]string{"sig": ""}, reg.puts["openapi-logicapp-site-no sig"])

	defs, _ := tool.Collect(tools...)
	first := defs[0].OpenAPI
	assert.Equal(t, "get_weather", first.Name)
	assert.Equal(t, "get-weather OpenAPI tool", first.Description)
	assert.Equal(t, tool.ConnectionAuth("/connections/openapi-logicapp-site-get-weather"), first.Auth)
	spec := first.Spec.(map[string]any)
	assert.Equal(t, []any{map[string]any{"url": "https://host/api/get-weather/triggers/manual"}}, spec["servers"])
	assert.Equal(t, "no_sig", defs[1].OpenAPI.Name)

	assert.Equal(t, []string{
		"get-weather@https://host/api/get-weather/triggers/manual",
		"no sig@https://host/api/no%20sig/triggers/manual",
	}, exported)
}

func TestLogicAppTools_NoWorkflows(t *testing.T) {
	p := &LogicApp{Workflows: &fakeSource{}, Connections: &fakeRegistrar{}, Site: "site"}
	_, err := p.Tools(context.Background())
	assert.Error(t, err)
}

func TestLogicAppSpec_EmptyCallbackURL(t *testing.T) {
	src := newFakeSource(t)
	src.callbacks["get-weather"] = ""
	reg := &fakeRegistrar{}
	p := &LogicApp{Workflows: src, Connections: reg, Site: "site"}

	_, err := p.Spec(context.Background(), "get-weather", "")
	assert.ErrorContains(t, err, "workflow get-weather")

	_, err = p.Tools(context.Background())
	assert.Error(t, err)
	assert.Empty(t, reg.puts)
}

func TestLogicAppSpec(t *testing.T) {
	src := newFakeSource(t)
	p := &LogicApp{Workflows: src, Site: "site"}

	spec, err := p.Spec(context.Background(), "get-weather", "https://override")
	require.NoError(t, err)
	assert.Equal(t, "https://override", spec.Document.ServerURL())
	assert.NotContains(t, src.calls, "callback get-weather")
	assert.Equal(t, []string{"city"}, spec.Document.BodySchema().Required)

	spec, err = p.Spec(context.Background(), "get-weather", "")
	require.NoError(t, err)
	assert.Equal(t, "https://host/api/get-weather/triggers/manual", spec.Document.ServerURL())
	assert.Equal(t, "ABC", spec.Callback.Signature)

	_, err = p.Spec(context.Background(), "nightly", "")
	assert.ErrorContains(t, err, "no HTTP trigger")
	_, err = p.Spec(context.Background(), "missing", "")
	assert.ErrorContains(t, err, "not found")
}

func TestOpenAPIFileTool(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"openapi": "3.0.1",
		"info": {"title": "get weather data", "version": "v1.0.0"},
		"servers": [{"url": "https://wttr.in"}],
		"paths": {"/{location}": {"get": {"operationId": "GetCurrentWeather", "responses": {"200": {"description": "ok"}}}}}
	}`), 0o644))

	tl, err := OpenAPIFileTool(path, "http://localhost:9000", "WeatherAPI", "Retrieve weather information for a location")
	require.NoError(t, err)
	def := tl.Definitions()[0].OpenAPI
	assert.Equal(t, tool.AnonymousAuth(), def.Auth)
	assert.Equal(t, []any{map[string]any{"url": "http://localhost:9000"}}, def.Spec.(map[string]any)["servers"])

	tl, err = OpenAPIFileTool(path, "", "WeatherAPI", "")
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"url": "https://wttr.in"}}, tl.Definitions()[0].OpenAPI.Spec.(map[string]any)["servers"])
}

func TestMCPTool(t *testing.T) {
	discover := func(ctx context.Context, url string, headers map[string]string) ([]mcp.Tool, error) {
		assert.Equal(t, "https://mcp.example.com/mcp", url)
		return []mcp.Tool{{Name: "get_forecast"}, {Name: "get_alerts"}}, nil
	}

	tl, err := MCPTool(context.Background(), MCPOptions{
		ServerURL: "https://mcp.example.com/mcp",
		Label:     "tool",
		Approval:  tool.ApprovalNever,
		Discover:  discover,
	})
	require.NoError(t, err)
	def := tl.Definitions()[0]
	assert.Equal(t, []string{"get_forecast", "get_alerts"}, def.AllowedTools)
	assert.Equal(t, "never", def.RequireApproval)
	assert.Equal(t, "never", tl.Resources().MCP[0].RequireApproval)

	_, err = MCPTool(context.Background(), MCPOptions{Label: "tool"})
	assert.Error(t, err)
}

type fakeAgents struct {
	agents    []agent.Agent
	deleted   []string
	deleteErr map[string]error
}

func (f *fakeAgents) List(ctx context.Context) ([]agent.Agent, error) { return f.agents, nil }
func (f *fakeAgents) Create(ctx context.Context, def agent.Definition) (*agent.Agent, error) {
	return &agent.Agent{Name: def.Name}, nil
}
func (f *fakeAgents) Update(ctx context.Context, a agent.Agent, def agent.Definition) (*agent.Agent, error) {
	return &a, nil
}
func (f *fakeAgents) Delete(ctx context.Context, a agent.Agent) error {
	if err := f.deleteErr[a.ID]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, a.ID)
	return nil
}

func TestDeleteByName(t *testing.T) {
	svc := &fakeAgents{agents: []agent.Agent{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}, {ID: "3", Name: "a"}}}
	n, err := DeleteByName(context.Background(), svc, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"1", "3"}, svc.deleted)
}

func TestDeleteByName_AlreadyGone(t *testing.T) {
	svc := &fakeAgents{
		agents:    []agent.Agent{{ID: "1", Name: "a"}, {ID: "2", Name: "a"}},
		deleteErr: map[string]error{"1": &arm.ResponseError{Method: "DELETE", StatusCode: http.StatusNotFound}},
	}
	n, err := DeleteByName(context.Background(), svc, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"2"}, svc.deleted)

	svc = &fakeAgents{
		agents:    []agent.Agent{{ID: "1", Name: "a"}},
		deleteErr: map[string]error{"1": &arm.ResponseError{Method: "DELETE", StatusCode: http.StatusInternalServerError}},
	}
	_, err = DeleteByName(context.Background(), svc, "a")
	assert.Error(t, err)
}

func TestMCPTool_Headers(t *testing.T) {
	var seen map[string]string
	discover := func(ctx context.Context, url string, headers map[string]string) ([]mcp.Tool, error) {
		seen = headers
		return []mcp.Tool{{Name: "get_forecast"}}, nil
	}

	tl, err := MCPTool(context.Background(), MCPOptions{
		ServerURL: "https://mcp.example.com/mcp",
		Label:     "tool",
		Headers:   map[string]string{"x-api-key": "k"},
		Discover:  discover,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"x-api-key": "k"}, seen)
	assert.Equal(t, map[string]string{"x-api-key": "k"}, tl.Resources().MCP[0].Headers)
}

func TestPrintAgents(t *testing.T) {
	var buf bytes.Buffer
	PrintAgents(&buf, []agent.Agent{{ID: "asst_1", Name: "MCP-Agent", Description: "", Model: "gpt-4o"}})
	assert.Equal(t, "Agent ID: asst_1, Name: MCP-Agent, Description: , Deployment Name: gpt-4o\n", buf.String())
}

type fakeInvoker struct {
	opts    foundry.RunOptions
	message string
	updates []foundry.RunUpdate
	err     error
}

func (f *fakeInvoker) CreateThread(ctx context.Context) (*foundry.Thread, error) {
	return &foundry.Thread{ID: "thread_1"}, nil
}

func (f *fakeInvoker) AddMessage(ctx context.Context, threadID, content string) error {
	f.message = content
	return nil
}

func (f *fakeInvoker) StreamRun(ctx context.Context, threadID string, opts foundry.RunOptions, fn func(foundry.RunUpdate)) error {
	f.opts = opts
	for _, u := range f.updates {
		fn(u)
	}
	return f.err
}

func TestInvoke(t *testing.T) {
	inv := &fakeInvoker{updates: []foundry.RunUpdate{
		{Kind: foundry.UpdateToolCall, Tool: "get_forecast", Arguments: `{"city":"Cary, NC"}`},
		{Kind: foundry.UpdateToolResult, Tool: "get_forecast", Output: "72F"},
		{Kind: foundry.UpdateText, Text: "It's "},
		{Kind: foundry.UpdateText, Text: "72F."},
		{Kind: foundry.UpdateCompleted},
	}}

	var buf bytes.Buffer
	err := Invoke(context.Background(), inv, Invocation{
		Agent:                  agent.Agent{ID: "asst_1", Name: "MCP-Agent"},
		Message:                "what's the weather in Cary,NC?",
		AdditionalInstructions: "Today is 2026-10-17",
		Resources:              tool.NewMCP("tool", "u").SetApprovalMode(tool.ApprovalNever).Resources(),
	}, &buf)
	require.NoError(t, err)

	assert.Equal(t, "what's the weather in Cary,NC?", inv.message)
	assert.Equal(t, "asst_1", inv.opts.AgentID)
	assert.Equal(t, "Today is 2026-10-17", inv.opts.AdditionalInstructions)
	assert.Len(t, inv.opts.ToolResources.MCP, 1)
	assert.Equal(t,
		"Function Call:> get_forecast with arguments: {\"city\":\"Cary, NC\"}\n"+
			"Function Result:> 72F for function: get_forecast\n"+
			"MCP-Agent: It's 72F.\n",
		buf.String())
}

func TestInvoke_PropagatesRunError(t *testing.T) {
	inv := &fakeInvoker{
		updates: []foundry.RunUpdate{{Kind: foundry.UpdateText, Text: "partial"}},
		err:     &foundry.RunError{RunID: "r", Status: "failed"},
	}
	var buf bytes.Buffer
	err := Invoke(context.Background(), inv, Invocation{Agent: agent.Agent{Name: "A"}, Message: "hi"}, &buf)
	var re *foundry.RunError
	assert.ErrorAs(t, err, &re)
	assert.Equal(t, "A: partial\n", buf.String())
}
