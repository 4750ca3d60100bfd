package foundry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/awantoch/foundryflow/agent"
	"github.com/awantoch/foundryflow/arm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const namedAgentJSON = `{"id":"MyV2Agent:3","name":"MyV2Agent","versions":{"latest":{"version":"3","definition":{"kind":"prompt","model":"gw/gpt-4o"}}}}`

func newAgentsV2Client(t *testing.T, h http.HandlerFunc) *AgentsV2Client {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return NewAgentsV2Client(arm.NewClient(server.Client(), server.URL), "2025-11-15-preview")
}

func TestAgentsV2Client_List(t *testing.T) {
	c := newAgentsV2Client(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/agents", r.URL.Path)
		assert.Equal(t, "2025-11-15-preview", r.URL.Query().Get("api-version"))
		w.Write([]byte(`{"data":[` + namedAgentJSON + `],"has_more":false}`))
	})

	agents, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []agent.Agent{{ID: "MyV2Agent:3", Name: "MyV2Agent", Model: "gw/gpt-4o", Version: "3"}}, agents)
}

func TestAgentsV2Client_CreateSendsPromptDefinition(t *testing.T) {
	c := newAgentsV2Client(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/agents", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		b, _ := json.Marshal(body)
		assert.JSONEq(t, `{"name":"MyV2Agent","definition":{"kind":"prompt","model":"gw/gpt-4o","instructions":"hi","tools":[]}}`, string(b))
		w.Write([]byte(namedAgentJSON))
	})

	a, err := c.Create(context.Background(), agent.Definition{Name: "MyV2Agent", Model: "gw/gpt-4o", Instructions: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "3", a.Version)
}

func TestAgentsV2Client_UpdateAndDeleteByName(t *testing.T) {
	var methods []string
	c := newAgentsV2Client(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/agents/MyV2Agent", r.URL.Path)
		methods = append(methods, r.Method)
		if r.Method == http.MethodPost {
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.NotContains(t, body, "name")
			assert.Contains(t, body, "definition")
			w.Write([]byte(namedAgentJSON))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	existing := agent.Agent{ID: "MyV2Agent:2", Name: "MyV2Agent"}
	_, err := c.Update(context.Background(), existing, agent.Definition{Name: "MyV2Agent", Model: "m"})
	require.NoError(t, err)
	require.NoError(t, c.Delete(context.Background(), existing))
	assert.Equal(t, []string{http.MethodPost, http.MethodDelete}, methods)
}
