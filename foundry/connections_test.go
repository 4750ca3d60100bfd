package foundry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/awantoch/foundryflow/arm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const connectionsBase = "/subscriptions/sub/resourceGroups/rg/providers/Microsoft.CognitiveServices/accounts/acct/projects/proj/connections"

func newConnectionsClient(t *testing.T, h http.HandlerFunc) *ConnectionsClient {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return NewConnectionsClient(arm.NewClient(server.Client(), server.URL), "sub", "rg", "acct", "proj")
}

func TestPutCustomKeys(t *testing.T) {
	c := newConnectionsClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, connectionsBase+"/openapi-logicapp-site-weather", r.URL.Path)
		assert.Equal(t, "2025-04-01-preview", r.URL.Query().Get("api-version"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		b, _ := json.Marshal(body)
		assert.JSONEq(t, `{"properties":{
			"authType":"CustomKeys","category":"CustomKeys","target":"_","isSharedToAll":true,
			"credentials":{"keys":{"sig":"ABC"}},"metadata":{}}}`, string(b))

		w.Write([]byte(`{"id":"/subscriptions/sub/connections/openapi-logicapp-site-weather","name":"openapi-logicapp-site-weather"}`))
	})

	id, err := c.PutCustomKeys(context.Background(), ConnectionName("site", "weather"), map[string]string{"sig": "ABC"})
	require.NoError(t, err)
	assert.Equal(t, "/subscriptions/sub/connections/openapi-logicapp-site-weather", id)
}

func TestPutCustomKeys_MissingID(t *testing.T) {
	c := newConnectionsClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := c.PutCustomKeys(context.Background(), "x", nil)
	assert.ErrorContains(t, err, "no id")
}

func TestListConnections_FollowsNextLink(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			w.Write([]byte(`{"value":[{"id":"2","name":"b","properties":{"category":"CustomKeys"}}]}`))
			return
		}
		assert.Equal(t, connectionsBase, r.URL.Path)
		w.Write([]byte(`{"value":[{"id":"1","name":"a","properties":{"category":"AzureOpenAI","isDefault":true}}],
			"nextLink":"` + server.URL + connectionsBase + `?page=2"}`))
	}))
	defer server.Close()

	c := NewConnectionsClient(arm.NewClient(server.Client(), server.URL), "sub", "rg", "acct", "proj")
	conns, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, conns, 2)
	assert.Equal(t, "a", conns[0].Name)
	assert.True(t, conns[0].Properties.IsDefault)
	assert.Equal(t, "CustomKeys", conns[1].Properties.Category)
}

func TestConnectionName(t *testing.T) {
	assert.Equal(t, "openapi-logicapp-myapp-get_weather", ConnectionName("myapp", "get_weather"))
}
