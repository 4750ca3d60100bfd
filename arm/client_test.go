package arm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetDecodesJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/subscriptions/s/resourceGroups/rg", r.URL.Path)
		assert.Equal(t, "2018-11-01", r.URL.Query().Get("api-version"))
		assert.NotEmpty(t, r.Header.Get("x-ms-client-request-id"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{"name":"wf"}`))
	}))
	defer server.Close()

	c := NewClient(server.Client(), server.URL+"/")
	var out struct {
		Name string `json:"name"`
	}
	err := c.Get(context.Background(), c.URL(ResourceGroupPath("s", "rg"), APIVersion("2018-11-01")), &out)
	require.NoError(t, err)
	assert.Equal(t, "wf", out.Name)
}

func TestClient_PutSendsJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "v", body["k"])
		w.Write([]byte(`{"id":"/x/y"}`))
	}))
	defer server.Close()

	c := NewClient(server.Client(), server.URL)
	var out map[string]any
	require.NoError(t, c.Put(context.Background(), c.URL("/conn", nil), map[string]string{"k": "v"}, &out))
	assert.Equal(t, "/x/y", out["id"])
}

func TestClient_EmptyBodyAndNilOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := NewClient(server.Client(), server.URL)
	assert.NoError(t, c.Delete(context.Background(), c.URL("/a", nil)))

	var out map[string]any
	assert.NoError(t, c.Post(context.Background(), c.URL("/a", nil), nil, &out))
	assert.Nil(t, out)
}

func TestClient_Non2xxReturnsResponseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"code":"ResourceNotFound","message":"site missing"}}`))
	}))
	defer server.Close()

	c := NewClient(server.Client(), server.URL)
	err := c.Get(context.Background(), c.URL("/missing", nil), nil)
	require.Error(t, err)

	var re *ResponseError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, http.StatusNotFound, re.StatusCode)
	assert.Equal(t, "ResourceNotFound", re.Code)
	assert.Equal(t, "site missing", re.Message)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "404")
}

func TestClient_Non2xxPlainBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	c := NewClient(server.Client(), server.URL)
	err := c.Post(context.Background(), c.URL("/x", nil), map[string]any{}, nil)
	var re *ResponseError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusForbidden, re.StatusCode)
	assert.Empty(t, re.Code)
	assert.Contains(t, re.Error(), "nope")
	assert.False(t, IsNotFound(err))
}

func TestClient_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	c := NewClient(server.Client(), server.URL)
	var out map[string]any
	assert.Error(t, c.Get(context.Background(), c.URL("/x", nil), &out))
}

func TestClient_Stream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))
		w.Write([]byte("event: done\ndata: [DONE]\n\n"))
	}))
	defer server.Close()

	c := NewClient(server.Client(), server.URL)
	body, err := c.Stream(context.Background(), http.MethodPost, c.URL("/runs", nil), map[string]any{"stream": true})
	require.NoError(t, err)
	defer body.Close()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DONE]")
}

func TestURL(t *testing.T) {
	c := NewClient(nil, "https://management.azure.com/")
	assert.Equal(t, "https://management.azure.com", c.BaseURL())
	assert.Equal(t, "https://management.azure.com/a/b?api-version=1", c.URL("a/b", url.Values{"api-version": {"1"}}))
	assert.Equal(t, "https://management.azure.com/a", c.URL("/a", nil))
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "https://h/p?a=1", redact("https://h/p?a=1"))
	assert.NotContains(t, redact("https://h/p?sig=SECRET&sv=1.0"), "SECRET")
}

func TestResourceGroupPath(t *testing.T) {
	assert.Equal(t, "/subscriptions/s%2F1/resourceGroups/rg", ResourceGroupPath("s/1", "rg"))
}
