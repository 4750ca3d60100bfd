package telemetry

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/awantoch/foundryflow/config"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	ctx := context.Background()

	shutdown, err := Init(ctx, &config.Config{})
	require.NoError(t, err)
	assert.NoError(t, shutdown(ctx))

	shutdown, err = Init(ctx, &config.Config{Tracing: &config.TracingConfig{Exporter: "stdout", ServiceName: "test"}})
	require.NoError(t, err)
	assert.NoError(t, shutdown(ctx))

	shutdown, err = Init(ctx, &config.Config{Tracing: &config.TracingConfig{Exporter: "otlp", Endpoint: "http://localhost:4318"}})
	require.NoError(t, err)
	assert.NotNil(t, shutdown)

	_, err = Init(ctx, &config.Config{Tracing: &config.TracingConfig{Exporter: "carrier-pigeon"}})
	assert.Error(t, err)
}

func TestInstrumentTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/missing") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	m := NewMetrics()
	client := &http.Client{Transport: m.InstrumentTransport("arm", nil)}

	for _, path := range []string{"/a", "/b", "/missing"} {
		resp, err := client.Get(server.URL + path)
		require.NoError(t, err)
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("arm", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("arm", "GET", "404")))
}

func TestRecordUpsert(t *testing.T) {
	m := NewMetrics()
	m.RecordUpsert("created")
	m.RecordUpsert("created")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.upsertsTotal.WithLabelValues("created")))
}

func TestPush(t *testing.T) {
	var gotPath string
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer gateway.Close()

	m := NewMetrics()
	m.RecordUpsert("updated")
	require.NoError(t, m.Push(context.Background(), gateway.URL, "provision"))
	assert.Equal(t, "/metrics/job/provision", gotPath)

	assert.NoError(t, m.Push(context.Background(), "", "x"))
}
