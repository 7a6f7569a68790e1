package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ValentinKolb/kvql/lib/dispatch"
	"github.com/ValentinKolb/kvql/lib/engine"
	"github.com/ValentinKolb/kvql/lib/result"
	"github.com/ValentinKolb/kvql/rpc/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer starts a server backed by an in-memory engine
func newTestServer(t *testing.T, config common.ServerConfig) *httptest.Server {
	t.Helper()
	executor := dispatch.NewExecutor(engine.New())

	st := &httpServerTransport{config: config}
	st.RegisterHandler(executor.Execute)

	srv := httptest.NewServer(st.routes())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string, header map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url+"/query", strings.NewReader(body))
	require.NoError(t, err)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestServerQuery(t *testing.T) {
	srv := newTestServer(t, common.ServerConfig{})

	resp := post(t, srv.URL, "SET greeting hello", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	resp = post(t, srv.URL, "get greeting", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t,
		`{"query":{"verb":"GET","params":["greeting"]},"type":"list","result":["hello"]}`,
		readBody(t, resp))

	resp = post(t, srv.URL, "GET greeting", map[string]string{"Accept": "application/yaml"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/yaml", resp.Header.Get("Content-Type"))
	assert.Contains(t, readBody(t, resp), "type: list\n")
}

func TestServerErrors(t *testing.T) {
	srv := newTestServer(t, common.ServerConfig{MaxQueryBytes: 64})

	tests := []struct {
		name   string
		body   string
		status int
		kind   string
	}{
		{"Empty", "   ", http.StatusBadRequest, "parse"},
		{"UnknownCommand", "FROBNICATE x", http.StatusBadRequest, "parse"},
		{"MissingKeyword", "CLIENT", http.StatusBadRequest, "parse"},
		{"Unsupported", "CLUSTER NODES", http.StatusUnprocessableEntity, "unsupported"},
		{"Syntax", "GET", http.StatusUnprocessableEntity, "syntax"},
		{"TooLarge", "ECHO " + strings.Repeat("x", 100), http.StatusRequestEntityTooLarge, "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL, tt.body, nil)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, readBody(t, resp), `"kind":"`+tt.kind+`"`)
		})
	}
}

func TestServerTimeout(t *testing.T) {
	st := &httpServerTransport{config: common.ServerConfig{TimeoutSecond: 1}}
	st.RegisterHandler(func(ctx context.Context, _ string) (result.Result, error) {
		<-ctx.Done()
		return result.Result{}, ctx.Err()
	})
	srv := httptest.NewServer(st.routes())
	defer srv.Close()

	resp := post(t, srv.URL, "PING", nil)
	assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)
}

func TestRequestID(t *testing.T) {
	srv := newTestServer(t, common.ServerConfig{})

	resp := post(t, srv.URL, "PING", map[string]string{HeaderRequestID: "my-id"})
	assert.Equal(t, "my-id", resp.Header.Get(HeaderRequestID))

	resp = post(t, srv.URL, "PING", nil)
	_, err := uuid.Parse(resp.Header.Get(HeaderRequestID))
	assert.NoError(t, err)

	resp = post(t, srv.URL, "", map[string]string{HeaderRequestID: "failing"})
	assert.Contains(t, readBody(t, resp), `"request_id":"failing"`)
}

func TestMetricsAndHealth(t *testing.T) {
	srv := newTestServer(t, common.ServerConfig{})
	post(t, srv.URL, "PING", nil)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body := readBody(t, resp)
	assert.Contains(t, body, `kvql_http_responses_total{status="200"}`)
	assert.Contains(t, body, `kvql_queries_total{command="PING"}`)

	resp, err = http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/query")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFor(common.ErrKParse))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusFor(common.ErrKUnsupported))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusFor(common.ErrKSyntax))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusFor(common.ErrKCommand))
	assert.Equal(t, http.StatusGatewayTimeout, StatusFor(common.ErrKTimeout))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(common.ErrKInternal))
}

func TestClient(t *testing.T) {
	srv := newTestServer(t, common.ServerConfig{})

	// the first attempt goes to the second endpoint, which refuses connections
	ct := NewHttpClientTransport()
	require.NoError(t, ct.Connect(common.ClientConfig{
		Endpoints:     []string{srv.URL, "http://127.0.0.1:1"},
		TimeoutSecond: 5,
		RetryCount:    2,
		Format:        "json",
	}))
	defer ct.Close()

	body, err := ct.Send(context.Background(), "ECHO hi")
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":{"verb":"ECHO","params":["hi"]},"type":"list","result":["hi"]}`, string(body))

	_, err = ct.Send(context.Background(), "CLUSTER NODES")
	var remote *common.RemoteError
	require.True(t, errors.As(err, &remote), "got %v", err)
	assert.Equal(t, http.StatusUnprocessableEntity, remote.StatusCode)
	assert.Equal(t, "unsupported", remote.Response.Kind)
}

func TestClientYAML(t *testing.T) {
	srv := newTestServer(t, common.ServerConfig{})

	ct := NewHttpClientTransport()
	require.NoError(t, ct.Connect(common.ClientConfig{Endpoints: []string{srv.URL}, TimeoutSecond: 5, Format: "yaml"}))
	defer ct.Close()

	body, err := ct.Send(context.Background(), "PING")
	require.NoError(t, err)
	assert.Contains(t, string(body), "verb: PING\n")

	_, err = ct.Send(context.Background(), "")
	var remote *common.RemoteError
	require.True(t, errors.As(err, &remote), "got %v", err)
	assert.Equal(t, http.StatusBadRequest, remote.StatusCode)
	assert.Equal(t, "parse", remote.Response.Kind)
	assert.Equal(t, "empty query", remote.Response.Error)
}

func TestClientConnect(t *testing.T) {
	tests := []struct {
		name   string
		config common.ClientConfig
	}{
		{"NoEndpoints", common.ClientConfig{Format: "json"}},
		{"NoScheme", common.ClientConfig{Endpoints: []string{"localhost:8080"}, Format: "json"}},
		{"BadFormat", common.ClientConfig{Endpoints: []string{"http://localhost:8080"}, Format: "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, NewHttpClientTransport().Connect(tt.config))
		})
	}

	_, err := NewHttpClientTransport().Send(context.Background(), "PING")
	assert.Error(t, err)
}
