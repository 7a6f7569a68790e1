package cmd

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ValentinKolb/kvql/lib/dispatch"
	"github.com/ValentinKolb/kvql/lib/engine"
	"github.com/ValentinKolb/kvql/rpc/common"
	"github.com/ValentinKolb/kvql/rpc/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command. Flags keep their values between runs, so
// every call sets the output format explicitly.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetIn(strings.NewReader(stdin))
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "kvql v"+Version+"\n", out)
}

func TestParse(t *testing.T) {
	out, err := run(t, "", "parse", "--output", "json", "client", "kill", "id", "7")
	require.NoError(t, err)
	assert.JSONEq(t, `{"verb":"CLIENT","sub_verb":"KILL","params":["id","7"]}`, out)

	out, err = run(t, "", "parse", "--output", "yaml", "GET key")
	require.NoError(t, err)
	assert.Equal(t, "verb: GET\nparams:\n  - key\n", out)

	_, err = run(t, "", "parse", "--output", "json", "CONFIG")
	assert.Error(t, err)
}

func TestShell(t *testing.T) {
	out, err := run(t, "HSET h a 1\nHGETALL h\n", "shell", "--output", "json", "--prompt", "")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"query":{"verb":"HGETALL","params":["h"]},"type":"map","result":{"a":"1"}}`, lines[1])
}

func TestQuery(t *testing.T) {
	executor := dispatch.NewExecutor(engine.New())
	srv := httptest.NewServer(http.NewHandler(executor.Execute, common.ServerConfig{}))
	defer srv.Close()

	_, err := run(t, "", "query", "--output", "json", "--endpoints", srv.URL, "SADD", "s", "a")
	assert.Error(t, err)

	out, err := run(t, "", "query", "--output", "json", "--endpoints", srv.URL, "ECHO", "hello")
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":{"verb":"ECHO","params":["hello"]},"type":"list","result":["hello"]}`, out)

	out, err = run(t, "", "query", "--output", "json-pretty", "--endpoints", srv.URL, "ECHO", "hello")
	require.NoError(t, err)
	assert.Contains(t, out, "\n  \"type\": \"list\",\n")
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := run(t, "", "version", "--log-level", "loud")
	assert.Error(t, err)
	_, err = run(t, "", "version", "--log-level", "warn")
	assert.NoError(t, err)
}
