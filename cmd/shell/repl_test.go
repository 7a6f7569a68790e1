package shell

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ValentinKolb/kvql/lib/dispatch"
	"github.com/ValentinKolb/kvql/lib/engine"
	"github.com/ValentinKolb/kvql/rpc/serializer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newREPL(prompt string) *REPL {
	return &REPL{
		Executor:   dispatch.NewExecutor(engine.New()),
		Serializer: serializer.NewJSONSerializer(),
		Prompt:     prompt,
	}
}

func TestREPL(t *testing.T) {
	in := strings.NewReader("set a 1\n\nget a\nfrobnicate\nGET\nquit\nGET a\n")
	var out bytes.Buffer

	require.NoError(t, newREPL("").Run(context.Background(), in, &out))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.JSONEq(t, `{"query":{"verb":"SET","params":["a","1"]},"type":"list","result":["OK"]}`, lines[0])
	assert.JSONEq(t, `{"query":{"verb":"GET","params":["a"]},"type":"list","result":["1"]}`, lines[1])
	assert.Equal(t, "(error) parse: query contains an unknown command: frobnicate", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "(error) syntax: "), lines[3])
}

func TestREPLPrompt(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, newREPL("> ").Run(context.Background(), strings.NewReader("PING\n"), &out))
	assert.True(t, strings.HasPrefix(out.String(), "> {"), out.String())
	assert.True(t, strings.HasSuffix(out.String(), "\n> "), out.String())
}

func TestREPLYAML(t *testing.T) {
	r := newREPL("")
	r.Serializer = serializer.NewYAMLSerializer()

	var out bytes.Buffer
	require.NoError(t, r.Run(context.Background(), strings.NewReader("ECHO hi"), &out))
	assert.Contains(t, out.String(), "type: list\n")
	assert.Contains(t, out.String(), "- hi\n")
}
