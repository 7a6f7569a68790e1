package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerbWithoutSubVerb(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Query
	}{
		{
			name:     "Verb only",
			raw:      "PING",
			expected: Query{Verb: VerbPing, Params: []string{}},
		},
		{
			name:     "Verb with params",
			raw:      "SET user:1 Alice",
			expected: Query{Verb: VerbSet, Params: []string{"user:1", "Alice"}},
		},
		{
			name:     "Runs of whitespace",
			raw:      "  ZRANGE\tboard   0 \n -1  WITHSCORES ",
			expected: Query{Verb: VerbZRange, Params: []string{"board", "0", "-1", "WITHSCORES"}},
		},
		{
			name:     "Keyword-like second token is a param",
			raw:      "GET nodes",
			expected: Query{Verb: VerbGet, Params: []string{"nodes"}},
		},
		{
			name:     "Underscore verb",
			raw:      "georadius_ro geo 13 38 100 km",
			expected: Query{Verb: VerbGeoRadiusRO, Params: []string{"geo", "13", "38", "100", "km"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, q)
			assert.False(t, q.HasSubVerb())
		})
	}
}

func TestParseParamsKeepCase(t *testing.T) {
	q, err := Parse("hset Users:1 Name ALICE")
	require.NoError(t, err)
	assert.Equal(t, []string{"Users:1", "Name", "ALICE"}, q.Params)
}

func TestParseEveryVerb(t *testing.T) {
	vocab := DefaultVocabulary()
	for _, verb := range Verbs() {
		if vocab.RequiresSubVerb(verb) {
			continue
		}
		q, err := Parse(string(verb) + " a b c")
		require.NoError(t, err, "verb %s", verb)
		assert.Equal(t, Query{Verb: verb, Params: []string{"a", "b", "c"}}, q)
	}
}

func TestParseSubVerb(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Query
	}{
		{
			name:     "Cluster nodes",
			raw:      "CLUSTER NODES",
			expected: Query{Verb: VerbCluster, SubVerb: SubVerbNodes, Params: []string{}},
		},
		{
			name:     "Lower case",
			raw:      "config get maxmemory",
			expected: Query{Verb: VerbConfig, SubVerb: SubVerbGet, Params: []string{"maxmemory"}},
		},
		{
			name:     "Hyphenated sub-verb",
			raw:      "memory malloc-stats",
			expected: Query{Verb: VerbMemory, SubVerb: SubVerbMallocStats, Params: []string{}},
		},
		{
			name:     "Params after sub-verb",
			raw:      "XGROUP CREATE orders workers $ MKSTREAM",
			expected: Query{Verb: VerbXGroup, SubVerb: SubVerbCreate, Params: []string{"orders", "workers", "$", "MKSTREAM"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, q)
			assert.True(t, q.HasSubVerb())
		})
	}
}

func TestParseMissingKeyword(t *testing.T) {
	for _, verb := range VerbsRequiringSubVerb() {
		t.Run(string(verb), func(t *testing.T) {
			_, err := Parse(string(verb))
			require.ErrorIs(t, err, ErrMissingKeyword)

			var qErr *Error
			require.True(t, errors.As(err, &qErr))
			assert.Equal(t, verb, qErr.Verb)
		})
	}
}

func TestParseUnknownKeyword(t *testing.T) {
	for _, verb := range VerbsRequiringSubVerb() {
		t.Run(string(verb), func(t *testing.T) {
			_, err := Parse(string(verb) + " bogus extra")
			require.ErrorIs(t, err, ErrUnknownKeyword)

			var qErr *Error
			require.True(t, errors.As(err, &qErr))
			assert.Equal(t, verb, qErr.Verb)
			assert.Equal(t, "bogus", qErr.Token)
		})
	}
}

func TestParseEmpty(t *testing.T) {
	for _, raw := range []string{"", " ", "\t\n  "} {
		_, err := Parse(raw)
		require.ErrorIs(t, err, ErrEmptyQuery)
		assert.EqualError(t, err, "empty query")
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("SELECTX * FROM foo")
	require.ErrorIs(t, err, ErrUnknownCommand)
	assert.EqualError(t, err, "query contains an unknown command: SELECTX")
	assert.False(t, errors.Is(err, ErrEmptyQuery))
}

func TestParseCaseInsensitive(t *testing.T) {
	expected := Query{Verb: VerbGet, Params: []string{"foo"}}
	for _, raw := range []string{"get foo", "GET foo", "Get foo", "gEt foo"} {
		q, err := Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, expected, q, raw)
	}
}

func TestParseEndToEnd(t *testing.T) {
	q, err := Parse("CLUSTER NODES")
	require.NoError(t, err)
	assert.Equal(t, Query{Verb: VerbCluster, SubVerb: SubVerbNodes, Params: []string{}}, q)

	_, err = Parse("cluster")
	require.ErrorIs(t, err, ErrMissingKeyword)
	assert.EqualError(t, err, "query does not contain a keyword for the command CLUSTER")

	_, err = Parse("")
	require.ErrorIs(t, err, ErrEmptyQuery)
}

func TestNormalizerCustomVocabulary(t *testing.T) {
	n := NewNormalizer(NewVocabulary(
		[]Verb{VerbGet, VerbConfig},
		[]SubVerb{SubVerbGet},
		[]Verb{VerbConfig},
	))

	q, err := n.Parse("config get port")
	require.NoError(t, err)
	assert.Equal(t, Query{Verb: VerbConfig, SubVerb: SubVerbGet, Params: []string{"port"}}, q)

	_, err = n.Parse("SET a b")
	require.ErrorIs(t, err, ErrUnknownCommand)

	_, err = n.Parse("CONFIG SET port 1")
	require.ErrorIs(t, err, ErrUnknownKeyword)
}

func TestQueryString(t *testing.T) {
	q, err := Parse("config   set maxmemory 10mb")
	require.NoError(t, err)
	assert.Equal(t, "CONFIG SET maxmemory 10mb", q.String())
}
