package engine

import (
	"testing"

	"github.com/ValentinKolb/kvql/lib/reply"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	e := New()

	added, err := e.HSet("h", "b", "2", "a", "1", "c", "3")
	require.NoError(t, err)
	assert.Equal(t, int64(3), added)

	added, err = e.HSet("h", "a", "10")
	require.NoError(t, err)
	assert.Equal(t, int64(0), added)

	value, found, err := e.HGet("h", "a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "10", value)

	_, err = e.HSet("h", "odd")
	assert.Error(t, err)

	all, err := e.HGetAll("h")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "10", "b": "2", "c": "3"}, all)

	page, err := e.HScan("h", 0, "", 2)
	require.NoError(t, err)
	assert.Equal(t, "2", page.Cursor)
	assert.Equal(t, []reply.HashEntry{{Field: "a", Value: "10"}, {Field: "b", Value: "2"}}, page.Results)

	page, err = e.HScan("h", 2, "", 2)
	require.NoError(t, err)
	assert.Equal(t, reply.ScanStartCursor, page.Cursor)
	assert.Equal(t, []reply.HashEntry{{Field: "c", Value: "3"}}, page.Results)
}

func TestList(t *testing.T) {
	e := New()

	n, err := e.LPush("l", "a", "b", "c")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	n, err = e.RPush("l", "d")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	values, err := e.LRange("l", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a", "d"}, values)

	values, err = e.LRange("missing", 0, -1)
	require.NoError(t, err)
	assert.Empty(t, values)

	popped, err := e.BLPop("missing", "l")
	require.NoError(t, err)
	assert.Equal(t, &reply.KeyedListElement{Key: "l", Element: "c"}, popped)

	popped, err = e.BLPop("missing")
	require.NoError(t, err)
	assert.Nil(t, popped)
}

func TestListRemovedWhenEmpty(t *testing.T) {
	e := New()
	_, err := e.RPush("l", "only")
	require.NoError(t, err)

	_, err = e.BLPop("l")
	require.NoError(t, err)
	assert.Equal(t, int64(0), e.Exists("l"))
}

func TestSortedSet(t *testing.T) {
	e := New()

	added, err := e.ZAdd("z",
		reply.Tuple{Element: "b", Score: 2},
		reply.Tuple{Element: "a", Score: 1},
		reply.Tuple{Element: "c", Score: 2},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(3), added)

	tuples, err := e.ZRange("z", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []reply.Tuple{{Element: "a", Score: 1}, {Element: "b", Score: 2}, {Element: "c", Score: 2}}, tuples)

	page, err := e.ZScan("z", 0, "[ab]", 10)
	require.NoError(t, err)
	assert.Equal(t, []reply.Tuple{{Element: "a", Score: 1}, {Element: "b", Score: 2}}, page.Results)

	popped, err := e.ZPopMax("z", 2)
	require.NoError(t, err)
	assert.Equal(t, []reply.Tuple{{Element: "c", Score: 2}, {Element: "b", Score: 2}}, popped)

	keyed, err := e.BZPopMax("empty", "z")
	require.NoError(t, err)
	assert.Equal(t, &reply.KeyedZSetElement{Key: "z", Element: "a", Score: 1}, keyed)
	assert.Equal(t, "none", e.Type("z"))

	keyed, err = e.BZPopMax("z")
	require.NoError(t, err)
	assert.Nil(t, keyed)
}
