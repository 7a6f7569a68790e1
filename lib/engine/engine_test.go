package engine

import (
	"math"
	"testing"
	"time"

	"github.com/ValentinKolb/kvql/lib/reply"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock returns an engine option and a setter for the engine's clock.
func fixedClock(start time.Time) (Option, func(time.Time)) {
	now := start
	return WithClock(func() time.Time { return now }), func(t time.Time) { now = t }
}

func TestKeyspace(t *testing.T) {
	e := New()
	for _, k := range []string{"c", "a", "e", "b", "d"} {
		e.Set(k, "v"+k)
	}

	assert.Equal(t, int64(5), e.DBSize())
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, e.Keys("*"))
	assert.Equal(t, []string{"b"}, e.Keys("b"))
	assert.Equal(t, "string", e.Type("a"))
	assert.Equal(t, "none", e.Type("missing"))
	assert.Equal(t, int64(3), e.Exists("a", "a", "b", "missing"))

	value, found, err := e.Get("c")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "vc", value)

	assert.Equal(t, int64(2), e.Del("a", "b", "missing"))
	e.FlushAll()
	assert.Equal(t, int64(0), e.DBSize())
}

func TestScanPages(t *testing.T) {
	e := New()
	for _, k := range []string{"a", "b", "c", "d", "e"} {
		e.Set(k, k)
	}

	tests := []struct {
		cursor     uint64
		wantCursor string
		want       []string
	}{
		{0, "2", []string{"a", "b"}},
		{2, "4", []string{"c", "d"}},
		{4, reply.ScanStartCursor, []string{"e"}},
		{9, reply.ScanStartCursor, []string{}},
	}
	for _, tt := range tests {
		page := e.Scan(tt.cursor, "", 2)
		assert.Equal(t, tt.wantCursor, page.Cursor, "cursor %d", tt.cursor)
		assert.Equal(t, tt.want, page.Results, "cursor %d", tt.cursor)
	}

	page := e.Scan(0, "[ce]", 10)
	assert.Equal(t, []string{"c", "e"}, page.Results)
	assert.Equal(t, reply.ScanStartCursor, page.Cursor)

	// COUNT is only a hint, the page never reserves more than the keyspace
	page = e.Scan(0, "", math.MaxInt)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, page.Results)
	assert.Equal(t, 5, cap(page.Results))
	assert.Equal(t, reply.ScanStartCursor, page.Cursor)
}

func TestWrongType(t *testing.T) {
	e := New()
	e.Set("k", "v")

	_, err := e.LPush("k", "x")
	assert.ErrorIs(t, err, ErrWrongType)
	_, err = e.HGetAll("k")
	assert.ErrorIs(t, err, ErrWrongType)
	_, err = e.XInfoStream("k")
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestPing(t *testing.T) {
	e := New()
	assert.Equal(t, "PONG", e.Ping(""))
	assert.Equal(t, "hi", e.Ping("hi"))
	assert.Equal(t, "hi", e.Echo("hi"))
}

func TestNormalizeRange(t *testing.T) {
	tests := []struct {
		start, stop int64
		n           int
		from, to    int
	}{
		{0, -1, 3, 0, 3},
		{1, 1, 3, 1, 2},
		{-2, -1, 3, 1, 3},
		{0, 100, 3, 0, 3},
		{-100, 0, 3, 0, 1},
		{2, 1, 3, 0, 0},
		{5, 7, 3, 0, 0},
		{0, -1, 0, 0, 0},
	}
	for _, tt := range tests {
		from, to := normalizeRange(tt.start, tt.stop, tt.n)
		assert.Equal(t, tt.from, from, "%d..%d of %d", tt.start, tt.stop, tt.n)
		assert.Equal(t, tt.to, to, "%d..%d of %d", tt.start, tt.stop, tt.n)
	}
}
