package engine

import (
	"testing"
	"time"

	"github.com/ValentinKolb/kvql/lib/reply"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXAddIDs(t *testing.T) {
	clock, set := fixedClock(time.UnixMilli(1000))
	e := New(clock)

	id, err := e.XAdd("s", "*", "temp", "20")
	require.NoError(t, err)
	assert.Equal(t, reply.StreamEntryID{Time: 1000}, id)

	id, err = e.XAdd("s", "*", "temp", "21")
	require.NoError(t, err)
	assert.Equal(t, reply.StreamEntryID{Time: 1000, Sequence: 1}, id)

	set(time.UnixMilli(2000))
	id, err = e.XAdd("s", "*", "temp", "22")
	require.NoError(t, err)
	assert.Equal(t, reply.StreamEntryID{Time: 2000}, id)

	_, err = e.XAdd("s", "1500-0", "temp", "0")
	assert.ErrorIs(t, err, ErrStreamIDTooSmall)

	id, err = e.XAdd("s", "3000-5", "temp", "23")
	require.NoError(t, err)
	assert.Equal(t, "3000-5", id.String())

	_, err = e.XAdd("s", "*", "odd")
	assert.Error(t, err)

	n, err := e.XLen("s")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestXRangeAndRead(t *testing.T) {
	e := New()
	for _, id := range []string{"1-0", "1-1", "2-0"} {
		_, err := e.XAdd("s", id, "id", id)
		require.NoError(t, err)
	}

	entries, err := e.XRange("s", "-", "+", 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, map[string]string{"id": "1-0"}, entries[0].Fields)

	entries, err = e.XRange("s", "1", "1", 0)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = e.XRevRange("s", "+", "-", 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2-0", entries[0].ID.String())

	_, err = e.XRange("s", "x", "+", 0)
	assert.Error(t, err)

	reads, err := e.XRead(0, []string{"s", "missing"}, []string{"1-0", "0"})
	require.NoError(t, err)
	require.Len(t, reads, 1)
	assert.Equal(t, "s", reads[0].Key)
	assert.Len(t, reads[0].Entries, 2)

	reads, err = e.XRead(0, []string{"s"}, []string{"$"})
	require.NoError(t, err)
	assert.Empty(t, reads)

	_, err = e.XRead(0, []string{"s"}, nil)
	assert.Error(t, err)
}

func TestConsumerGroups(t *testing.T) {
	clock, set := fixedClock(time.UnixMilli(1000))
	e := New(clock)

	assert.Error(t, e.XGroupCreate("s", "g", "$", false))
	require.NoError(t, e.XGroupCreate("s", "g", "$", true))
	assert.Equal(t, "stream", e.Type("s"))
	assert.ErrorIs(t, e.XGroupCreate("s", "g", "0", false), ErrBusyGroup)

	for i := 0; i < 3; i++ {
		_, err := e.XAdd("s", "*", "n", "v")
		require.NoError(t, err)
	}

	created, err := e.XGroupCreateConsumer("s", "g", "idle")
	require.NoError(t, err)
	assert.True(t, created)
	created, err = e.XGroupCreateConsumer("s", "g", "idle")
	require.NoError(t, err)
	assert.False(t, created)

	_, err = e.XGroupCreateConsumer("s", "nope", "c")
	assert.ErrorIs(t, err, ErrNoGroup)

	reads, err := e.XReadGroup("g", "worker", 2, []string{"s"})
	require.NoError(t, err)
	require.Len(t, reads, 1)
	require.Len(t, reads[0].Entries, 2)

	acked, err := e.XAck("s", "g", reads[0].Entries[0].ID.String(), "9-9")
	require.NoError(t, err)
	assert.Equal(t, int64(1), acked)

	groups, err := e.XInfoGroups("s")
	require.NoError(t, err)
	assert.Equal(t, []reply.StreamGroupInfo{{
		Name:            "g",
		Consumers:       2,
		Pending:         1,
		LastDeliveredID: reply.StreamEntryID{Time: 1000, Sequence: 1},
	}}, groups)

	set(time.UnixMilli(1500))
	consumers, err := e.XInfoConsumers("s", "g")
	require.NoError(t, err)
	assert.Equal(t, []reply.StreamConsumersInfo{
		{Name: "idle", Idle: 500, Pending: 0},
		{Name: "worker", Idle: 500, Pending: 1},
	}, consumers)
}

func TestXInfoStream(t *testing.T) {
	e := New()

	_, err := e.XInfoStream("missing")
	assert.ErrorIs(t, err, ErrNoSuchKey)

	require.NoError(t, e.XGroupCreate("empty", "g", "$", true))
	info, err := e.XInfoStream("empty")
	require.NoError(t, err)
	assert.Equal(t, reply.StreamInfo{Groups: 1}, info)

	for _, id := range []string{"1-0", "1-1", "2-0"} {
		_, err := e.XAdd("s", id, "id", id)
		require.NoError(t, err)
	}
	info, err = e.XInfoStream("s")
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.Length)
	assert.Equal(t, int64(2), info.RadixTreeKeys)
	assert.Equal(t, int64(3), info.RadixTreeNodes)
	assert.Equal(t, "2-0", info.LastGeneratedID.String())
	require.NotNil(t, info.FirstEntry)
	assert.Equal(t, "1-0", info.FirstEntry.ID.String())
	require.NotNil(t, info.LastEntry)
	assert.Equal(t, "2-0", info.LastEntry.ID.String())
}
