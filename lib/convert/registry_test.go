package convert

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"github.com/ValentinKolb/kvql/lib/reply"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nativeSamples holds one native reply per converter key.
var nativeSamples = newNativeSamples()

// newNativeSamples builds a fresh set of samples, nothing is shared between
// two calls.
func newNativeSamples() map[Key]any {
	return map[Key]any{
		KeyPlain:         []string{"a", "b"},
		KeyStreamEntryID: reply.StreamEntryID{Time: 1, Sequence: 2},
		KeyTuple:         reply.Tuple{Element: "alice", Score: 12.5},
		KeyKeyedListElement: reply.KeyedListElement{
			Key: "jobs", Element: "job-1",
		},
		KeyKeyedZSetElement: reply.KeyedZSetElement{
			Key: "board", Element: "bob", Score: 3,
		},
		KeyHashEntry:     reply.HashEntry{Field: "name", Value: "Alice"},
		KeyGeoCoordinate: reply.GeoCoordinate{Longitude: 13.36, Latitude: 38.11},
		KeyGeoRadius: reply.GeoRadiusResponse{
			Member: "Palermo", Distance: 190.44,
			Coordinate: &reply.GeoCoordinate{Longitude: 13.36, Latitude: 38.11},
			RawScore:   3479099956230698,
		},
		KeyModule: reply.Module{Name: "search", Version: 20405},
		KeyAccessControlUser: reply.AccessControlUser{
			Flags: []string{"on"}, Keys: []string{"~*"}, Passwords: []string{}, Commands: "+@all",
		},
		KeyAccessControlLogEntry: reply.AccessControlLogEntry{
			Count: 1, Reason: "auth", Context: "toplevel", Object: "AUTH",
			Username: "someuser", AgeSeconds: 4.2,
			ClientInfo: map[string]string{"id": "6", "addr": "127.0.0.1:63026"},
		},
		KeyStreamEntry: reply.StreamEntry{
			ID: reply.StreamEntryID{Time: 1}, Fields: map[string]string{"temp": "21"},
		},
		KeyStreamRead: reply.StreamRead{
			Key:     "sensors",
			Entries: []reply.StreamEntry{{ID: reply.StreamEntryID{Time: 1}, Fields: map[string]string{"temp": "21"}}},
		},
		KeyStreamInfo: reply.StreamInfo{Length: 0, LastGeneratedID: reply.StreamEntryID{}},
		KeyStreamGroupInfo: reply.StreamGroupInfo{
			Name: "workers", Consumers: 2, Pending: 1, LastDeliveredID: reply.StreamEntryID{Time: 5},
		},
		KeyStreamConsumersInfo: reply.StreamConsumersInfo{Name: "w1", Idle: 10, Pending: 1},
		KeyStringScan:          reply.ScanResult[string]{Cursor: "0", Results: []string{"a"}},
		KeyTupleScan:           reply.ScanResult[reply.Tuple]{Cursor: "0"},
		KeyHashScan:            reply.ScanResult[reply.HashEntry]{Cursor: "17"},
	}
}

func TestRegistryIsComplete(t *testing.T) {
	registry := NewRegistry()
	for _, key := range Keys() {
		t.Run(key.String(), func(t *testing.T) {
			native, ok := nativeSamples[key]
			require.True(t, ok, "no sample for key %s", key)

			_, err := registry.Convert(native, key)
			require.NoError(t, err)
		})
	}
}

func TestRegistryUnknownKey(t *testing.T) {
	_, err := NewRegistry().Convert("x", keyCount)
	require.ErrorIs(t, err, ErrUnknownConverter)
}

func TestRegistryShapeMismatch(t *testing.T) {
	_, err := NewRegistry().Convert(reply.Module{Name: "x"}, KeyTuple)
	require.ErrorIs(t, err, ErrShapeMismatch)

	_, err = NewRegistry().Convert(struct{}{}, KeyPlain)
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestGeoRadiusConversion(t *testing.T) {
	converted, err := Convert(nativeSamples[KeyGeoRadius], KeyGeoRadius)
	require.NoError(t, err)

	fields, ok := converted.(*FieldMap)
	require.True(t, ok)
	assert.Equal(t, []string{"member", "distance", "coordinate", "raw-score"}, fields.Keys())

	member, _ := fields.Get("member")
	assert.Equal(t, "Palermo", member)
	rawScore, _ := fields.Get("raw-score")
	assert.Equal(t, int64(3479099956230698), rawScore)

	coordinate, _ := fields.Get("coordinate")
	nested, ok := coordinate.(*FieldMap)
	require.True(t, ok)
	assert.Equal(t, []string{"longitude", "latitude"}, nested.Keys())
	longitude, _ := nested.Get("longitude")
	assert.Equal(t, 13.36, longitude)
}

func TestGeoRadiusWithoutCoordinate(t *testing.T) {
	converted := GeoRadius(reply.GeoRadiusResponse{Member: "Catania", Distance: 56.44})
	fields := converted.(*FieldMap)

	coordinate, ok := fields.Get("coordinate")
	assert.True(t, ok)
	assert.Nil(t, coordinate)
}

func TestPagedIsGeneric(t *testing.T) {
	plain := Paged(Identity[string]())(reply.ScanResult[string]{
		Cursor:  "0",
		Results: []string{"elem1", "elem2"},
	})
	expectedPlain := NewFieldMap(2).
		Set("cursor", "0").
		Set("results", []any{"elem1", "elem2"})
	assert.Equal(t, expectedPlain, plain)

	scored := Paged(Tuple)(reply.ScanResult[reply.Tuple]{
		Cursor:  "42",
		Results: []reply.Tuple{{Element: "a", Score: 1}, {Element: "b", Score: 2}},
	})
	expectedScored := NewFieldMap(2).
		Set("cursor", "42").
		Set("results", []any{
			NewFieldMap(2).Set("value", "a").Set("score", 1.0),
			NewFieldMap(2).Set("value", "b").Set("score", 2.0),
		})
	assert.Equal(t, expectedScored, scored)
}

func TestPagedEmptyResults(t *testing.T) {
	converted, err := Convert(reply.ScanResult[reply.HashEntry]{Cursor: "0"}, KeyHashScan)
	require.NoError(t, err)

	results, _ := converted.(*FieldMap).Get("results")
	assert.Equal(t, []any{}, results)
}

func TestConversionIsDeterministic(t *testing.T) {
	// two equal sample sets whose maps are filled in opposite orders
	fill := func(m map[string]string, keys ...string) {
		for _, k := range keys {
			m[k] = "v-" + k
		}
	}
	firstSamples, secondSamples := newNativeSamples(), newNativeSamples()
	for i, samples := range []map[Key]any{firstSamples, secondSamples} {
		keys := []string{"z", "m", "b", "x", "c", "k", "a"}
		if i == 1 {
			slices.Reverse(keys)
		}
		fill(samples[KeyStreamEntry].(reply.StreamEntry).Fields, keys...)
		fill(samples[KeyAccessControlLogEntry].(reply.AccessControlLogEntry).ClientInfo, keys...)
		fill(samples[KeyStreamRead].(reply.StreamRead).Entries[0].Fields, keys...)
	}

	registry := NewRegistry()
	for _, key := range Keys() {
		t.Run(key.String(), func(t *testing.T) {
			require.Equal(t, firstSamples[key], secondSamples[key])

			first, err := registry.Convert(firstSamples[key], key)
			require.NoError(t, err)
			second, err := registry.Convert(secondSamples[key], key)
			require.NoError(t, err)
			assert.Equal(t, first, second)

			firstJSON, err := json.Marshal(first)
			require.NoError(t, err)
			secondJSON, err := json.Marshal(second)
			require.NoError(t, err)
			assert.Equal(t, string(firstJSON), string(secondJSON))
		})
	}
}

func TestNullPropagation(t *testing.T) {
	registry := NewRegistry()

	converted, err := registry.Convert(nil, KeyStreamEntry)
	require.NoError(t, err)
	assert.Nil(t, converted)

	converted, err = registry.Convert((*reply.KeyedListElement)(nil), KeyKeyedListElement)
	require.NoError(t, err)
	assert.Nil(t, converted)

	converted, err = registry.Convert([]*reply.GeoCoordinate{nil, {Longitude: 1, Latitude: 2}}, KeyGeoCoordinate)
	require.NoError(t, err)
	assert.Equal(t, []any{nil, NewFieldMap(2).Set("longitude", 1.0).Set("latitude", 2.0)}, converted)

	info := StreamInfo(reply.StreamInfo{Length: 0}).(*FieldMap)
	first, ok := info.Get("first-entry")
	assert.True(t, ok)
	assert.Nil(t, first)

	logEntry := AccessControlLogEntry(reply.AccessControlLogEntry{}).(*FieldMap)
	clientInfo, _ := logEntry.Get("client-info")
	assert.Nil(t, clientInfo)
}

func TestSliceConversion(t *testing.T) {
	converted, err := Convert([]reply.Tuple{{Element: "a", Score: 1}}, KeyTuple)
	require.NoError(t, err)
	assert.Equal(t, []any{NewFieldMap(2).Set("value", "a").Set("score", 1.0)}, converted)
}

func TestStreamReadConversion(t *testing.T) {
	converted, err := Convert(nativeSamples[KeyStreamRead], KeyStreamRead)
	require.NoError(t, err)

	expected := NewFieldMap(2).
		Set("key", "sensors").
		Set("value", []any{
			NewFieldMap(2).
				Set("id", "1-0").
				Set("fields", NewFieldMap(1).Set("temp", "21")),
		})
	assert.Equal(t, expected, converted)
}

func TestAccessControlConversion(t *testing.T) {
	user := AccessControlUser(nativeSamples[KeyAccessControlUser].(reply.AccessControlUser)).(*FieldMap)
	assert.Equal(t, []string{"flags", "keys", "passwords", "commands"}, user.Keys())

	entry := AccessControlLogEntry(nativeSamples[KeyAccessControlLogEntry].(reply.AccessControlLogEntry)).(*FieldMap)
	assert.Equal(t, []string{"count", "reason", "context", "object", "username", "age-seconds", "client-info"}, entry.Keys())

	clientInfo, _ := entry.Get("client-info")
	assert.Equal(t, []string{"addr", "id"}, clientInfo.(*FieldMap).Keys())
}

func TestPlain(t *testing.T) {
	tests := []struct {
		name     string
		native   any
		expected any
	}{
		{name: "Nil", native: nil, expected: nil},
		{name: "String", native: "OK", expected: "OK"},
		{name: "Bytes", native: []byte("raw"), expected: "raw"},
		{name: "Int", native: 3, expected: int64(3)},
		{name: "Int64", native: int64(-1), expected: int64(-1)},
		{name: "Bool", native: true, expected: true},
		{name: "Strings", native: []string{"a", "b"}, expected: []any{"a", "b"}},
		{name: "Map", native: map[string]string{"b": "2", "a": "1"}, expected: NewFieldMap(2).Set("a", "1").Set("b", "2")},
		{name: "Nested", native: []any{"a", []byte("b"), []any{1}}, expected: []any{"a", "b", []any{int64(1)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			converted, err := Plain(tt.native)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, converted)
		})
	}
}

func TestErrorsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrShapeMismatch, ErrUnknownConverter))
}
