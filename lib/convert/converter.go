package convert

import (
	"fmt"

	"github.com/ValentinKolb/kvql/lib/reply"
)

// --------------------------------------------------------------------------
// Generic converters
// --------------------------------------------------------------------------

// Identity returns a converter that passes values through unchanged.
// It is the inner converter for pages of plain strings.
func Identity[T any]() func(T) any {
	return func(v T) any { return v }
}

// Sequence converts every element of items with fn. The result is never nil.
func Sequence[S any](items []S, fn func(S) any) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}

// Optional converts *v with fn, or returns nil if v is nil.
func Optional[S any](v *S, fn func(S) any) any {
	if v == nil {
		return nil
	}
	return fn(*v)
}

// Paged returns a converter for one page of a scan. The page becomes
// {cursor, results} where every result is converted with inner.
func Paged[T any](inner func(T) any) func(reply.ScanResult[T]) any {
	return func(page reply.ScanResult[T]) any {
		return NewFieldMap(2).
			Set("cursor", page.Cursor).
			Set("results", Sequence(page.Results, inner))
	}
}

// --------------------------------------------------------------------------
// Scalar converters
// --------------------------------------------------------------------------

// StreamEntryID converts a stream ID to its "<millis>-<seq>" form.
func StreamEntryID(id reply.StreamEntryID) any {
	return id.String()
}

// Plain normalizes replies that have no dedicated shape: strings, numbers,
// booleans, byte slices, string slices, string maps and nested sequences.
func Plain(native any) (any, error) {
	switch v := native.(type) {
	case nil, string, bool, int64, float64, *FieldMap:
		return v, nil
	case []byte:
		return string(v), nil
	case int:
		return int64(v), nil
	case uint64:
		return int64(v), nil
	case float32:
		return float64(v), nil
	case []string:
		return stringSeq(v), nil
	case map[string]string:
		return stringMap(v), nil
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			c, err := Plain(e)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %T is not a plain reply", ErrShapeMismatch, native)
	}
}

// --------------------------------------------------------------------------
// Structured converters
// --------------------------------------------------------------------------

func Tuple(t reply.Tuple) any {
	return NewFieldMap(2).
		Set("value", t.Element).
		Set("score", t.Score)
}

func KeyedListElement(e reply.KeyedListElement) any {
	return NewFieldMap(2).
		Set("key", e.Key).
		Set("value", e.Element)
}

func KeyedZSetElement(e reply.KeyedZSetElement) any {
	return NewFieldMap(3).
		Set("key", e.Key).
		Set("value", e.Element).
		Set("score", e.Score)
}

func HashEntry(e reply.HashEntry) any {
	return NewFieldMap(2).
		Set("field", e.Field).
		Set("value", e.Value)
}

func GeoCoordinate(c reply.GeoCoordinate) any {
	return NewFieldMap(2).
		Set("longitude", c.Longitude).
		Set("latitude", c.Latitude)
}

// GeoRadius embeds the coordinate converted by GeoCoordinate (nil without WITHCOORD).
func GeoRadius(r reply.GeoRadiusResponse) any {
	return NewFieldMap(4).
		Set("member", r.Member).
		Set("distance", r.Distance).
		Set("coordinate", Optional(r.Coordinate, GeoCoordinate)).
		Set("raw-score", r.RawScore)
}

func Module(m reply.Module) any {
	return NewFieldMap(2).
		Set("name", m.Name).
		Set("version", m.Version)
}

func AccessControlUser(u reply.AccessControlUser) any {
	return NewFieldMap(4).
		Set("flags", stringSeq(u.Flags)).
		Set("keys", stringSeq(u.Keys)).
		Set("passwords", stringSeq(u.Passwords)).
		Set("commands", u.Commands)
}

func AccessControlLogEntry(e reply.AccessControlLogEntry) any {
	return NewFieldMap(7).
		Set("count", e.Count).
		Set("reason", e.Reason).
		Set("context", e.Context).
		Set("object", e.Object).
		Set("username", e.Username).
		Set("age-seconds", e.AgeSeconds).
		Set("client-info", stringMap(e.ClientInfo))
}

func StreamEntry(e reply.StreamEntry) any {
	return NewFieldMap(2).
		Set("id", StreamEntryID(e.ID)).
		Set("fields", stringMap(e.Fields))
}

func StreamRead(r reply.StreamRead) any {
	return NewFieldMap(2).
		Set("key", r.Key).
		Set("value", Sequence(r.Entries, StreamEntry))
}

// StreamInfo converts XINFO STREAM. Missing first/last entries become nil.
func StreamInfo(i reply.StreamInfo) any {
	return NewFieldMap(7).
		Set("length", i.Length).
		Set("radix-tree-keys", i.RadixTreeKeys).
		Set("radix-tree-nodes", i.RadixTreeNodes).
		Set("groups", i.Groups).
		Set("last-generated-id", StreamEntryID(i.LastGeneratedID)).
		Set("first-entry", Optional(i.FirstEntry, StreamEntry)).
		Set("last-entry", Optional(i.LastEntry, StreamEntry))
}

func StreamGroupInfo(g reply.StreamGroupInfo) any {
	return NewFieldMap(4).
		Set("name", g.Name).
		Set("consumers", g.Consumers).
		Set("pending", g.Pending).
		Set("last-delivered-id", StreamEntryID(g.LastDeliveredID))
}

func StreamConsumersInfo(c reply.StreamConsumersInfo) any {
	return NewFieldMap(3).
		Set("name", c.Name).
		Set("idle", c.Idle).
		Set("pending", c.Pending)
}
