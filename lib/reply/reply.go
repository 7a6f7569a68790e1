package reply

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Sorted set replies
// --------------------------------------------------------------------------

// Tuple is a sorted set member together with its score.
type Tuple struct {
	Element string
	Score   float64
}

// KeyedZSetElement is returned by blocking sorted set pops (BZPOPMAX, BZPOPMIN)
// and names the key the element was popped from.
type KeyedZSetElement struct {
	Key     string
	Element string
	Score   float64
}

// --------------------------------------------------------------------------
// List and hash replies
// --------------------------------------------------------------------------

// KeyedListElement is returned by blocking list pops (BLPOP, BRPOP).
type KeyedListElement struct {
	Key     string
	Element string
}

// HashEntry is a single field of a hash as returned by HSCAN.
type HashEntry struct {
	Field string
	Value string
}

// --------------------------------------------------------------------------
// Geo replies
// --------------------------------------------------------------------------

// GeoCoordinate is a longitude/latitude pair in degrees.
type GeoCoordinate struct {
	Longitude float64
	Latitude  float64
}

// GeoRadiusResponse is a single member returned by GEORADIUS and friends.
// Coordinate is nil unless WITHCOORD was requested.
type GeoRadiusResponse struct {
	Member     string
	Distance   float64
	Coordinate *GeoCoordinate
	RawScore   int64
}

// --------------------------------------------------------------------------
// Server replies
// --------------------------------------------------------------------------

// Module describes a loaded server module (MODULE LIST).
type Module struct {
	Name    string
	Version int64
}

// AccessControlUser describes a user as returned by ACL GETUSER.
type AccessControlUser struct {
	Flags     []string
	Keys      []string
	Passwords []string
	Commands  string
}

// AccessControlLogEntry is a single entry of the ACL LOG.
type AccessControlLogEntry struct {
	Count      int64
	Reason     string
	Context    string
	Object     string
	Username   string
	AgeSeconds float64
	ClientInfo map[string]string
}

// --------------------------------------------------------------------------
// Stream replies
// --------------------------------------------------------------------------

// StreamEntryID identifies a stream entry as <millis>-<sequence>.
type StreamEntryID struct {
	Time     uint64
	Sequence uint64
}

func (id StreamEntryID) String() string {
	return fmt.Sprintf("%d-%d", id.Time, id.Sequence)
}

// Compare returns -1, 0 or 1 if id is smaller, equal or larger than other.
func (id StreamEntryID) Compare(other StreamEntryID) int {
	switch {
	case id.Time < other.Time:
		return -1
	case id.Time > other.Time:
		return 1
	case id.Sequence < other.Sequence:
		return -1
	case id.Sequence > other.Sequence:
		return 1
	default:
		return 0
	}
}

// ParseStreamEntryID parses "<millis>-<sequence>" or "<millis>" (sequence 0).
func ParseStreamEntryID(s string) (StreamEntryID, error) {
	timePart, seqPart, hasSeq := strings.Cut(s, "-")
	t, err := strconv.ParseUint(timePart, 10, 64)
	if err != nil {
		return StreamEntryID{}, fmt.Errorf("invalid stream ID %q", s)
	}
	var seq uint64
	if hasSeq {
		if seq, err = strconv.ParseUint(seqPart, 10, 64); err != nil {
			return StreamEntryID{}, fmt.Errorf("invalid stream ID %q", s)
		}
	}
	return StreamEntryID{Time: t, Sequence: seq}, nil
}

// StreamEntry is a single stream entry with its field/value pairs.
type StreamEntry struct {
	ID     StreamEntryID
	Fields map[string]string
}

// StreamRead holds the entries read from one stream key (XREAD).
type StreamRead struct {
	Key     string
	Entries []StreamEntry
}

// StreamInfo is the reply of XINFO STREAM.
// FirstEntry and LastEntry are nil for an empty stream.
type StreamInfo struct {
	Length          int64
	RadixTreeKeys   int64
	RadixTreeNodes  int64
	Groups          int64
	LastGeneratedID StreamEntryID
	FirstEntry      *StreamEntry
	LastEntry       *StreamEntry
}

// StreamGroupInfo is a single group of XINFO GROUPS.
type StreamGroupInfo struct {
	Name            string
	Consumers       int64
	Pending         int64
	LastDeliveredID StreamEntryID
}

// StreamConsumersInfo is a single consumer of XINFO CONSUMERS.
type StreamConsumersInfo struct {
	Name    string
	Idle    int64
	Pending int64
}

// --------------------------------------------------------------------------
// Paged replies
// --------------------------------------------------------------------------

// ScanResult is one page of a cursor based iteration (SCAN, HSCAN, ZSCAN, ...).
// A cursor of "0" marks the last page.
type ScanResult[T any] struct {
	Cursor  string
	Results []T
}

// ScanStartCursor is both the first and the terminating cursor of a scan.
const ScanStartCursor = "0"
