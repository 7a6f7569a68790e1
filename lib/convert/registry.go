package convert

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrUnknownConverter is returned for a Key without a registered converter.
	ErrUnknownConverter = errors.New("unknown converter")
	// ErrShapeMismatch is returned if a reply does not have the shape of the selected converter.
	ErrShapeMismatch = errors.New("reply shape mismatch")
)

// --------------------------------------------------------------------------
// Converter Keys
// --------------------------------------------------------------------------

// Key selects the converter for a native reply shape.
type Key uint8

const (
	KeyPlain                 Key = iota // Strings, numbers, string slices and maps.
	KeyStreamEntryID                    // reply.StreamEntryID
	KeyTuple                            // reply.Tuple
	KeyKeyedListElement                 // reply.KeyedListElement
	KeyKeyedZSetElement                 // reply.KeyedZSetElement
	KeyHashEntry                        // reply.HashEntry
	KeyGeoCoordinate                    // reply.GeoCoordinate
	KeyGeoRadius                        // reply.GeoRadiusResponse
	KeyModule                           // reply.Module
	KeyAccessControlUser                // reply.AccessControlUser
	KeyAccessControlLogEntry            // reply.AccessControlLogEntry
	KeyStreamEntry                      // reply.StreamEntry
	KeyStreamRead                       // reply.StreamRead
	KeyStreamInfo                       // reply.StreamInfo
	KeyStreamGroupInfo                  // reply.StreamGroupInfo
	KeyStreamConsumersInfo              // reply.StreamConsumersInfo
	KeyStringScan                       // reply.ScanResult[string]
	KeyTupleScan                        // reply.ScanResult[reply.Tuple]
	KeyHashScan                         // reply.ScanResult[reply.HashEntry]

	keyCount
)

func (k Key) String() string {
	switch k {
	case KeyPlain:
		return "Plain"
	case KeyStreamEntryID:
		return "StreamEntryID"
	case KeyTuple:
		return "Tuple"
	case KeyKeyedListElement:
		return "KeyedListElement"
	case KeyKeyedZSetElement:
		return "KeyedZSetElement"
	case KeyHashEntry:
		return "HashEntry"
	case KeyGeoCoordinate:
		return "GeoCoordinate"
	case KeyGeoRadius:
		return "GeoRadius"
	case KeyModule:
		return "Module"
	case KeyAccessControlUser:
		return "AccessControlUser"
	case KeyAccessControlLogEntry:
		return "AccessControlLogEntry"
	case KeyStreamEntry:
		return "StreamEntry"
	case KeyStreamRead:
		return "StreamRead"
	case KeyStreamInfo:
		return "StreamInfo"
	case KeyStreamGroupInfo:
		return "StreamGroupInfo"
	case KeyStreamConsumersInfo:
		return "StreamConsumersInfo"
	case KeyStringScan:
		return "StringScan"
	case KeyTupleScan:
		return "TupleScan"
	case KeyHashScan:
		return "HashScan"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Keys returns every converter key.
func Keys() []Key {
	keys := make([]Key, 0, keyCount)
	for k := Key(0); k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

// --------------------------------------------------------------------------
// Registry
// --------------------------------------------------------------------------

type convertFunc func(native any) (any, error)

// Registry maps each Key to exactly one converter.
// The table is filled in NewRegistry and never changes afterwards, so a
// Registry is safe for concurrent use.
type Registry struct {
	converters [keyCount]convertFunc
}

// NewRegistry builds the converter table.
func NewRegistry() *Registry {
	return &Registry{converters: [keyCount]convertFunc{
		KeyPlain:                 Plain,
		KeyStreamEntryID:         bind(StreamEntryID),
		KeyTuple:                 bind(Tuple),
		KeyKeyedListElement:      bind(KeyedListElement),
		KeyKeyedZSetElement:      bind(KeyedZSetElement),
		KeyHashEntry:             bind(HashEntry),
		KeyGeoCoordinate:         bind(GeoCoordinate),
		KeyGeoRadius:             bind(GeoRadius),
		KeyModule:                bind(Module),
		KeyAccessControlUser:     bind(AccessControlUser),
		KeyAccessControlLogEntry: bind(AccessControlLogEntry),
		KeyStreamEntry:           bind(StreamEntry),
		KeyStreamRead:            bind(StreamRead),
		KeyStreamInfo:            bind(StreamInfo),
		KeyStreamGroupInfo:       bind(StreamGroupInfo),
		KeyStreamConsumersInfo:   bind(StreamConsumersInfo),
		KeyStringScan:            bind(Paged(Identity[string]())),
		KeyTupleScan:             bind(Paged(Tuple)),
		KeyHashScan:              bind(Paged(HashEntry)),
	}}
}

var defaultRegistry = sync.OnceValue(NewRegistry)

// DefaultRegistry returns a process wide registry, built on first use.
func DefaultRegistry() *Registry {
	return defaultRegistry()
}

// Convert converts native with the default registry.
func Convert(native any, key Key) (any, error) {
	return DefaultRegistry().Convert(native, key)
}

// Convert converts native with the converter registered for key.
//
// Besides the shape itself the converter accepts a pointer to the shape (a nil
// pointer converts to nil) and slices of the shape or of pointers to it, which
// are converted element-wise. Any other input is a registry defect and yields
// ErrShapeMismatch.
func (r *Registry) Convert(native any, key Key) (any, error) {
	if key >= keyCount || r.converters[key] == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownConverter, key)
	}
	return r.converters[key](native)
}

// bind adapts a typed converter to the untyped registry signature.
func bind[S any](fn func(S) any) convertFunc {
	return func(native any) (any, error) {
		switch v := native.(type) {
		case nil:
			return nil, nil
		case S:
			return fn(v), nil
		case *S:
			return Optional(v, fn), nil
		case []S:
			return Sequence(v, fn), nil
		case []*S:
			out := make([]any, len(v))
			for i, e := range v {
				out[i] = Optional(e, fn)
			}
			return out, nil
		default:
			var want S
			return nil, fmt.Errorf("%w: got %T, want %T", ErrShapeMismatch, native, want)
		}
	}
}
