package serializer

import (
	"fmt"
	"mime"
	"strings"

	"github.com/ValentinKolb/kvql/lib/result"
	"github.com/ValentinKolb/kvql/rpc/common"
)

// IResultSerializer is the interface for all result encodings
type IResultSerializer interface {
	// Serialize encodes a query result
	Serialize(res result.Result) ([]byte, error)
	// SerializeError encodes the body sent for a failed query
	SerializeError(resp common.ErrorResponse) ([]byte, error)
	// ContentType is the media type of the encoded bytes
	ContentType() string
}

// Names lists the encodings accepted by ForName.
func Names() []string {
	return []string{"json", "json-pretty", "yaml"}
}

// ForName returns the serializer for a format name (json, json-pretty, yaml).
func ForName(name string) (IResultSerializer, error) {
	switch strings.ToLower(name) {
	case "json":
		return NewJSONSerializer(), nil
	case "json-pretty":
		return NewPrettyJSONSerializer(), nil
	case "yaml", "yml":
		return NewYAMLSerializer(), nil
	default:
		return nil, fmt.Errorf("invalid output format %s (expected one of: %s)", name, strings.Join(Names(), ", "))
	}
}

// ForAccept picks the serializer for an HTTP Accept header. Anything that is
// not a YAML media type is answered with JSON.
func ForAccept(accept string) IResultSerializer {
	for _, part := range strings.Split(accept, ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		switch mediaType {
		case contentTypeYAML, "application/x-yaml", "text/yaml":
			return NewYAMLSerializer()
		case contentTypeJSON:
			return NewJSONSerializer()
		}
	}
	return NewJSONSerializer()
}
