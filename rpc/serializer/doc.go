// Package serializer encodes query results and error responses for the wire
// and for the terminal.
//
// Key Components:
//
//   - IResultSerializer: Core interface that all serializer implementations
//     must satisfy. Besides the encoding itself it reports the media type,
//     which the HTTP transport sends as Content-Type.
//
//   - jsonSerializerImpl: JSON encoding, compact (json) or indented
//     (json-pretty). Field maps are written in key order.
//
//   - yamlSerializerImpl: YAML encoding with two space indentation, built on
//     gopkg.in/yaml.v3. Field maps become ordered YAML mappings.
//
// Selection:
//
//	ForName resolves the --output flag of the CLI, ForAccept resolves the
//	Accept header of an HTTP request (JSON unless YAML is asked for).
//
// Thread Safety:
//
//	All serializer implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
package serializer
