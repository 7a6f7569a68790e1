// Package rpc exposes the query engine over the network.
//
// The package is organized into several subpackages:
//
//   - common: configuration structures, the error response protocol and
//     logging shared by server and client.
//
//   - transport: network communication abstractions. The http subpackage
//     serves POST /query, GET /metrics and GET /health.
//
//   - serializer: result encoders (compact json, pretty json, yaml) selected
//     by name or by the Accept header of a request.
//
//   - client: the RPC client used by the command line tool.
//
//   - server: connects a server transport to the dispatcher and the
//     in-memory engine.
package rpc
