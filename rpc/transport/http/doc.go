// Package http implements the HTTP transport of the query server and its
// client.
//
// Endpoints:
//
//	POST /query    the body is one raw command line, the answer is the
//	               encoded result (JSON, or YAML if the Accept header asks
//	               for application/yaml)
//	GET  /metrics  VictoriaMetrics counters and histograms in prometheus format
//	GET  /health   liveness probe
//
// Status Codes:
//
//   - 200 for a result
//   - 400 for text that does not parse (empty query, unknown command, ...)
//   - 413 for bodies larger than ServerConfig.MaxQueryBytes
//   - 422 for unsupported commands, syntax errors and commands the backend
//     rejected
//   - 504 if the query ran longer than ServerConfig.TimeoutSecond
//   - 500 for everything else
//
// Every failed query is answered with a common.ErrorResponse body. Every
// response carries an X-Request-Id header, taken from the request or
// generated.
//
// Key Components:
//
//   - httpServerTransport: Implements IRPCServerTransport. It shuts the
//     server down gracefully once the context given to Listen is canceled.
//
//   - httpClientTransport: Implements IRPCClientTransport, selecting
//     endpoints round-robin and moving on to the next endpoint when a request
//     fails at the network level. Error answers are returned as
//     *common.RemoteError and are not retried.
//
// Thread Safety:
//
//	The client transport is thread-safe and can be used concurrently. It uses
//	atomic operations for the round-robin counter.
package http
