// Package dispatch executes raw command lines against a Backend.
//
// An Executor runs the whole pipeline for a single command line:
//
//  1. query.Normalizer turns the raw text into a query.Query
//  2. the route table picks the handler for the verb (and sub-verb)
//  3. the handler checks the arguments, calls the Backend and names the
//     convert.Key for the native reply it got
//  4. convert.Registry turns the reply into a canonical value
//  5. result.Wrap builds the Result
//
// Errors:
//
//   - *query.Error for text that does not parse (empty, unknown command, ...)
//   - ErrUnsupported for parsed commands without a route (e.g. CLUSTER NODES)
//   - ErrSyntax for a wrong number of arguments or malformed numbers
//   - errors of the backend are passed through unchanged
//
// Metrics:
//
//	Every routed command increments kvql_queries_total{command="..."} and
//	records its latency in kvql_query_duration_seconds{command="..."}.
//	Failures are counted in kvql_query_errors_total{reason="..."}. The
//	metrics live in the default VictoriaMetrics set and are exposed by the
//	HTTP transport.
package dispatch
