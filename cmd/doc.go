// Package cmd implements the kvql command-line interface. It provides a
// hierarchical command structure for parsing queries, running them against
// an in-memory engine or a remote server, and serving the engine over http.
//
// The package is organized into several subpackages:
//
//   - parse: print the normalized form of a command line
//   - shell: interactive REPL against an in-memory engine
//   - serve: start the query server
//   - query: run queries and benchmarks against a remote server
//   - util: shared utilities for command-line processing and configuration (internal use)
//
// Flags can also be set as environment variables with the KVQL_ prefix
// (e.g. KVQL_LOG_LEVEL=debug). See kvql --help for a list of all commands.
package cmd
