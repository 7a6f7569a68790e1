// Package server implements the query server. It connects a server
// transport to a dispatch.Executor running on an in-memory engine.
//
// Key Components:
//
//   - NewEngine: builds the engine from the module list and config overrides
//     of a common.ServerConfig.
//
//   - NewRPCServer: creates a server for a configuration and a transport.
//     Serve initializes the loggers and the engine, registers the query
//     handler and blocks in the transport until the context is done.
//
// Usage Example:
//
//	config := common.ServerConfig{
//	  Endpoint:      ":8080",
//	  TimeoutSecond: 5,
//	  LogLevel:      "info",
//	}
//
//	s := server.NewRPCServer(config, http.NewHttpServerTransport())
//	if err := s.Serve(ctx); err != nil {
//	  log.Fatal(err)
//	}
package server
