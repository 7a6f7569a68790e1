// Package common provides the data structures shared by the query server,
// the client and the CLI.
//
// Key Components:
//
//   - ServerConfig / ClientConfig: configuration of the server and the
//     client, both with a String method that renders a readable overview
//     (printed by the server on startup and by kvql bench).
//
//   - ErrorResponse / ErrorKind: the body sent for a failed query. Every error
//     returned by the dispatcher is classified into a kind (parse,
//     unsupported, syntax, command, timeout, internal), which the transport
//     maps onto a status code.
//
//   - Logger: a dragonboat logger.Factory producing "LEVEL | pkg | msg" lines.
//     InitLoggers installs it and sets the level of every package logger.
package common
