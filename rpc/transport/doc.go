// Package transport defines the interfaces between the query server, its
// clients and the network.
//
// A server transport receives raw command lines, hands them to the
// registered ServerHandleFunc and encodes the result (or the error) for the
// caller. A client transport sends raw command lines and returns the encoded
// answer unchanged, so the caller can print it as it is.
//
// The only implementation lives in the http subpackage.
package transport
