// Package client implements the RPC client of the query server.
//
// NewRPCClient connects a client transport and returns an RPCClient. Query
// sends one command line and returns the result encoded in the format named
// by common.ClientConfig.Format. Errors reported by the server are returned
// as *common.RemoteError, so callers can inspect the error kind and status.
//
// Usage Example:
//
//	c, err := client.NewRPCClient(common.ClientConfig{
//	  Endpoints:     []string{"http://localhost:8080"},
//	  TimeoutSecond: 5,
//	  RetryCount:    3,
//	  Format:        "json",
//	}, http.NewHttpClientTransport())
//	if err != nil {
//	  log.Fatal(err)
//	}
//	defer c.Close()
//
//	out, err := c.Query(ctx, "HGETALL user:1")
package client
