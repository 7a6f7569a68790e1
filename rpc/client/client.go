package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/ValentinKolb/kvql/rpc/common"
	"github.com/ValentinKolb/kvql/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var (
	Logger = logger.GetLogger("rpc")
)

// NewRPCClient connects the transport and returns a client that sends
// command lines through it.
func NewRPCClient(config common.ClientConfig, transport transport.IRPCClientTransport) (*RPCClient, error) {
	// Connect the transport
	if err := transport.Connect(config); err != nil {
		return nil, err
	}

	return &RPCClient{
		config:    config,
		transport: transport,
	}, nil
}

// RPCClient runs queries on a remote server.
type RPCClient struct {
	config    common.ClientConfig
	transport transport.IRPCClientTransport
}

// Query sends one command line and returns the encoded result as sent by the
// server (in the format of the client config). Failed queries return a
// *common.RemoteError.
func (c *RPCClient) Query(ctx context.Context, raw string) ([]byte, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty query")
	}

	if c.config.TimeoutSecond > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout(c.config))
		defer cancel()
	}

	resp, err := c.transport.Send(ctx, raw)
	if err != nil {
		Logger.Debugf("query %q failed: %v", raw, err)
		return nil, err
	}
	return resp, nil
}

// Close releases the transport
func (c *RPCClient) Close() error {
	return c.transport.Close()
}
