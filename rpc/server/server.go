package server

import (
	"context"
	"fmt"
	"sort"

	"github.com/ValentinKolb/kvql/lib/dispatch"
	"github.com/ValentinKolb/kvql/lib/engine"
	"github.com/ValentinKolb/kvql/lib/reply"
	"github.com/ValentinKolb/kvql/lib/result"
	"github.com/ValentinKolb/kvql/rpc/common"
	"github.com/ValentinKolb/kvql/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("rpc")

// NewRPCServer creates a new RPC server
// It takes a config and a transport as parameters
//
// Usage:
//
//	s := server.NewRPCServer(
//		*config,
//		http.NewHttpServerTransport(),
//	)
//
//	if err := s.Serve(ctx); err != nil {
//		panic(err)
//	}
func NewRPCServer(config common.ServerConfig, transport transport.IRPCServerTransport) *RPCServer {
	return &RPCServer{
		config:    config,
		transport: transport,
	}
}

// RPCServer executes queries received by its transport against an
// in-memory engine.
type RPCServer struct {
	config    common.ServerConfig
	transport transport.IRPCServerTransport
	executor  *dispatch.Executor
}

// NewEngine creates the backend described by the modules and config
// overrides of a server configuration.
func NewEngine(config common.ServerConfig) *engine.Engine {
	names := make([]string, 0, len(config.Modules))
	for name := range config.Modules {
		names = append(names, name)
	}
	sort.Strings(names)

	modules := make([]reply.Module, 0, len(names))
	for _, name := range names {
		modules = append(modules, reply.Module{Name: name, Version: config.Modules[name]})
	}

	return engine.New(
		engine.WithModules(modules...),
		engine.WithConfig(config.Config),
	)
}

func (s *RPCServer) init() error {
	// Init logger
	if err := common.InitLoggers(s.config.LogLevel); err != nil {
		return err
	}

	Logger.Infof("Created RPC Server")
	Logger.Infof(s.config.String())

	s.executor = dispatch.NewExecutor(NewEngine(s.config))

	// Configure the transport layer
	s.transport.RegisterHandler(s.handle)
	return nil
}

// handle is the transport handler: it runs one command line
func (s *RPCServer) handle(ctx context.Context, raw string) (result.Result, error) {
	res, err := s.executor.Execute(ctx, raw)
	if err != nil {
		Logger.Debugf("query %q failed: %v", raw, err)
	}
	return res, err
}

// Serve starts the RPC server and blocks until ctx is done or the transport
// fails. This function also initializes the loggers and the engine.
func (s *RPCServer) Serve(ctx context.Context) error {
	if s.transport == nil {
		return fmt.Errorf("no transport configured")
	}
	if err := s.init(); err != nil {
		return err
	}
	return s.transport.Listen(ctx, s.config)
}
