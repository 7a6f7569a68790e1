package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	cmdUtil "github.com/ValentinKolb/kvql/cmd/util"
	"github.com/ValentinKolb/kvql/rpc/common"
	"github.com/ValentinKolb/kvql/rpc/server"
	"github.com/ValentinKolb/kvql/rpc/transport/http"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the kvql server",
		Long:    `Start the kvql server with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is KVQL_<flag> (e.g. KVQL_TIMEOUT=15)`,
		Args:    cobra.NoArgs,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// add flags
	key := "endpoint"
	ServeCmd.PersistentFlags().String(key, "0.0.0.0:8080", cmdUtil.WrapString("The address on which the API will listen"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int64(key, 5, cmdUtil.WrapString("Timeout of a single query in seconds (0 disables the timeout)"))

	key = "max-query-bytes"
	ServeCmd.PersistentFlags().Int64(key, 1<<20, cmdUtil.WrapString("Largest accepted request body in bytes (0 disables the limit)"))

	key = "modules"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("Comma-separated list of modules reported by MODULE LIST. Format: NAME=VERSION (e.g. search=20612,json=20609)"))

	key = "config"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("Comma-separated list of parameters for CONFIG GET. Format: NAME=VALUE (e.g. maxmemory=1gb)"))
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	modules, err := parsePairs(viper.GetString("modules"))
	if err != nil {
		return fmt.Errorf("invalid modules: %w", err)
	}
	serveCmdConfig.Modules = make(map[string]int64, len(modules))
	for name, version := range modules {
		v, err := strconv.ParseInt(version, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid version %q of module %s: %w", version, name, err)
		}
		serveCmdConfig.Modules[name] = v
	}

	if serveCmdConfig.Config, err = parsePairs(viper.GetString("config")); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// read the configuration from the command line flags and environment variables
	serveCmdConfig.Endpoint = viper.GetString("endpoint")
	serveCmdConfig.TimeoutSecond = viper.GetInt64("timeout")
	serveCmdConfig.MaxQueryBytes = viper.GetInt64("max-query-bytes")
	serveCmdConfig.LogLevel = viper.GetString("log-level")

	if serveCmdConfig.TimeoutSecond < 0 || serveCmdConfig.MaxQueryBytes < 0 {
		return fmt.Errorf("timeout and max-query-bytes must not be negative")
	}
	return nil
}

// parsePairs parses "a=1,b=2" into a map. Names are lower-cased.
func parsePairs(s string) (map[string]string, error) {
	pairs := make(map[string]string)
	if strings.TrimSpace(s) == "" {
		return pairs, nil
	}
	for _, pair := range strings.Split(s, ",") {
		name, value, found := strings.Cut(pair, "=")
		name = strings.ToLower(strings.TrimSpace(name))
		if !found || name == "" {
			return nil, fmt.Errorf("invalid format: %s (expected NAME=VALUE)", pair)
		}
		pairs[name] = strings.TrimSpace(value)
	}
	return pairs, nil
}

// run starts the kvql server and blocks until SIGINT or SIGTERM
func run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serv := server.NewRPCServer(
		*serveCmdConfig,
		http.NewHttpServerTransport(),
	)

	return serv.Serve(ctx)
}
