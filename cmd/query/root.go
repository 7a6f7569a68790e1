package query

import (
	"strings"

	"github.com/ValentinKolb/kvql/cmd/util"
	"github.com/ValentinKolb/kvql/rpc/client"
	"github.com/ValentinKolb/kvql/rpc/transport/http"
	"github.com/spf13/cobra"
)

var (
	rpcClient *client.RPCClient

	// QueryCmd runs a single command line on a remote server
	QueryCmd = &cobra.Command{
		Use:   "query [command line]",
		Short: "Run a query on a kvql server",
		Long: `Run a query on a kvql server. All arguments are joined with single
spaces, e.g.

  kvql query HGETALL user:1
  kvql query --output yaml "XRANGE events - +"`,
		Args:     cobra.MinimumNArgs(1),
		PreRunE:  setupClient,
		PostRunE: closeClient,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := rpcClient.Query(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			util.Println(cmd, util.Reformat(util.GetOutputFormat(), data))
			return nil
		},
	}
)

func init() {
	// Add common RPC flags to the query commands
	util.SetupRPCClientFlags(QueryCmd)
	util.SetupRPCClientFlags(BenchCmd)
}

// setupClient initializes the RPC client
func setupClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	var err error
	rpcClient, err = client.NewRPCClient(*util.GetClientConfig(), http.NewHttpClientTransport())
	return err
}

func closeClient(_ *cobra.Command, _ []string) error {
	if rpcClient == nil {
		return nil
	}
	return rpcClient.Close()
}
