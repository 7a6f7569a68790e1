package shell

import (
	"github.com/ValentinKolb/kvql/cmd/util"
	"github.com/ValentinKolb/kvql/lib/dispatch"
	"github.com/ValentinKolb/kvql/rpc/common"
	"github.com/ValentinKolb/kvql/rpc/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ShellCmd starts a REPL against a fresh in-memory engine
var ShellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Run queries interactively against an in-memory engine",
	Long: `Run queries interactively against an in-memory engine. Every line read
from stdin is executed and its result printed in the configured output format.
The engine starts empty and is discarded on exit (type exit or quit, or send EOF).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := util.GetSerializer()
		if err != nil {
			return err
		}

		executor := dispatch.NewExecutor(server.NewEngine(common.ServerConfig{}))
		repl := &REPL{
			Executor:   executor,
			Serializer: s,
			Prompt:     viper.GetString("prompt"),
		}
		return repl.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	key := "prompt"
	ShellCmd.Flags().String(key, "kvql> ", util.WrapString("Prompt printed before every line (empty to disable)"))
}
