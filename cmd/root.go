package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/kvql/cmd/parse"
	"github.com/ValentinKolb/kvql/cmd/query"
	"github.com/ValentinKolb/kvql/cmd/serve"
	"github.com/ValentinKolb/kvql/cmd/shell"
	"github.com/ValentinKolb/kvql/cmd/util"
	"github.com/ValentinKolb/kvql/rpc/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	Version = "0.3.0"
)

var (
	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "kvql",
		Short: "query normalizer and result converter for redis-like stores",
		Long: fmt.Sprintf(`kvql (v%s)

Parses redis-like command lines into normalized queries and converts the
replies of a key-value store into uniform list or map results.`, Version),
		PersistentPreRunE: setupLogging,
		SilenceUsage:      true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of kvql",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "kvql v%s\n", Version)
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(parse.ParseCmd)
	RootCmd.AddCommand(shell.ShellCmd)
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(query.QueryCmd)
	RootCmd.AddCommand(query.BenchCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "output"
	RootCmd.PersistentFlags().StringP(key, "o", "json", util.WrapString("output format (json, json-pretty, yaml)"))
	key = "log-level"
	RootCmd.PersistentFlags().String(key, "warn", util.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
}

// setupLogging binds the flags of the executed command and configures all
// package loggers
func setupLogging(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}
	return common.InitLoggers(viper.GetString("log-level"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
