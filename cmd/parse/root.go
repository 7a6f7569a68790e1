package parse

import (
	"strings"

	"github.com/ValentinKolb/kvql/cmd/util"
	"github.com/ValentinKolb/kvql/lib/query"
	"github.com/spf13/cobra"
)

// ParseCmd prints the normalized query of a command line
var ParseCmd = &cobra.Command{
	Use:   "parse [command line]",
	Short: "Normalize a command line without executing it",
	Long: `Normalize a command line without executing it. All arguments are joined
with single spaces, e.g.

  kvql parse client list type normal
  kvql parse "XINFO STREAM events"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := query.Parse(strings.Join(args, " "))
		if err != nil {
			return err
		}

		data, err := util.Encode(util.GetOutputFormat(), q)
		if err != nil {
			return err
		}
		util.Println(cmd, data)
		return nil
	},
}
