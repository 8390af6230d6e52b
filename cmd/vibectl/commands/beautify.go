package commands

import (
	"github.com/spf13/cobra"

	"vibechart/internal/chartconfig"
)

var beautifyCmd = &cobra.Command{
	Use:   "beautify [config.json]",
	Short: "Fill every missing stylistic field of a configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "-"
		if len(args) == 1 {
			path = args[0]
		}
		tree, err := readConfig(path, false)
		if err != nil {
			return err
		}
		return printTree(cmd.OutOrStdout(), chartconfig.Beautify(tree))
	},
}

func init() {
	AddCommand(beautifyCmd)
}
