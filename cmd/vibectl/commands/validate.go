package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"vibechart/internal/chartconfig"
)

var validateBeautify bool

var validateCmd = &cobra.Command{
	Use:   "validate <config.json...>",
	Short: "Check configuration files against the chart schema",
	Long: `The validate command checks that each file holds a complete, well-typed
chart configuration. With --beautify the defaults are filled first, the same
way the gateway does before validating.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, path := range args {
			tree, err := readConfig(path, false)
			if err == nil {
				if validateBeautify {
					tree = chartconfig.Beautify(tree)
				}
				_, err = chartconfig.Validate(tree)
			}
			if err != nil {
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %v\n", color.RedString("FAIL"), path, err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.GreenString("ok"), path)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d configurations invalid", failed, len(args))
		}
		return nil
	},
}

func init() {
	AddCommand(validateCmd)
	validateCmd.Flags().BoolVarP(&validateBeautify, "beautify", "b", false, "Beautify before validating")
}
