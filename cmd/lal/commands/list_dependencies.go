package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newListDependenciesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-dependencies",
		Short: "Print the manifest's dependency names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			core, _ := cmd.Flags().GetBool("core")
			names, err := c.app.ListDependencies(core)
			if err != nil {
				return err
			}
			for _, name := range names {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().Bool("core", false, "Leave out devDependencies")
	return cmd
}
