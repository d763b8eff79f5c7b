package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/lal/internal/app"
)

func (c *CLI) newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [environment]",
		Short: "Create a manifest in .lal/manifest.json",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.InitOptions{ConfigPath: configPath(cmd)}
			if len(args) == 1 {
				opts.Environment = args[0]
			}
			opts.Force, _ = cmd.Flags().GetBool("force")

			m, err := c.app.Init(opts)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created manifest for %s in %s\n", m.Name, m.Location)
			return nil
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing manifest")
	return cmd
}
