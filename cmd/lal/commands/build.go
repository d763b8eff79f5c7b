package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/lal/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [component]",
		Short: "Build a component inside its container",
		Long: "Runs ./BUILD <component> <configuration> inside the configured container.\n" +
			"With --release the contents of OUTPUT are packaged into ARTIFACT together with a lockfile.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.BuildOptions{ConfigPath: configPath(cmd)}
			if len(args) == 1 {
				opts.Component = args[0]
			}
			opts.Configuration, _ = cmd.Flags().GetString("config-name")
			opts.Release, _ = cmd.Flags().GetBool("release")
			opts.Version, _ = cmd.Flags().GetString("with-version")
			opts.Environment, _ = cmd.Flags().GetString("env")

			res, err := c.app.Build(cmd.Context(), opts)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Built %s (%s)\n", res.Selection.Component, res.Selection.Configuration)
			if res.Archive != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Artifact %s (%d files, xxh64 %s)\n", res.Archive.Path, len(res.Archive.Files), res.Archive.Digest)
			}
			return nil
		},
	}
	cmd.Flags().StringP("config-name", "g", "", "Build configuration to use (default: the component's defaultConfig)")
	cmd.Flags().BoolP("release", "r", false, "Package OUTPUT and write a lockfile into ARTIFACT")
	cmd.Flags().String("with-version", "", "Version of a strict build; dependency verification failures become fatal")
	cmd.Flags().StringP("env", "e", "", "Container environment to build in")
	return cmd
}
