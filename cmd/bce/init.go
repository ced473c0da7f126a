package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the configuration and an empty grammar database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// setup has already created the config directory and config.yaml.
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, successStyle.Render("bce initialized"))
		fmt.Fprintln(out, "  config:", configDir)
		fmt.Fprintln(out, "  db:    ", store.Path())
		return nil
	},
}
