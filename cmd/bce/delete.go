package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <command>",
	Short: "Remove a stored command and its whole grammar",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		name := args[0]

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		names, err := store.RootNames(ctx)
		if err != nil {
			return classify(err, exitQueryError)
		}
		if !slices.Contains(names, name) {
			return userError("command %q not found", name)
		}

		if err := store.Delete(ctx, name); err != nil {
			return classify(err, exitQueryError)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Deleted", name)
		return nil
	},
}
