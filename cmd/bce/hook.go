package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/bce/internal/hook"
)

var hookExecutable string

var hookCmd = &cobra.Command{
	Use:   "hook [command...]",
	Short: "Print bash lines that register bce as a completer",
	Long: `Print one ` + "`complete -C`" + ` line per command so bash asks bce for
completions. With no command names every stored command is registered.
Add this to ~/.bashrc:

  eval "$(bce hook)"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		exe := hookExecutable
		if exe == "" {
			var err error
			if exe, err = os.Executable(); err != nil {
				return userError("locating bce executable: %w", err)
			}
		}

		names := args
		if len(names) == 0 {
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()
			if names, err = store.RootNames(ctx); err != nil {
				return classify(err, exitQueryError)
			}
		}

		script, err := hook.Bash(exe, names)
		if errors.Is(err, hook.ErrNoCommands) {
			return userError("no stored commands; import a grammar first")
		}
		if err != nil {
			return userError("%w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), script)
		return nil
	},
}

func init() {
	hookCmd.Flags().StringVar(&hookExecutable, "exe", "", "path bash should run (default: this executable)")
}
