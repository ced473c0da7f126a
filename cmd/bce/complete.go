package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/bce/internal/complete"
	"github.com/mesh-intelligence/bce/internal/input"
)

var completeCmd = &cobra.Command{
	Use:   "complete [-- command word previous]",
	Short: "Answer a bash completion request",
	Long: `Answer a bash completion request.

Bash runs this for commands registered with ` + "`complete -C`" + `. The line and
cursor are read from COMP_LINE and COMP_POINT; the positional arguments bash
appends are ignored. Candidates are printed one per line on stdout.`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runComplete(cmd)
	},
}

func runComplete(cmd *cobra.Command) error {
	in, err := input.FromEnv(os.Getenv)
	if err != nil {
		return classify(err, exitMissingContext)
	}

	ctx := cmd.Context()
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	candidates, err := complete.NewEngine(store, logger).Complete(ctx, in)
	if err != nil {
		return classify(err, exitQueryError)
	}

	out := cmd.OutOrStdout()
	for _, c := range candidates {
		fmt.Fprintln(out, c)
	}
	return nil
}

// builtinCommands are added by cobra and fang when the root executes, so
// they are not yet among rootCmd.Commands() when main inspects os.Args.
var builtinCommands = []string{"help", "completion", "man"}

// completerArgs rewrites a request from bash for a command registered with
// `complete -C bce <cmd>`, which runs `bce <cmd> <word> <prev>`, into
// `complete -- <cmd> <word> <prev>`. The rewrite happens before cobra parses
// anything, so typed words such as -o or --help never reach bce's flags.
// It reports false for ordinary invocations.
func completerArgs(args []string, getenv func(string) string) ([]string, bool) {
	if getenv(input.EnvLine) == "" || len(args) == 0 {
		return nil, false
	}
	if strings.HasPrefix(args[0], "-") || isSubcommand(args[0]) {
		return nil, false
	}
	return append([]string{completeCmd.Name(), "--"}, args...), true
}

func isSubcommand(name string) bool {
	for _, c := range rootCmd.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return slices.Contains(builtinCommands, name)
}
