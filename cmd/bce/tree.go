package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/bce/pkg/types"
)

var treeCmd = &cobra.Command{
	Use:   "tree <command>",
	Short: "Show the stored grammar of a command",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		root, err := store.LoadTree(ctx, args[0])
		if err != nil {
			return classify(err, exitQueryError)
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTree(root))
		return nil
	},
}

// renderTree draws cmd with its args as leaves followed by its sub-commands.
func renderTree(cmd *types.Command) *tree.Tree {
	return buildTree(cmd, titleStyle.Render(commandLabel(cmd))).EnumeratorStyle(mutedStyle)
}

func buildTree(cmd *types.Command, label string) *tree.Tree {
	t := tree.Root(label)
	for _, a := range cmd.Args {
		t.Child(argStyle.Render(argLabel(a)))
	}
	for _, sub := range cmd.SubCommands {
		t.Child(buildTree(sub, cmdStyle.Render(commandLabel(sub))).EnumeratorStyle(mutedStyle))
	}
	return t
}

func commandLabel(cmd *types.Command) string {
	if len(cmd.Aliases) == 0 {
		return cmd.Name
	}
	return cmd.Name + " (" + strings.Join(cmd.AliasNames(), ", ") + ")"
}

// argLabel renders "--output, -o  OPTION [json|wide]  Output format".
func argLabel(a *types.CommandArg) string {
	var names []string
	for _, n := range []string{a.LongName, a.ShortName} {
		if n != "" {
			names = append(names, n)
		}
	}
	label := strings.Join(names, ", ")
	if a.ArgType != types.ArgNone {
		label += "  " + a.ArgType.String()
	}
	if len(a.Opts) > 0 {
		label += " [" + strings.Join(a.OptNames(), "|") + "]"
	}
	if a.Description != "" {
		label += "  " + mutedStyle.Render(a.Description)
	}
	return label
}
