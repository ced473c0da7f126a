package complete

import "github.com/mesh-intelligence/bce/pkg/types"

// kubectlTree mirrors the ordering the store returns: everything sorted by
// name, args by long name.
func kubectlTree() *types.Command {
	return &types.Command{
		Name:    "kubectl",
		Aliases: []*types.Alias{{Name: "k"}},
		Args: []*types.CommandArg{
			{LongName: "--help", ShortName: "-h"},
		},
		SubCommands: []*types.Command{
			{
				Name: "describe",
				SubCommands: []*types.Command{
					{Name: "nodes", Aliases: []*types.Alias{{Name: "no"}}},
				},
			},
			{
				Name:    "get",
				Aliases: []*types.Alias{{Name: "g"}},
				Args: []*types.CommandArg{
					{
						LongName:  "--output",
						ShortName: "-o",
						ArgType:   types.ArgOption,
						Opts:      []*types.CommandOpt{{Name: "json"}, {Name: "wide"}},
					},
					{LongName: "--watch", ShortName: "-w"},
				},
				SubCommands: []*types.Command{
					{Name: "pods", Aliases: []*types.Alias{{Name: "pod"}, {Name: "po"}}},
					{Name: "services", Aliases: []*types.Alias{{Name: "svc"}}},
				},
			},
		},
	}
}

func subNames(cmd *types.Command) []string {
	var names []string
	for _, s := range cmd.SubCommands {
		names = append(names, s.Name)
	}
	return names
}

func argNames(cmd *types.Command) []string {
	var names []string
	for _, a := range cmd.Args {
		names = append(names, a.Name())
	}
	return names
}
