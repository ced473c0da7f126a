package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/bce/pkg/types"
)

// kubectlTree returns a small grammar with aliases, nested sub-commands,
// and an option-typed argument. Slices are deliberately out of order.
func kubectlTree() *types.Command {
	return &types.Command{
		Name:    "kubectl",
		Aliases: []*types.Alias{{Name: "k"}},
		Args: []*types.CommandArg{
			{LongName: "--help", ShortName: "-h", ArgType: types.ArgNone, Description: "Show help"},
		},
		SubCommands: []*types.Command{
			{
				Name:    "get",
				Aliases: []*types.Alias{{Name: "g"}},
				Args: []*types.CommandArg{
					{LongName: "--watch", ShortName: "-w"},
					{
						LongName:  "--output",
						ShortName: "-o",
						ArgType:   types.ArgOption,
						Opts:      []*types.CommandOpt{{Name: "yaml"}, {Name: "wide"}, {Name: "json"}},
					},
				},
				SubCommands: []*types.Command{
					{Name: "services", Aliases: []*types.Alias{{Name: "svc"}}},
					{Name: "pods", Aliases: []*types.Alias{{Name: "pod"}, {Name: "po"}}},
				},
			},
			{
				Name: "apply",
				Args: []*types.CommandArg{{LongName: "--filename", ShortName: "-f", ArgType: types.ArgFile}},
			},
		},
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "completion.db"), Options{})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// countRows returns the number of rows in table.
func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}
