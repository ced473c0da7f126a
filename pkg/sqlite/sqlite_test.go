package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/bce/pkg/sqlite"
	"github.com/mesh-intelligence/bce/pkg/types"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "completion.db"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Import(ctx, []*types.Command{{Name: "git", Aliases: []*types.Alias{{Name: "g"}}}}))

	tree, err := store.LoadTree(ctx, "g")
	require.NoError(t, err)
	assert.Equal(t, "git", tree.Name)
}
