package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/bce/internal/download"
	"github.com/mesh-intelligence/bce/internal/grammar"
	"github.com/mesh-intelligence/bce/internal/sqlite"
	"github.com/mesh-intelligence/bce/pkg/types"
)

var (
	importFile   string
	importURL    string
	importFormat string
)

var importCmd = &cobra.Command{
	Use:   "import [command...]",
	Short: "Import grammars from a file, URL, or another database",
	Long: `Import grammars from a JSON, YAML, or TOML file, from a URL, or from another
bce database. Each imported root command replaces any stored command of the
same name. All roots are imported in one transaction. Name commands to
import only those.`,
	Example: `  bce import --file kubectl.yaml
  bce import --url https://example.com/grammars/git.json
  bce import --file backup.db kubectl`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		path := importFile
		if importURL != "" {
			tmp, err := download.Fetch(ctx, nil, importURL)
			if err != nil {
				return classify(err, exitGrammarError)
			}
			defer os.Remove(tmp)
			logger.Debug("downloaded grammar", "url", importURL, "path", tmp)
			path = tmp
		}

		format, err := grammar.ResolveFormat(importFormat, path)
		if err != nil {
			return classify(err, exitGrammarError)
		}

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		var n int
		if format == grammar.FormatSQLite {
			n, err = importDatabase(ctx, store, path, args)
		} else {
			n, err = importDocument(ctx, store, path, format, args)
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Imported %d command(s)", n)))
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "grammar file or database to import")
	importCmd.Flags().StringVarP(&importURL, "url", "u", "", "URL of a grammar file to import")
	importCmd.Flags().StringVar(&importFormat, "format", "", "json, yaml, toml, or sqlite (default: from extension)")
	importCmd.MarkFlagsMutuallyExclusive("file", "url")
	importCmd.MarkFlagsOneRequired("file", "url")
}

func importDatabase(ctx context.Context, dst *sqlite.Store, path string, names []string) (int, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, classify(err, exitGrammarError)
	}
	src, err := openStoreAt(ctx, path)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	n, err := sqlite.Copy(ctx, src, dst, names)
	if err != nil {
		return 0, classify(err, exitQueryError)
	}
	return n, nil
}

func importDocument(ctx context.Context, store *sqlite.Store, path string, format grammar.Format, names []string) (int, error) {
	cmds, err := grammar.ReadFile(path, format)
	if err != nil {
		return 0, classify(err, exitGrammarError)
	}
	if cmds, err = selectCommands(cmds, names); err != nil {
		return 0, err
	}
	if err := store.Import(ctx, cmds); err != nil {
		return 0, classify(err, exitQueryError)
	}
	return len(cmds), nil
}

// selectCommands keeps the roots named in names, in names order. An empty
// names keeps every root.
func selectCommands(cmds []*types.Command, names []string) ([]*types.Command, error) {
	if len(names) == 0 {
		return cmds, nil
	}
	byName := make(map[string]*types.Command, len(cmds))
	for _, c := range cmds {
		byName[c.Name] = c
	}
	selected := make([]*types.Command, 0, len(names))
	for _, name := range names {
		c, ok := byName[name]
		if !ok {
			return nil, userError("command %q not found in grammar file", name)
		}
		selected = append(selected, c)
	}
	return selected, nil
}
