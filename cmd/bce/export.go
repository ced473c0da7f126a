package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/bce/internal/grammar"
	"github.com/mesh-intelligence/bce/internal/sqlite"
)

var (
	exportFile   string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export [command...]",
	Short: "Export stored grammars to a file or another database",
	Long: `Export stored grammars to a JSON, YAML, or TOML file, or copy them into
a new bce database. The destination file is replaced. With no command
names every stored command is exported.`,
	Example: `  bce export --file kubectl.yaml kubectl
  bce export --file backup.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		format, err := grammar.ResolveFormat(exportFormat, exportFile)
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
			if n, err = sqlite.CopyToFile(ctx, store, exportFile, args); err != nil {
				return classify(err, exitQueryError)
			}
		} else {
			cmds, err := store.Export(ctx, args)
			if err != nil {
				return classify(err, exitQueryError)
			}
			if err := grammar.WriteFile(exportFile, format, cmds); err != nil {
				return classify(err, exitGrammarError)
			}
			n = len(cmds)
		}

		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Exported %d command(s) to %s", n, exportFile)))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFile, "file", "f", "", "destination file or database")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "json, yaml, toml, or sqlite (default: from extension)")
	exportCmd.MarkFlagRequired("file")
}
