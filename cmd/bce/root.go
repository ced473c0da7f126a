package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/bce/internal/paths"
	"github.com/mesh-intelligence/bce/internal/sqlite"
	"github.com/mesh-intelligence/bce/pkg/types"
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagDB        string
	flagVerbose   bool
)

// Resolved by PersistentPreRunE for every subcommand.
var (
	cfg       types.Config
	configDir string
	logger    = log.NewWithOptions(os.Stderr, log.Options{Prefix: "bce", Level: log.WarnLevel})
)

var rootCmd = &cobra.Command{
	Use:   "bce",
	Short: "Bash completion engine backed by a SQLite grammar store",
	Long: titleStyle.Render("bce") + mutedStyle.Render(" - bash completion from stored grammars") + `

bce stores the grammar of command-line tools (sub-commands, aliases, flags,
and flag values) and answers bash completion requests from it.

Typical setup:
  bce import --file kubectl.yaml
  eval "$(bce hook)"`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return userError("unknown command %q for %q", args[0], cmd.CommandPath())
		}
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentPreRunE = setup

	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/bce)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $XDG_DATA_HOME/bce)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "grammar database path (default: <data-dir>/completion.db)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log debug output to stderr")

	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup resolves directories, loads config.yaml, and configures the logger.
// Completion requests never write to the config directory.
func setup(cmd *cobra.Command, args []string) error {
	if cmd == versionCmd {
		return nil
	}

	var err error
	if configDir, err = paths.ResolveConfigDir(flagConfigDir); err != nil {
		return userError("resolve config dir: %w", err)
	}
	creating := cmd != completeCmd && cmd != rootCmd
	v, err := loadConfig(configDir, creating)
	if err != nil {
		return userError("%w", err)
	}

	dataDir, err := paths.ResolveDataDir(flagDataDir)
	if err != nil {
		return userError("resolve data dir: %w", err)
	}
	dbPath, err := paths.ResolveDBPath(flagDB, v.GetString(cfgKeyDBPath), dataDir)
	if err != nil {
		return userError("resolve database path: %w", err)
	}

	cfg = types.Config{DBPath: dbPath, LogLevel: v.GetString(cfgKeyLogLevel)}
	if flagVerbose {
		cfg.LogLevel = types.LogLevelDebug
	}
	if err := cfg.Validate(); err != nil {
		return userError("invalid config: %w", err)
	}
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}
	logger.Debug("config loaded", "config_dir", configDir, "db", cfg.DBPath)
	return nil
}

// openStore opens the grammar database named by the resolved config.
func openStore(ctx context.Context) (*sqlite.Store, error) {
	return openStoreAt(ctx, cfg.DBPath)
}

func openStoreAt(ctx context.Context, path string) (*sqlite.Store, error) {
	s, err := sqlite.Open(ctx, path, sqlite.Options{Logger: logger})
	if err != nil {
		return nil, classify(err, exitStoreOpen)
	}
	return s, nil
}
