package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/benfogle/crossbuild/pkg/config"
	"github.com/benfogle/crossbuild/pkg/stores"
)

var (
	// Global flags
	storePath  string
	verbose    bool
	jsonOutput bool
)

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "crossbuild",
		Short: "Crossbuild - Cross-compilation configuration resolver",
		Long: `Crossbuild resolves flat settings mappings into complete cross-compilation
configurations for building host-targeted artifacts on a different build
machine.

Features:
  - Host triple parsing with open-world semantics
  - Settings files in CUE, YAML, or JSON with schema validation
  - Defaulted toolchain configuration (sysroot, search paths, flags)
  - Policy enforcement (OPA/rego) over resolved configurations
  - SQLite-backed resolution history`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "resolution history database path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")

	// Add subcommands
	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newResolveCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newHistoryCommand())
	rootCmd.AddCommand(newWatchCommand())

	return rootCmd
}

// loadSettings loads a settings file and fails on parse or schema errors.
func loadSettings(ctx context.Context, loader *config.Loader, path string) (*config.ParsedSettings, error) {
	parsed, err := loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	if len(parsed.Errors) > 0 {
		for _, e := range parsed.Errors {
			log.Error().Str("file", e.File).Msg(e.Error())
		}
		return nil, fmt.Errorf("settings file %s has %d error(s)", path, len(parsed.Errors))
	}

	return parsed, nil
}

// openStore opens the history store named by --store, or returns nil when
// no store was requested.
func openStore(ctx context.Context) (*stores.SQLiteStore, error) {
	if storePath == "" {
		return nil, nil
	}

	store, err := stores.NewSQLiteStore(stores.Config{Path: storePath})
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	return store, nil
}
