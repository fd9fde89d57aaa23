// Package commands wires the CLI. Commands are thin: they read files, hand
// text to the import/export engine, show the per-row result, and only touch
// the store once a parse is clean and the user has picked a merge strategy.
package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-dev/custodia/internal/buildinfo"
	"github.com/custodia-dev/custodia/internal/config"
	"github.com/custodia-dev/custodia/internal/store"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "custodia",
		Short:   "Personal investment portfolio tracker",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "custodia.yaml", "path to custodia.yaml")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newBankCommand())
	rootCmd.AddCommand(newPositionCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newTemplateCommand())
	rootCmd.AddCommand(newQuoteCommand())

	return rootCmd
}

// openStore loads the config next to which the data directory is resolved.
func openStore(cmd *cobra.Command) (*config.Config, *store.Store, string, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, "", err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, "", err
	}
	dataDir := cfg.DataDir
	if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(filepath.Dir(path), dataDir)
	}
	return cfg, store.New(dataDir), dataDir, nil
}
