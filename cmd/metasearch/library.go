// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/metasearch/internal/library"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the local bibliography searched by the library source",
	Long: `The library source searches a SQLite database of bibliography records.
Set library.path in the config (or pass --db) to enable it, then import
CSL-YAML files such as those written by "search --format csl".`,
}

var libraryImportCmd = &cobra.Command{
	Use:   "import <file.yaml>...",
	Short: "Import CSL-YAML bibliography files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openLibrary(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		var total library.ImportSummary
		for _, path := range args {
			records, err := library.ReadCSLFile(path)
			if err != nil {
				return err
			}
			sum, err := store.Import(cmd.Context(), records)
			if err != nil {
				return fmt.Errorf("importing %s: %w", path, err)
			}
			logger.Debug("imported file", "path", path, "added", sum.Added, "updated", sum.Updated, "skipped", sum.Skipped)
			total.Added += sum.Added
			total.Updated += sum.Updated
			total.Skipped += sum.Skipped
		}
		fmt.Printf("added %d, updated %d, skipped %d\n", total.Added, total.Updated, total.Skipped)
		return nil
	},
}

var libraryCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of records in the library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openLibrary(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.Count(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(n)
		return nil
	},
}

func init() {
	libraryCmd.PersistentFlags().String("db", "", "library database path (overrides library.path)")
	libraryCmd.AddCommand(libraryImportCmd, libraryCountCmd)
	rootCmd.AddCommand(libraryCmd)
}

func openLibrary(cmd *cobra.Command) (*library.Store, error) {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		cfg, err := currentConfig()
		if err != nil {
			return nil, err
		}
		path = cfg.Library.Path
	}
	if path == "" {
		return nil, errors.New("no library configured: set library.path or pass --db")
	}
	return library.Open(path)
}
