// Copyright Immersive Collective, 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/Immersive-Collective/signalocr/internal/index"
)

var indexCmd = &cobra.Command{
	Use:   "index <outputDir>",
	Short: "Ingest a completed run into the search index",
	Long: `Index reads run.yaml and the per-image text files from a run's output
directory and ingests them into a SQLite database with FTS5 indexing.
Unchanged runs are skipped on subsequent invocations.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	indexDir, _ := cmd.Flags().GetString("index-dir")

	store, err := index.NewStore(indexDir)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Ingest(context.Background(), args[0], os.Stdout)
}

func init() {
	indexCmd.Flags().String("index-dir", "index", "directory holding the search index")

	rootCmd.AddCommand(indexCmd)
}
