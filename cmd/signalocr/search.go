// Copyright Immersive Collective, 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Immersive-Collective/signalocr/internal/index"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over indexed recognized text",
	Long: `Search runs an FTS5 query against every indexed run and prints
matching images with a highlighted snippet of the recognized text.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	indexDir, _ := cmd.Flags().GetString("index-dir")
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := index.NewStore(indexDir)
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Search(context.Background(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	for _, r := range results {
		fmt.Printf("%-20s  %s\n", r.File, r.Snippet)
	}
	fmt.Printf("\n%d results\n", len(results))
	return nil
}

func init() {
	searchCmd.Flags().String("index-dir", "index", "directory holding the search index")
	searchCmd.Flags().Int("limit", 0, "maximum results (0 = default)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
