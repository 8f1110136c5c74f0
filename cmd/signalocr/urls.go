// Copyright Immersive Collective, 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Immersive-Collective/signalocr/internal/index"
)

var urlsCmd = &cobra.Command{
	Use:   "urls",
	Short: "List URLs recorded in the search index",
	Long: `Urls lists every URL occurrence recorded by indexed runs, with the
image it was found in. Use --contains to filter by substring.`,
	RunE: runURLs,
}

func runURLs(cmd *cobra.Command, args []string) error {
	indexDir, _ := cmd.Flags().GetString("index-dir")
	contains, _ := cmd.Flags().GetString("contains")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := index.NewStore(indexDir)
	if err != nil {
		return err
	}
	defer store.Close()

	rows, err := store.URLs(context.Background(), contains)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	for _, r := range rows {
		fmt.Printf("%-20s  %s\n", r.File, r.URL)
	}
	fmt.Printf("\n%d urls\n", len(rows))
	return nil
}

func init() {
	urlsCmd.Flags().String("index-dir", "index", "directory holding the search index")
	urlsCmd.Flags().String("contains", "", "filter to URLs containing this substring")
	urlsCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(urlsCmd)
}
