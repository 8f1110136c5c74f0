// Copyright Immersive Collective, 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Immersive-Collective/signalocr/internal/engine"
	"github.com/Immersive-Collective/signalocr/internal/engine/remote"
	"github.com/Immersive-Collective/signalocr/internal/engine/tesseract"
	"github.com/Immersive-Collective/signalocr/internal/index"
	"github.com/Immersive-Collective/signalocr/internal/pipeline"
	"github.com/Immersive-Collective/signalocr/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run <inputDir> <outputDir> [languages]",
	Short: "OCR every image in a directory and aggregate the results",
	Long: `Run scans inputDir for images (png, jpg, jpeg, tif, tiff, bmp, gif,
heic), recognizes each one, and writes per-image text plus combined
artifacts (all_text.md, all_text.txt, urls.txt, urls.csv) to outputDir.

The optional languages argument is a comma-separated list of BCP-47 tags
passed to the OCR engine as recognition hints (default "en-US,pl-PL").
Per-image failures are reported and do not fail the run.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	langStr := ""
	if len(args) > 2 {
		langStr = args[2]
	}

	concurrency, _ := cmd.Flags().GetInt("concurrency")
	writeHTML, _ := cmd.Flags().GetBool("html")
	indexDir, _ := cmd.Flags().GetString("index-dir")

	cfg := types.RunConfig{
		InputDir:    args[0],
		OutputDir:   args[1],
		Languages:   types.ParseLanguages(langStr),
		Concurrency: concurrency,
		WriteHTML:   writeHTML,
		IndexDir:    indexDir,
	}

	eng, err := buildEngine(cmd)
	if err != nil {
		return err
	}

	// Ctrl-C aborts the run; combined artifacts are all-or-nothing.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Per-image failures surface in the summary block but never change
	// the exit code; only fatal conditions return an error here.
	if _, err := pipeline.Run(ctx, eng, cfg, os.Stdout); err != nil {
		return err
	}

	if cfg.IndexDir != "" {
		store, err := index.NewStore(cfg.IndexDir)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Ingest(ctx, cfg.OutputDir, os.Stdout); err != nil {
			return err
		}
	}

	return nil
}

// buildEngine selects the OCR backend. Tesseract is the default; the
// remote engine targets an HTTP recognition service.
func buildEngine(cmd *cobra.Command) (engine.Engine, error) {
	name, _ := cmd.Flags().GetString("engine")
	switch name {
	case "", "tesseract":
		return tesseract.New(), nil
	case "remote":
		baseURL, _ := cmd.Flags().GetString("remote-url")
		if baseURL == "" {
			baseURL = viper.GetString("remote.base_url")
		}
		if baseURL == "" {
			return nil, fmt.Errorf("remote engine requires --remote-url or remote.base_url in config")
		}
		key := viper.GetString("remote.api_key")
		if key == "" {
			key = loadedSecrets["remote-ocr-api-key"]
		}
		var opts []remote.Option
		if key != "" {
			opts = append(opts, remote.WithAPIKey(key))
		}
		return remote.New(baseURL, opts...), nil
	default:
		return nil, fmt.Errorf("unknown engine %q: use tesseract or remote", name)
	}
}

func init() {
	runCmd.Flags().Int("concurrency", 1, "number of images recognized in parallel")
	runCmd.Flags().Bool("html", false, "also render the combined markdown to all_text.html")
	runCmd.Flags().String("index-dir", "", "ingest the run into the search index at this directory")
	runCmd.Flags().String("engine", "tesseract", "OCR engine: tesseract or remote")
	runCmd.Flags().String("remote-url", "", "base URL of the remote recognition service")

	rootCmd.AddCommand(runCmd)
}
