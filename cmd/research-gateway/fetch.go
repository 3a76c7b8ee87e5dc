// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meshintel/research-gateway/internal/archive"
	"github.com/meshintel/research-gateway/internal/fetch"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch paper metadata from arXiv for a list of topics",
	Long: `Fetch queries the arXiv API once per topic and prints the aggregated,
normalized paper records. A failing topic is skipped with a warning; the
remaining topics still contribute results.

Topics come from --domains, a --topics-file, or the configured defaults.`,
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg := loadPipelineConfig()

	topics, _ := cmd.Flags().GetStringSlice("domains")
	if topicsFile, _ := cmd.Flags().GetString("topics-file"); topicsFile != "" {
		tf, err := fetch.ReadTopicsFile(topicsFile)
		if err != nil {
			return err
		}
		topics = tf.Topics
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	log := newLogger(cfg.Server.LogLevel, cfg.Server.LogFormat)
	defer log.Sync()

	fetcher := fetch.NewFetcher(cfg.Fetcher, newHTTPClient(cfg.Fetcher.Timeout), log.Named("fetch"))
	out, err := fetcher.FetchAll(context.Background(), topics, maxResults)
	if err != nil {
		return err
	}

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		if err := fetch.WriteTopicsFile(savePath, topics, maxResults, out); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved fetch to %s\n", savePath)
	}

	if doArchive, _ := cmd.Flags().GetBool("archive"); doArchive {
		store, err := archive.NewStore(cfg.Archive)
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.SaveBatch(context.Background(), topics, out.Papers)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Archived batch %s\n", id)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return fetch.FormatJSON(out, os.Stdout)
	}
	fetch.FormatTable(out, os.Stdout)
	return nil
}

func init() {
	fetchCmd.Flags().StringSlice("domains", nil, "topics to query (comma-separated; default: configured domain list)")
	fetchCmd.Flags().String("topics-file", "", "YAML file listing topics to query")
	fetchCmd.Flags().Int("max-results", 0, "maximum results per topic (0 = configured default)")
	fetchCmd.Flags().String("save", "", "write topics and results to a YAML file")
	fetchCmd.Flags().Bool("archive", false, "save the fetched batch to the local archive")
	fetchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(fetchCmd)
}
