// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/meshintel/research-gateway/internal/archive"
	"github.com/meshintel/research-gateway/internal/fetch"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Inspect locally archived fetch batches",
	Long: `Archive manages the local SQLite archive of fetched paper batches.
Use "fetch --archive" to save a batch, then list, show, or full-text
search the archived papers here.`,
}

// --- list subcommand ---

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived batches, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openArchive()
		if err != nil {
			return err
		}
		defer store.Close()

		batches, err := store.ListBatches(context.Background())
		if err != nil {
			return err
		}
		if len(batches) == 0 {
			fmt.Println("No archived batches.")
			return nil
		}

		fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-6s  %s\n", "ID", "Created", "Papers", "Topics")
		fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
		for _, b := range batches {
			topics := strings.Join(b.Topics, ", ")
			if len(topics) > 34 {
				topics = topics[:31] + "..."
			}
			fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-6d  %s\n",
				b.ID, b.CreatedAt.Format(time.RFC3339), b.Count, topics)
		}
		return nil
	},
}

// --- show subcommand ---

var archiveShowCmd = &cobra.Command{
	Use:   "show [batch-id]",
	Short: "Show the papers of one archived batch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openArchive()
		if err != nil {
			return err
		}
		defer store.Close()

		_, papers, err := store.GetBatch(context.Background(), args[0])
		if err != nil {
			return err
		}
		fetch.FormatTable(fetch.Output{Papers: papers, Count: len(papers)}, os.Stdout)
		return nil
	},
}

// --- search subcommand ---

var archiveSearchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Full-text search archived paper titles and summaries",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := openArchive()
		if err != nil {
			return err
		}
		defer store.Close()

		papers, err := store.SearchPapers(context.Background(), strings.Join(args, " "), limit)
		if err != nil {
			return err
		}
		fetch.FormatTable(fetch.Output{Papers: papers, Count: len(papers)}, os.Stdout)
		return nil
	},
}

func openArchive() (*archive.Store, error) {
	cfg := loadPipelineConfig()
	return archive.NewStore(cfg.Archive)
}

func init() {
	archiveSearchCmd.Flags().Int("limit", 20, "maximum search results")

	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveShowCmd)
	archiveCmd.AddCommand(archiveSearchCmd)

	rootCmd.AddCommand(archiveCmd)
}
