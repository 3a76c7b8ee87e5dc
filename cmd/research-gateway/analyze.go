// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meshintel/research-gateway/internal/answer"
	"github.com/meshintel/research-gateway/internal/llm"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text-file]",
	Short: "Analyze extracted paper text with the AI gateway",
	Long: `Analyze sends the contents of a text file to the AI gateway and prints
the analysis. The file holds text already extracted from a PDF by an
external tool; extraction itself is not part of this command.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading text file: %w", err)
	}

	cfg := loadPipelineConfig()
	svc := answer.NewService(llm.NewClient(cfg.Gateway, newHTTPClient(cfg.Gateway.Timeout)))

	analysis, err := svc.Analyze(context.Background(), string(data))
	if err != nil {
		return describePipelineError(err)
	}
	fmt.Println(analysis)
	return nil
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
