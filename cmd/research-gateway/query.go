// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meshintel/research-gateway/internal/answer"
	"github.com/meshintel/research-gateway/internal/llm"
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Ask the AI gateway a one-shot research question",
	Long: `Query sends a single research question to the generative AI gateway and
prints the answer. Pass --context to bias the answer with free-text
context, for example a block of retrieved paper summaries.`,
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")
	contextText, _ := cmd.Flags().GetString("context")
	if contextFile, _ := cmd.Flags().GetString("context-file"); contextFile != "" {
		var err error
		contextText, err = contextFromFile(contextFile)
		if err != nil {
			return err
		}
	}

	cfg := loadPipelineConfig()
	svc := answer.NewService(llm.NewClient(cfg.Gateway, newHTTPClient(cfg.Gateway.Timeout)))

	reply, err := svc.Answer(context.Background(), question, contextText)
	if err != nil {
		return describePipelineError(err)
	}
	fmt.Println(reply)
	return nil
}

// describePipelineError maps classified gateway failures to the distinct
// user-facing messages; everything else passes through.
func describePipelineError(err error) error {
	switch {
	case llm.IsRateLimited(err):
		return fmt.Errorf("too many requests, wait a moment and retry")
	case llm.IsQuotaExhausted(err):
		return fmt.Errorf("AI gateway quota exhausted, add credits to your workspace")
	default:
		return err
	}
}

func init() {
	queryCmd.Flags().String("context", "", "free-text context passed alongside the question")
	queryCmd.Flags().String("context-file", "", "file whose contents are passed as context")

	rootCmd.AddCommand(queryCmd)
}

// contextFromFile reads an optional context file for query/analyze commands.
func contextFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading context file: %w", err)
	}
	return string(data), nil
}
