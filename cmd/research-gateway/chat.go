// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/meshintel/research-gateway/internal/answer"
	"github.com/meshintel/research-gateway/internal/llm"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the research assistant interactively",
	Long: `Chat starts an interactive session with the AI gateway. The transcript
lives only for the session; each question is answered independently, with
no prior turns passed back to the model. Exit with Ctrl-D or "exit".`,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := loadPipelineConfig()
	svc := answer.NewService(llm.NewClient(cfg.Gateway, newHTTPClient(cfg.Gateway.Timeout)))

	rl, err := readline.New("you> ")
	if err != nil {
		return fmt.Errorf("starting readline: %w", err)
	}
	defer rl.Close()

	var transcript answer.Transcript
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		question := strings.TrimSpace(line)
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		reply, err := svc.Chat(context.Background(), &transcript, question)
		if err != nil {
			if errors.Is(err, answer.ErrEmptyQuestion) {
				continue
			}
			fmt.Printf("error: %v\n", describePipelineError(err))
			continue
		}
		fmt.Printf("assistant> %s\n", reply)
	}

	fmt.Printf("%d turns in transcript\n", len(transcript.Messages))
	return nil
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
