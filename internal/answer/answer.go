// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package answer is the query pipeline: it validates a user question,
// shapes the prompt, invokes the generative gateway once, and returns the
// textual answer unmodified.
package answer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"text/template"

	"github.com/meshintel/research-gateway/pkg/types"
)

// ErrEmptyQuestion is returned for empty or whitespace-only questions.
// It is raised before any network call is made.
var ErrEmptyQuestion = errors.New("question is empty: provide a research question")

// Completer is the single call contract with the generative gateway.
// *llm.Client satisfies it; tests substitute a fake.
type Completer interface {
	Complete(ctx context.Context, system string, msgs []types.Message) (string, error)
}

// answerSystemPrompt steers the model toward research summarization.
var answerSystemPrompt = `You are a research assistant specializing in academic literature. Given a research question, produce a concise, well-structured answer summarizing the relevant state of the art. When supporting context is provided, ground your answer in it. Answer in plain prose without markdown headings.`

// contextPromptTmpl wraps a question with retrieved context for the model.
var contextPromptTmpl = template.Must(template.New("context").Parse(`Context:
{{.Context}}

Question: {{.Question}}`))

// Service runs the query pipeline against an injected Completer.
type Service struct {
	completer Completer
}

// NewService builds a Service.
func NewService(c Completer) *Service {
	return &Service{completer: c}
}

// Answer poses a question to the gateway, optionally biased by a free-text
// context blob, and returns the answer text exactly as produced. Empty or
// whitespace-only questions fail locally with ErrEmptyQuestion.
func (s *Service) Answer(ctx context.Context, question, contextText string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}

	content := question
	if strings.TrimSpace(contextText) != "" {
		var buf bytes.Buffer
		if err := contextPromptTmpl.Execute(&buf, struct {
			Context  string
			Question string
		}{Context: contextText, Question: question}); err != nil {
			return "", err
		}
		content = buf.String()
	}

	return s.completer.Complete(ctx, answerSystemPrompt, []types.Message{
		{Role: types.RoleUser, Content: content},
	})
}
