// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package answer

import (
	"context"
	"strings"

	"github.com/meshintel/research-gateway/pkg/types"
)

// Transcript is the ordered turn history for one conversation. It lives
// only as long as the conversation view that owns it; nothing persists it.
type Transcript struct {
	Messages []types.Message
}

// Append adds one turn to the transcript.
func (t *Transcript) Append(role types.Role, content string) {
	t.Messages = append(t.Messages, types.Message{Role: role, Content: content})
}

// Chat runs one conversation turn: the question is answered context-free
// and the question and answer are appended to the transcript. The user turn
// is recorded as soon as validation passes, so a failed gateway call leaves
// the question in the history without an assistant reply. Prior turns are
// not passed back to the gateway; each call stands alone.
func (s *Service) Chat(ctx context.Context, t *Transcript, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}
	t.Append(types.RoleUser, question)

	reply, err := s.Answer(ctx, question, "")
	if err != nil {
		return "", err
	}
	t.Append(types.RoleAssistant, reply)
	return reply, nil
}
