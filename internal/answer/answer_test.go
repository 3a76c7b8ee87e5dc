// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package answer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshintel/research-gateway/pkg/types"
)

// fakeCompleter records the last call and returns a canned reply or error.
type fakeCompleter struct {
	calls  int
	system string
	msgs   []types.Message
	reply  string
	err    error
}

func (f *fakeCompleter) Complete(_ context.Context, system string, msgs []types.Message) (string, error) {
	f.calls++
	f.system = system
	f.msgs = msgs
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestAnswerEmptyQuestion(t *testing.T) {
	for _, q := range []string{"", "   ", "\n\t "} {
		fake := &fakeCompleter{reply: "should not be used"}
		svc := NewService(fake)

		_, err := svc.Answer(context.Background(), q, "")
		require.ErrorIs(t, err, ErrEmptyQuestion)

		// Validation happens locally: no gateway round-trip is wasted.
		assert.Equal(t, 0, fake.calls)
	}
}

func TestAnswerPassThrough(t *testing.T) {
	const reply = "  Recent work shows...  \n\nwith trailing whitespace  "
	fake := &fakeCompleter{reply: reply}
	svc := NewService(fake)

	got, err := svc.Answer(context.Background(), "trends in robotics?", "")
	require.NoError(t, err)

	// The answer is returned unmodified: no trimming, truncation, or formatting.
	assert.Equal(t, reply, got)

	require.Len(t, fake.msgs, 1)
	assert.Equal(t, types.RoleUser, fake.msgs[0].Role)
	assert.Equal(t, "trends in robotics?", fake.msgs[0].Content)
	assert.NotEmpty(t, fake.system)
}

func TestAnswerWithContext(t *testing.T) {
	fake := &fakeCompleter{reply: "ok"}
	svc := NewService(fake)

	_, err := svc.Answer(context.Background(), "what changed?", "Recent research in robotics shows advances.")
	require.NoError(t, err)

	require.Len(t, fake.msgs, 1)
	content := fake.msgs[0].Content
	assert.Contains(t, content, "Recent research in robotics shows advances.")
	assert.Contains(t, content, "what changed?")
}

func TestAnswerBlankContextIgnored(t *testing.T) {
	fake := &fakeCompleter{reply: "ok"}
	svc := NewService(fake)

	_, err := svc.Answer(context.Background(), "plain question", "   \n ")
	require.NoError(t, err)

	require.Len(t, fake.msgs, 1)
	assert.Equal(t, "plain question", fake.msgs[0].Content)
}

func TestAnswerPropagatesGatewayError(t *testing.T) {
	gwErr := errors.New("gateway upstream: HTTP 500")
	fake := &fakeCompleter{err: gwErr}
	svc := NewService(fake)

	_, err := svc.Answer(context.Background(), "question", "")
	assert.ErrorIs(t, err, gwErr)
}

func TestChatAppendsTurns(t *testing.T) {
	fake := &fakeCompleter{reply: "assistant reply"}
	svc := NewService(fake)

	var tr Transcript
	reply, err := svc.Chat(context.Background(), &tr, "  first question ")
	require.NoError(t, err)
	assert.Equal(t, "assistant reply", reply)

	require.Len(t, tr.Messages, 2)
	assert.Equal(t, types.RoleUser, tr.Messages[0].Role)
	assert.Equal(t, "first question", tr.Messages[0].Content)
	assert.Equal(t, types.RoleAssistant, tr.Messages[1].Role)
	assert.Equal(t, "assistant reply", tr.Messages[1].Content)

	// Each turn is independent: the transcript is never sent back.
	require.Len(t, fake.msgs, 1)
	assert.Equal(t, "first question", fake.msgs[0].Content)

	_, err = svc.Chat(context.Background(), &tr, "second question")
	require.NoError(t, err)
	assert.Len(t, tr.Messages, 4)
	require.Len(t, fake.msgs, 1)
	assert.Equal(t, "second question", fake.msgs[0].Content)
}

func TestChatFailedCallKeepsUserTurn(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("boom")}
	svc := NewService(fake)

	var tr Transcript
	_, err := svc.Chat(context.Background(), &tr, "doomed question")
	require.Error(t, err)

	require.Len(t, tr.Messages, 1)
	assert.Equal(t, types.RoleUser, tr.Messages[0].Role)
}

func TestChatEmptyQuestion(t *testing.T) {
	fake := &fakeCompleter{reply: "unused"}
	svc := NewService(fake)

	var tr Transcript
	_, err := svc.Chat(context.Background(), &tr, "   ")
	require.ErrorIs(t, err, ErrEmptyQuestion)
	assert.Empty(t, tr.Messages)
	assert.Equal(t, 0, fake.calls)
}

func TestAnalyze(t *testing.T) {
	fake := &fakeCompleter{reply: "The paper proposes..."}
	svc := NewService(fake)

	text := strings.Repeat("Extracted PDF text. ", 10)
	got, err := svc.Analyze(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, "The paper proposes...", got)

	require.Len(t, fake.msgs, 1)
	assert.Equal(t, text, fake.msgs[0].Content)
	assert.NotEqual(t, answerSystemPrompt, fake.system, "analysis uses its own prompt")
}

func TestAnalyzeEmptyText(t *testing.T) {
	fake := &fakeCompleter{}
	svc := NewService(fake)

	_, err := svc.Analyze(context.Background(), " \n ")
	require.ErrorIs(t, err, ErrEmptyText)
	assert.Equal(t, 0, fake.calls)
}
