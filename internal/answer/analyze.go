// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package answer

import (
	"context"
	"errors"
	"strings"

	"github.com/meshintel/research-gateway/pkg/types"
)

// ErrEmptyText is returned when no extracted text is supplied for analysis.
var ErrEmptyText = errors.New("text is empty: provide extracted PDF text")

// analyzeSystemPrompt steers the model toward structured paper analysis.
// Text extraction itself happens upstream; this pipeline only sees the text.
var analyzeSystemPrompt = `You are a research paper analyst. Given the extracted text of an academic paper, summarize its key contributions, methodology, and findings, and note limitations or open questions. Answer in plain prose.`

// Analyze runs the PDF-analysis variant of the pipeline over already
// extracted text. The same single-call contract and failure classification
// as Answer apply.
func (s *Service) Analyze(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}

	return s.completer.Complete(ctx, analyzeSystemPrompt, []types.Message{
		{Role: types.RoleUser, Content: text},
	})
}
