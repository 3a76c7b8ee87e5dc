// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/meshintel/research-gateway/pkg/types"
)

// FormatTable writes fetched papers as a human-readable table to w.
func FormatTable(out Output, w io.Writer) {
	if len(out.Papers) == 0 {
		fmt.Fprintln(w, "No papers found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-56s  %-20s  %-10s  %s\n",
		"#", "Title", "Authors", "Published", "Topic")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, p := range out.Papers {
		title := p.Title
		if len(title) > 56 {
			title = title[:53] + "..."
		}
		published := p.Published
		if len(published) > 10 {
			published = published[:10]
		}
		fmt.Fprintf(w, "%-4d  %-56s  %-20s  %-10s  %s\n",
			i+1, title, formatAuthors(p.Authors), published, p.Topic)
	}

	fmt.Fprintf(w, "\n%d papers", out.Count)
	if len(out.TopicErrors) > 0 {
		fmt.Fprintf(w, " (%d topics failed)", len(out.TopicErrors))
	}
	fmt.Fprintln(w)
}

// FormatJSON writes fetched papers as indented JSON to w, in the same
// shape as the HTTP fetch response.
func FormatJSON(out Output, w io.Writer) error {
	papers := out.Papers
	if papers == nil {
		papers = []types.PaperRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Papers []types.PaperRecord `json:"papers"`
		Count  int                 `json:"count"`
	}{Papers: papers, Count: out.Count})
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
