// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/meshintel/research-gateway/internal/httputil"
	"github.com/meshintel/research-gateway/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// Client queries the arXiv API for one topic at a time.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string

	// MaxRetries bounds the 429 backoff loop. Zero means the default.
	MaxRetries int
}

// Search queries arXiv with topic as a full-text search term and returns up
// to maxResults records ranked by relevance, descending. Entries missing
// both a usable title and summary are dropped; other absent fields yield
// empty values.
func (c *Client) Search(ctx context.Context, topic string, maxResults int) ([]types.PaperRecord, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("empty topic")
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	reqURL := fmt.Sprintf("%s?search_query=all:%s&start=0&max_results=%d&sortBy=relevance&sortOrder=descending",
		arxivAPIBase, url.QueryEscape(topic), maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, c.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var records []types.PaperRecord
	for _, entry := range feed.Entries {
		title := normalizeSpace(entry.Title)
		summary := normalizeSpace(entry.Summary)
		if title == "" || summary == "" {
			continue
		}

		id := strings.TrimSpace(entry.ID)
		r := types.PaperRecord{
			Identifier: id,
			Title:      title,
			Summary:    summary,
			Authors:    []string{},
			Published:  strings.TrimSpace(entry.Published),
			Link:       id,
			Topic:      topic,
		}
		for _, a := range entry.Authors {
			if name := strings.TrimSpace(a.Name); name != "" {
				r.Authors = append(r.Authors, name)
			}
		}
		records = append(records, r)
	}
	return records, nil
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string        `xml:"id"`
	Title     string        `xml:"title"`
	Summary   string        `xml:"summary"`
	Published string        `xml:"published"`
	Authors   []arxivAuthor `xml:"author"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

// normalizeSpace trims s and collapses every internal run of whitespace to
// a single space. Idempotent.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
