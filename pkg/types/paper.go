// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the research gateway:
// paper records produced by the source fetcher, chat transcript messages,
// and the configuration structs consumed by every stage.
package types

// PaperRecord is one retrieved publication, normalized from the source feed.
// The JSON field names are the wire contract consumed by the front-end.
type PaperRecord struct {
	// Identifier is the canonical source URL/ID for the entry. Unique within
	// a single fetch batch; a source may reassign versions across fetches.
	Identifier string `json:"id" yaml:"id"`

	// Title is the paper title, whitespace-normalized.
	Title string `json:"title" yaml:"title"`

	// Summary is the paper abstract, whitespace-normalized.
	Summary string `json:"summary" yaml:"summary"`

	// Authors lists author names in source feed order. May be empty.
	Authors []string `json:"authors" yaml:"authors"`

	// Published is the ISO-8601 date-time string as supplied by the source,
	// or empty when the source omitted it. Never fabricated.
	Published string `json:"published" yaml:"published"`

	// Link is the human-readable page for the entry. Populated from the
	// same source field as Identifier.
	Link string `json:"link" yaml:"link"`

	// Topic is the verbatim query string that produced this record. Used
	// for display grouping only, not a normalized category.
	Topic string `json:"domain" yaml:"domain"`
}
