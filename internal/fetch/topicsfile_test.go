// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"path/filepath"
	"testing"

	"github.com/meshintel/research-gateway/pkg/types"
)

func TestTopicsFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.yaml")

	out := Output{
		Papers: []types.PaperRecord{
			{
				Identifier: "http://arxiv.org/abs/2400.00001",
				Title:      "Paper One",
				Summary:    "Summary one.",
				Authors:    []string{"A. Author"},
				Published:  "2024-01-01T00:00:00Z",
				Link:       "http://arxiv.org/abs/2400.00001",
				Topic:      "robotics",
			},
		},
		Count:       1,
		TopicErrors: []string{"cybersecurity: arXiv API returned HTTP 500"},
	}

	if err := WriteTopicsFile(path, []string{"robotics", "cybersecurity"}, 10, out); err != nil {
		t.Fatalf("WriteTopicsFile() error = %v", err)
	}

	tf, err := ReadTopicsFile(path)
	if err != nil {
		t.Fatalf("ReadTopicsFile() error = %v", err)
	}

	if len(tf.Topics) != 2 || tf.Topics[0] != "robotics" {
		t.Errorf("Topics = %v", tf.Topics)
	}
	if tf.Config.MaxResultsPerTopic != 10 {
		t.Errorf("MaxResultsPerTopic = %d, want 10", tf.Config.MaxResultsPerTopic)
	}
	if len(tf.Results) != 1 || tf.Results[0].Title != "Paper One" {
		t.Errorf("Results = %+v", tf.Results)
	}
	if tf.Summary.Total != 1 {
		t.Errorf("Summary.Total = %d, want 1", tf.Summary.Total)
	}
	if len(tf.Summary.TopicErrors) != 1 {
		t.Errorf("Summary.TopicErrors = %v", tf.Summary.TopicErrors)
	}
	if tf.Summary.Timestamp.IsZero() {
		t.Error("Summary.Timestamp is zero")
	}
}

func TestReadTopicsFileErrors(t *testing.T) {
	if _, err := ReadTopicsFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("ReadTopicsFile() on missing file: error = nil, want error")
	}

	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := WriteTopicsFile(path, nil, 5, Output{}); err != nil {
		t.Fatalf("WriteTopicsFile() error = %v", err)
	}
	if _, err := ReadTopicsFile(path); err == nil {
		t.Error("ReadTopicsFile() with no topics: error = nil, want error")
	}
}
