// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/meshintel/research-gateway/pkg/types"
)

// TopicsFile is the on-disk representation of a topic list and, optionally,
// the results of the fetch that ran it. A researcher can save a fetch to a
// file and reload the topic list later without retyping it.
type TopicsFile struct {
	Topics  []string            `yaml:"topics"`
	Config  TopicsFileConfig    `yaml:"config"`
	Results []types.PaperRecord `yaml:"results,omitempty"`
	Summary FetchSummary        `yaml:"summary,omitempty"`
}

// TopicsFileConfig stores the fetch configuration that produced the results.
type TopicsFileConfig struct {
	MaxResultsPerTopic int `yaml:"max_results_per_topic"`
}

// FetchSummary stores result statistics and a timestamp.
type FetchSummary struct {
	Total       int       `yaml:"total"`
	TopicErrors []string  `yaml:"topic_errors,omitempty"`
	Timestamp   time.Time `yaml:"timestamp"`
}

// WriteTopicsFile saves topics and fetch results to a YAML file.
func WriteTopicsFile(path string, topics []string, maxPerTopic int, out Output) error {
	tf := TopicsFile{
		Topics: topics,
		Config: TopicsFileConfig{
			MaxResultsPerTopic: maxPerTopic,
		},
		Results: out.Papers,
		Summary: FetchSummary{
			Total:       out.Count,
			TopicErrors: out.TopicErrors,
			Timestamp:   time.Now(),
		},
	}

	data, err := yaml.Marshal(&tf)
	if err != nil {
		return fmt.Errorf("marshaling topics file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadTopicsFile loads a previously saved topics file from disk.
func ReadTopicsFile(path string) (*TopicsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading topics file: %w", err)
	}
	var tf TopicsFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parsing topics file: %w", err)
	}
	if len(tf.Topics) == 0 {
		return nil, fmt.Errorf("topics file %s lists no topics", path)
	}
	return &tf, nil
}
