// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves paper metadata from the arXiv API and normalizes
// it into PaperRecords. One fetch call fans out over a list of topics with
// bounded concurrency; a failing topic is logged and skipped, never aborting
// the aggregate.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/meshintel/research-gateway/pkg/types"
)

const (
	defaultMaxResults  = 20
	defaultConcurrency = 3
)

// DefaultDomains is the topic list used when a request supplies none.
var DefaultDomains = []string{
	"computer vision machine learning",
	"natural language processing",
	"bioinformatics",
	"robotics",
	"cybersecurity",
	"climate modeling machine learning",
}

// Fetcher aggregates per-topic arXiv queries. Construct with NewFetcher so
// call sites share one explicit client instead of package-level state.
type Fetcher struct {
	client *Client
	cfg    types.FetcherConfig
	log    *zap.Logger
}

// Output holds the aggregated records and per-topic failure messages.
// Count always equals len(Papers); it is reported to the caller alongside
// the list. TopicErrors is diagnostic only and is never surfaced per topic.
type Output struct {
	Papers      []types.PaperRecord
	Count       int
	TopicErrors []string
}

// NewFetcher builds a Fetcher from config. A nil logger disables logging.
func NewFetcher(cfg types.FetcherConfig, hc *http.Client, log *zap.Logger) *Fetcher {
	if log == nil {
		log = zap.NewNop()
	}
	if len(cfg.Domains) == 0 {
		cfg.Domains = DefaultDomains
	}
	if cfg.MaxResultsPerDomain <= 0 {
		cfg.MaxResultsPerDomain = defaultMaxResults
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	return &Fetcher{
		client: &Client{HTTPClient: hc, UserAgent: cfg.UserAgent},
		cfg:    cfg,
		log:    log,
	}
}

// FetchAll queries every topic and concatenates the results in topic-list
// order. maxPerTopic <= 0 falls back to the configured default. A single
// topic's transport or parse failure reduces the result set; it does not
// fail the call. Topics are fetched by a bounded worker pool, but the
// output ordering is deterministic by topic position.
func (f *Fetcher) FetchAll(ctx context.Context, topics []string, maxPerTopic int) (Output, error) {
	if len(topics) == 0 {
		topics = f.cfg.Domains
	}
	if maxPerTopic <= 0 {
		maxPerTopic = f.cfg.MaxResultsPerDomain
	}

	f.log.Info("fetching papers",
		zap.Int("topics", len(topics)),
		zap.Int("max_per_topic", maxPerTopic))

	perTopic := make([][]types.PaperRecord, len(topics))
	perErr := make([]error, len(topics))

	sem := make(chan struct{}, f.cfg.Concurrency)
	var wg sync.WaitGroup
	for i, topic := range topics {
		wg.Add(1)
		go func(i int, topic string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			perTopic[i], perErr[i] = f.client.Search(ctx, topic, maxPerTopic)
		}(i, topic)
	}
	wg.Wait()

	var out Output
	for i, topic := range topics {
		if err := perErr[i]; err != nil {
			out.TopicErrors = append(out.TopicErrors, fmt.Sprintf("%s: %v", topic, err))
			f.log.Warn("topic fetch failed", zap.String("topic", topic), zap.Error(err))
			continue
		}
		f.log.Info("topic fetched",
			zap.String("topic", topic),
			zap.Int("papers", len(perTopic[i])))
		out.Papers = append(out.Papers, perTopic[i]...)
	}

	out.Count = len(out.Papers)
	f.log.Info("fetch complete", zap.Int("total", out.Count))
	return out, nil
}
