package enrichment

import (
	"context"
	"sync"

	"styleguide/internal/logging"

	"golang.org/x/sync/errgroup"
)

// DefaultMaxLookups caps the lookups made for a single analysis.
const DefaultMaxLookups = 2

// Enricher runs capped, concurrent reference lookups. Failures are logged
// and absorbed; the returned map simply lacks the failed topics.
type Enricher struct {
	fetcher    Fetcher
	maxLookups int
	logger     *logging.AppLogger
}

// NewEnricher wraps a Fetcher. maxLookups <= 0 selects DefaultMaxLookups.
func NewEnricher(f Fetcher, maxLookups int, logger *logging.AppLogger) *Enricher {
	if maxLookups <= 0 {
		maxLookups = DefaultMaxLookups
	}
	if logger == nil {
		logger = logging.GetDefault()
	}
	return &Enricher{fetcher: f, maxLookups: maxLookups, logger: logger}
}

// Enrich fetches one reference per topic, for at most maxLookups topics.
// Completion order does not matter: each topic owns its own map key.
func (e *Enricher) Enrich(ctx context.Context, topics []string) map[string]Reference {
	out := make(map[string]Reference)
	if e == nil || e.fetcher == nil || len(topics) == 0 {
		return out
	}
	if len(topics) > e.maxLookups {
		topics = topics[:e.maxLookups]
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	for _, topic := range topics {
		g.Go(func() error {
			ref, err := e.fetcher.Fetch(ctx, topic)
			if err != nil {
				e.logger.Warn("Enrichment lookup failed", "topic", topic, "error", err)
				return nil
			}
			if ref == nil {
				return nil
			}
			mu.Lock()
			out[topic] = *ref
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	e.logger.Debug("Enrichment completed", "requested", len(topics), "resolved", len(out))
	return out
}
