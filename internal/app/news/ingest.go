// internal/app/news/ingest.go
package news

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	newsstore "github.com/dalemusser/cyberhub/internal/app/store/news"
	"github.com/dalemusser/cyberhub/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultPerFeedLimit is how many items each source contributes per run,
// so no single prolific feed dominates the panel.
const DefaultPerFeedLimit = 2

// DefaultCooldown is the minimum gap between refresh runs. A run inside
// the cooldown window is skipped, which makes duplicate scheduler firings
// and restarts harmless.
const DefaultCooldown = 7 * 24 * time.Hour

// Ingestor runs one refresh pass over the configured sources.
type Ingestor struct {
	store        *newsstore.Store
	fetcher      *Fetcher
	sources      []Source
	perFeedLimit int
	cooldown     time.Duration
	log          *zap.Logger
}

// NewIngestor wires an Ingestor. Zero perFeedLimit and cooldown take the
// defaults.
func NewIngestor(store *newsstore.Store, sources []Source, perFeedLimit int, cooldown time.Duration, logger *zap.Logger) *Ingestor {
	if perFeedLimit <= 0 {
		perFeedLimit = DefaultPerFeedLimit
	}
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Ingestor{
		store:        store,
		fetcher:      NewFetcher(),
		sources:      sources,
		perFeedLimit: perFeedLimit,
		cooldown:     cooldown,
		log:          logger,
	}
}

// Run executes a refresh pass unless one ran within the cooldown window.
// A skipped run is not an error.
func (ing *Ingestor) Run(ctx context.Context) error {
	last, ok, err := ing.store.LastRun(ctx)
	if err != nil {
		return err
	}
	if ok && time.Since(last) < ing.cooldown {
		ing.log.Info("skipping news refresh, within cooldown",
			zap.Time("last_run", last),
			zap.Duration("cooldown", ing.cooldown))
		return nil
	}
	return ing.refresh(ctx)
}

// ForceRefresh executes a refresh pass regardless of the cooldown. The
// coordinator-facing refresh action uses this.
func (ing *Ingestor) ForceRefresh(ctx context.Context) error {
	return ing.refresh(ctx)
}

// refresh fetches every source, tolerating per-feed failures, and commits
// all surviving items in one batch. The run marker is written only after
// the batch commits, so a failed run retries at the next opportunity.
func (ing *Ingestor) refresh(ctx context.Context) error {
	runID := uuid.NewString()
	log := ing.log.With(zap.String("run_id", runID))
	log.Info("starting cyber news refresh", zap.Int("sources", len(ing.sources)))

	now := time.Now().UTC()
	var items []models.NewsItem
	seen := make(map[string]bool)

	for _, src := range ing.sources {
		body, err := ing.fetcher.Fetch(ctx, src.URL)
		if err != nil {
			log.Warn("feed fetch failed", zap.String("feed", src.Name), zap.Error(err))
			continue
		}
		parsed, err := Parse(body, now)
		if err != nil {
			log.Warn("feed parse failed", zap.String("feed", src.Name), zap.Error(err))
			continue
		}

		// Balanced ingestion: first perFeedLimit items in document order.
		if len(parsed) > ing.perFeedLimit {
			parsed = parsed[:ing.perFeedLimit]
		}
		for _, it := range parsed {
			id := DocID(it.Link)
			if seen[id] {
				continue
			}
			seen[id] = true
			items = append(items, models.NewsItem{
				ID:          id,
				Title:       it.Title,
				Source:      src.Name,
				Link:        it.Link,
				PublishedAt: it.Published,
				FetchedAt:   now,
			})
		}
	}

	if err := ing.store.UpsertBatch(ctx, items); err != nil {
		return err
	}
	if err := ing.store.MarkRan(ctx, now); err != nil {
		return err
	}

	log.Info("cyber news refresh complete", zap.Int("items", len(items)))
	return nil
}

// DocID derives the stable storage key for an article link. Re-ingesting
// the same link always lands on the same document.
func DocID(link string) string {
	return strings.TrimRight(base64.StdEncoding.EncodeToString([]byte(link)), "=")
}
