// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/cyberhub/internal/app/news"
	"github.com/dalemusser/cyberhub/internal/app/resources"
	newsstore "github.com/dalemusser/cyberhub/internal/app/store/news"
	"github.com/dalemusser/cyberhub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Package-level handles created during Startup: the ingestor is shared with
// the news feature's manual refresh, and the worker is stopped in Shutdown.
var (
	newsIngestor      *news.Ingestor
	newsRefreshWorker *workers.NewsRefresh
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. CyberHub
// loads shared templates here and starts the weekly news refresh worker.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	sources, err := news.ParseSources(appCfg.NewsFeeds)
	if err != nil {
		return fmt.Errorf("news feeds: %w", err)
	}
	loc, err := time.LoadLocation(appCfg.NewsRefreshTimezone)
	if err != nil {
		return fmt.Errorf("news refresh timezone: %w", err)
	}

	store := newsstore.New(deps.CyberHubMongoDatabase, logger)
	newsIngestor = news.NewIngestor(store, sources, appCfg.NewsPerFeedLimit, appCfg.NewsCooldown, logger)
	newsRefreshWorker = workers.NewNewsRefresh(newsIngestor, logger,
		loc, time.Weekday(appCfg.NewsRefreshWeekday), appCfg.NewsRefreshHour)
	newsRefreshWorker.Start()

	return nil
}
