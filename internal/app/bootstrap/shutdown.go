// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown cleanly tears down the news worker and DB connections.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if newsRefreshWorker != nil {
		logger.Info("stopping news refresh worker")
		newsRefreshWorker.Stop()
	}
	if deps.CyberHubMongoClient != nil {
		logger.Info("disconnecting CyberHub MongoDB client")
		if err := deps.CyberHubMongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}
