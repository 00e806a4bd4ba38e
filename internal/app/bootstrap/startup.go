// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/stratafolio/internal/app/resources"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after DB connections and schema/index setup are complete,
// but before the HTTP handler is built and requests are served.
//
// It loads the shared template partials and warms the portfolio content
// cache. A failed warm load aborts startup: EnsureSchema has already
// seeded the document, so a missing document here means the database is
// genuinely unreachable or broken, and serving requests without content
// would only produce unavailable pages.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	if err := deps.Content.Load(ctx); err != nil {
		logger.Error("failed to load portfolio content", zap.Error(err))
		return err
	}
	logger.Info("portfolio content loaded")

	return nil
}
