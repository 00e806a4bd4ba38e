// internal/app/system/seeding/seeding.go
package seeding

import (
	"context"

	portfoliostore "github.com/dalemusser/stratafolio/internal/app/store/portfolio"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SeedAll seeds default data if not already present.
func SeedAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	return seedPortfolio(ctx, db, logger)
}

// seedPortfolio creates the portfolio document from the default template when
// a deployment starts against an empty database.
func seedPortfolio(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	store := portfoliostore.New(db)

	created, err := store.SeedIfAbsent(ctx)
	if err != nil {
		logger.Error("failed to seed portfolio document", zap.Error(err))
		return err
	}
	if created {
		logger.Info("seeded default portfolio document")
	}
	return nil
}
