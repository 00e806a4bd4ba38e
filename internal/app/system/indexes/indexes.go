// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensurePortfolios(ctx, db); err != nil {
		problems = append(problems, "portfolios: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New("index creation failed: " + strings.Join(problems, "; "))
	}
	return nil
}

// ensurePortfolios enforces the singleton invariant at the database level.
// The unique index on key means a second document under the same key can
// never be created, whatever code path writes it.
func ensurePortfolios(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("portfolios")

	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_key"),
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := c.Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("create uniq_key: %w", err)
	}
	return nil
}

// LogIndexes dumps the index names of the portfolios collection, for debugging
// schema drift on long-lived deployments.
func LogIndexes(ctx context.Context, db *mongo.Database, logger *zap.Logger) {
	cur, err := db.Collection("portfolios").Indexes().List(ctx)
	if err != nil {
		logger.Warn("list indexes failed", zap.Error(err))
		return
	}
	defer cur.Close(ctx)

	var names []string
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			continue
		}
		if name, ok := doc["name"].(string); ok {
			names = append(names, name)
		}
	}
	logger.Debug("portfolios indexes", zap.Strings("names", names))
}
