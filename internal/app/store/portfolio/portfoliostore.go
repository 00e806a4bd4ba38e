// internal/app/store/portfolio/portfoliostore.go
package portfoliostore

import (
	"context"
	"time"

	"github.com/dalemusser/stratafolio/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the portfolios collection.
// Stratafolio uses a singleton portfolio document (one per deployment),
// addressed by the fixed key models.PortfolioKey.
type Store struct {
	c *mongo.Collection
}

// New creates a new portfolio store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("portfolios")}
}

// Get returns the portfolio document.
// Returns mongo.ErrNoDocuments if it has not been seeded yet.
func (s *Store) Get(ctx context.Context) (*models.Portfolio, error) {
	var p models.Portfolio
	filter := bson.M{"key": models.PortfolioKey}
	if err := s.c.FindOne(ctx, filter).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Replace persists the whole document with an upsert.
// Every admin write goes through here: the document is small and writes are
// rare, so whole-document replacement keeps the store and the in-memory copy
// trivially comparable.
func (s *Store) Replace(ctx context.Context, p *models.Portfolio) error {
	p.Key = models.PortfolioKey
	p.UpdatedAt = time.Now().UTC()

	// _id carries omitempty, so a zero ObjectID is left out of the
	// replacement and upsert assigns one. A loaded document keeps its _id.
	filter := bson.M{"key": models.PortfolioKey}
	opts := options.Replace().SetUpsert(true)
	_, err := s.c.ReplaceOne(ctx, filter, p, opts)
	return err
}

// Exists checks whether the portfolio document has been created.
func (s *Store) Exists(ctx context.Context) (bool, error) {
	count, err := s.c.CountDocuments(ctx, bson.M{"key": models.PortfolioKey})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SeedIfAbsent creates the document from the default template when none
// exists. It is idempotent and safe to run on every startup.
func (s *Store) SeedIfAbsent(ctx context.Context) (bool, error) {
	exists, err := s.Exists(ctx)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	return true, s.Replace(ctx, models.DefaultPortfolio())
}
