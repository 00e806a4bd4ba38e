package testutil

import (
	"context"
	"testing"

	"github.com/dalemusser/stratafolio/internal/app/system/content"
	"github.com/dalemusser/stratafolio/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MemPortfolioStore is an in-memory content.Store for handler tests. It
// clones documents on the way in and out so test code and the cache never
// share slices.
type MemPortfolioStore struct {
	Doc      *models.Portfolio
	Replaces int

	// GetErr and ReplaceErr, when set, are returned by the next matching call.
	GetErr     error
	ReplaceErr error
}

func (s *MemPortfolioStore) Get(ctx context.Context) (*models.Portfolio, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	if s.Doc == nil {
		return nil, mongo.ErrNoDocuments
	}
	return clonePortfolio(s.Doc)
}

func (s *MemPortfolioStore) Replace(ctx context.Context, p *models.Portfolio) error {
	if s.ReplaceErr != nil {
		return s.ReplaceErr
	}
	cp, err := clonePortfolio(p)
	if err != nil {
		return err
	}
	s.Doc = cp
	s.Replaces++
	return nil
}

func clonePortfolio(p *models.Portfolio) (*models.Portfolio, error) {
	raw, err := bson.Marshal(p)
	if err != nil {
		return nil, err
	}
	var cp models.Portfolio
	if err := bson.Unmarshal(raw, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

// NewLoadedCache returns a warm content cache over an in-memory store
// holding doc.
func NewLoadedCache(t *testing.T, doc *models.Portfolio) (*content.Cache, *MemPortfolioStore) {
	t.Helper()
	store := &MemPortfolioStore{Doc: doc}
	cache := content.New(store, zap.NewNop())
	if err := cache.Load(context.Background()); err != nil {
		t.Fatalf("failed to load cache: %v", err)
	}
	return cache, store
}
