package content

import (
	"context"
	"errors"
	"testing"

	"github.com/dalemusser/stratafolio/internal/domain/models"
	"go.uber.org/zap"
)

// fakeStore is an in-memory Store that can be told to fail.
type fakeStore struct {
	doc *models.Portfolio

	getErr     error
	replaceErr error

	gets     int
	replaces int
}

func (f *fakeStore) Get(ctx context.Context) (*models.Portfolio, error) {
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	// Return a copy so the cache and the store don't share a pointer.
	cp := *f.doc
	return &cp, nil
}

func (f *fakeStore) Replace(ctx context.Context, p *models.Portfolio) error {
	f.replaces++
	if f.replaceErr != nil {
		return f.replaceErr
	}
	cp := *p
	f.doc = &cp
	return nil
}

func newFake() *fakeStore {
	return &fakeStore{doc: models.DefaultPortfolio()}
}

func TestCurrentBeforeLoad(t *testing.T) {
	c := New(newFake(), zap.NewNop())

	if c.Loaded() {
		t.Fatal("cache reports loaded before Load")
	}
	if _, err := c.Current(); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("Current() error = %v, want ErrNotLoaded", err)
	}
	if err := c.Update(context.Background(), func(p *models.Portfolio) error { return nil }); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("Update() error = %v, want ErrNotLoaded", err)
	}
}

func TestLoadAndCurrent(t *testing.T) {
	store := newFake()
	store.doc.About.Summary = "hello"

	c := New(store, zap.NewNop())
	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	p, err := c.Current()
	if err != nil {
		t.Fatal(err)
	}
	if p.About.Summary != "hello" {
		t.Fatalf("Summary = %q, want %q", p.About.Summary, "hello")
	}
}

func TestUpdatePersistsAndReloads(t *testing.T) {
	store := newFake()
	c := New(store, zap.NewNop())
	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	getsBefore := store.gets

	err := c.Update(context.Background(), func(p *models.Portfolio) error {
		p.About.Summary = "updated"
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if store.replaces != 1 {
		t.Fatalf("replaces = %d, want 1", store.replaces)
	}
	// Write-through is followed by a fresh read.
	if store.gets != getsBefore+1 {
		t.Fatalf("gets = %d, want %d", store.gets, getsBefore+1)
	}
	if store.doc.About.Summary != "updated" {
		t.Fatalf("store Summary = %q, want %q", store.doc.About.Summary, "updated")
	}

	p, err := c.Current()
	if err != nil {
		t.Fatal(err)
	}
	if p.About.Summary != "updated" {
		t.Fatalf("cached Summary = %q, want %q", p.About.Summary, "updated")
	}
}

func TestUpdateMutateErrorSkipsPersist(t *testing.T) {
	store := newFake()
	c := New(store, zap.NewNop())
	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	wantErr := errors.New("bad input")
	err := c.Update(context.Background(), func(p *models.Portfolio) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Update() error = %v, want %v", err, wantErr)
	}
	if store.replaces != 0 {
		t.Fatalf("replaces = %d, want 0", store.replaces)
	}
}

func TestUpdatePersistFailureKeepsServing(t *testing.T) {
	store := newFake()
	c := New(store, zap.NewNop())
	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	store.replaceErr = errors.New("mongo down")
	err := c.Update(context.Background(), func(p *models.Portfolio) error {
		p.About.Summary = "ahead of the store"
		return nil
	})
	if err == nil {
		t.Fatal("Update() succeeded despite persist failure")
	}

	// The held copy carries the mutation even though the store does not.
	// The next successful write re-converges them.
	p, cerr := c.Current()
	if cerr != nil {
		t.Fatal(cerr)
	}
	if p.About.Summary != "ahead of the store" {
		t.Fatalf("cached Summary = %q", p.About.Summary)
	}
	if store.doc.About.Summary == "ahead of the store" {
		t.Fatal("store was updated despite replace error")
	}

	store.replaceErr = nil
	if err := c.Update(context.Background(), func(p *models.Portfolio) error { return nil }); err != nil {
		t.Fatal(err)
	}
	if store.doc.About.Summary != "ahead of the store" {
		t.Fatal("next write did not re-converge the store")
	}
}

func TestUpdateReloadFailureKeepsPersistedCopy(t *testing.T) {
	store := newFake()
	c := New(store, zap.NewNop())
	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Fail only the reload that follows the persist.
	reloadErr := errors.New("read back failed")
	store.getErr = reloadErr

	err := c.Update(context.Background(), func(p *models.Portfolio) error {
		p.About.Summary = "persisted"
		return nil
	})
	if err != nil {
		t.Fatalf("Update() error = %v, want nil when only the reload fails", err)
	}

	p, cerr := c.Current()
	if cerr != nil {
		t.Fatal(cerr)
	}
	if p.About.Summary != "persisted" {
		t.Fatalf("cached Summary = %q, want %q", p.About.Summary, "persisted")
	}
}
