package portfoliostore

import (
	"errors"
	"testing"

	"github.com/dalemusser/stratafolio/internal/domain/models"
	"github.com/dalemusser/stratafolio/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestGetBeforeSeed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Get(ctx); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("Get on empty collection: err = %v, want ErrNoDocuments", err)
	}
}

func TestSeedIfAbsent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.SeedIfAbsent(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !created {
		t.Fatal("first seed did not create the document")
	}

	created, err = store.SeedIfAbsent(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Fatal("second seed created a duplicate document")
	}

	exists, err := store.Exists(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Fatal("document missing after seed")
	}
}

func TestReplaceRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.SeedIfAbsent(ctx); err != nil {
		t.Fatal(err)
	}

	p, err := store.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}

	p.About.Summary = "round trip"
	p.Projects = append(p.Projects, models.Project{
		ID:     "proj-aa11bb22",
		Title:  "Demo",
		Images: []string{"http://storage.test/upload/projects/x.png"},
	})
	if err := store.Replace(ctx, p); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.About.Summary != "round trip" {
		t.Fatalf("Summary = %q, want %q", got.About.Summary, "round trip")
	}
	if len(got.Projects) != 1 || got.Projects[0].ID != "proj-aa11bb22" {
		t.Fatalf("Projects = %+v", got.Projects)
	}
	if got.ID != p.ID {
		t.Fatal("replace changed the document _id")
	}
	if got.UpdatedAt.IsZero() {
		t.Fatal("UpdatedAt not set on replace")
	}
}

func TestSingletonInvariant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.SeedIfAbsent(ctx); err != nil {
		t.Fatal(err)
	}

	// Replace never creates a second document, whatever the caller passes.
	fresh := models.DefaultPortfolio()
	fresh.About.Summary = "second writer"
	if err := store.Replace(ctx, fresh); err != nil {
		t.Fatal(err)
	}

	n, err := db.Collection("portfolios").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("document count = %d, want 1", n)
	}
}
