package education

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	errorsfeature "github.com/dalemusser/stratafolio/internal/app/features/errors"
	"github.com/dalemusser/stratafolio/internal/app/system/assets"
	"github.com/dalemusser/stratafolio/internal/domain/models"
	"github.com/dalemusser/stratafolio/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T, doc *models.Portfolio) (http.Handler, *testutil.MemPortfolioStore, *testutil.MemStorage) {
	t.Helper()
	cache, store := testutil.NewLoadedCache(t, doc)
	storage := testutil.NewMemStorage()
	h := NewHandler(cache, assets.New(storage, zap.NewNop()), errorsfeature.NewErrorLogger(zap.NewNop()), zap.NewNop())
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r, store, storage
}

func postForm(router http.Handler, target string, form url.Values) *testutil.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// Mixed list: two legacy entries without ids, one modern entry with an id.
func mixedEducationDoc() *models.Portfolio {
	doc := models.DefaultPortfolio()
	doc.Education = []models.EducationEntry{
		{Title: "Legacy First", Institution: "Old U"},
		{Title: "Legacy Second", Institution: "Old Tech"},
		{ID: "edu-abc", Title: "Modern", Institution: "New U"},
	}
	return doc
}

func TestAddEntry(t *testing.T) {
	router, store, _ := newTestRouter(t, models.DefaultPortfolio())

	rec := postForm(router, "/add-education", url.Values{
		"title":       {"BSc Computer Science"},
		"institution": {"State University"},
		"years":       {"2018-2022"},
	})

	rec.AssertRedirect(t, "/admin?section=education&success=saved")
	if len(store.Doc.Education) != 1 {
		t.Fatalf("education entries: got %d, want 1", len(store.Doc.Education))
	}
	e := store.Doc.Education[0]
	if e.ID == "" {
		t.Errorf("new entry has no id")
	}
	if e.Institution != "State University" {
		t.Errorf("institution: got %q", e.Institution)
	}
}

func TestDeleteByID(t *testing.T) {
	router, store, _ := newTestRouter(t, mixedEducationDoc())

	rec := postForm(router, "/delete-education/edu-abc", url.Values{})

	rec.AssertRedirect(t, "/admin?section=education&success=deleted")
	if len(store.Doc.Education) != 2 {
		t.Fatalf("entries: got %d, want 2", len(store.Doc.Education))
	}
	for _, e := range store.Doc.Education {
		if e.ID == "edu-abc" {
			t.Errorf("entry still present")
		}
	}
}

// A numeric parameter that matches no id falls back to being a position.
func TestDeleteByPositionFallback(t *testing.T) {
	router, store, _ := newTestRouter(t, mixedEducationDoc())

	rec := postForm(router, "/delete-education/1", url.Values{})

	rec.AssertRedirect(t, "/admin?section=education&success=deleted")
	if len(store.Doc.Education) != 2 {
		t.Fatalf("entries: got %d, want 2", len(store.Doc.Education))
	}
	if store.Doc.Education[0].Title != "Legacy First" || store.Doc.Education[1].Title != "Modern" {
		t.Errorf("wrong entry removed: %+v", store.Doc.Education)
	}
}

func TestDeleteUnknownTarget(t *testing.T) {
	router, store, _ := newTestRouter(t, mixedEducationDoc())

	rec := postForm(router, "/delete-education/99", url.Values{})

	// Out of bounds and no id match: nothing to do, still a success.
	rec.AssertRedirect(t, "/admin?section=education&success=deleted")
	if len(store.Doc.Education) != 3 {
		t.Errorf("entries changed: %d", len(store.Doc.Education))
	}
}

func TestDeleteRemovesLogo(t *testing.T) {
	doc := models.DefaultPortfolio()
	doc.Education = []models.EducationEntry{
		{ID: "edu-1", Title: "With Logo", ImageURL: "http://storage.test/upload/education/logo.png"},
	}
	router, _, storage := newTestRouter(t, doc)

	rec := postForm(router, "/delete-education/edu-1", url.Values{})

	rec.AssertRedirect(t, "/admin?section=education&success=deleted")
	if len(storage.Deletes) != 1 || storage.Deletes[0] != "upload/education/logo.png" {
		t.Errorf("logo not removed: %v", storage.Deletes)
	}
}
