package admin

import (
	"net/http"
	"testing"

	errorsfeature "github.com/dalemusser/stratafolio/internal/app/features/errors"
	"github.com/dalemusser/stratafolio/internal/app/system/content"
	"github.com/dalemusser/stratafolio/internal/domain/models"
	"github.com/dalemusser/stratafolio/internal/testutil"
	"go.uber.org/zap"
)

func get(t *testing.T, cache *content.Cache, target string) *testutil.ResponseRecorder {
	t.Helper()
	testutil.MustBootTemplates(t)
	h := NewHandler(cache, errorsfeature.NewHandler(), zap.NewNop())
	req := testutil.NewOperatorRequest(http.MethodGet, target)
	rec := testutil.NewRecorder()
	Routes(h).ServeHTTP(rec, req)
	return rec
}

func TestShowRendersDocument(t *testing.T) {
	doc := models.DefaultPortfolio()
	doc.Projects = []models.Project{{ID: "proj-1", Title: "Visible Project"}}
	doc.About.Skills = []string{"Go", "MongoDB", "HTML"}
	cache, _ := testutil.NewLoadedCache(t, doc)

	rec := get(t, cache, "/?section=projects")
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Visible Project")

	rec = get(t, cache, "/?section=about")
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Go, MongoDB, HTML")
}

func TestShowFlashMessages(t *testing.T) {
	cache, _ := testutil.NewLoadedCache(t, models.DefaultPortfolio())

	for _, tc := range []struct {
		name   string
		target string
		want   string
	}{
		{"save success", "/?section=about&success=saved", "Changes saved."},
		{"delete success", "/?section=gallery&success=deleted", "Deleted."},
		{"bad format", "/?section=certificates&error=bad_format", "That file format is not supported."},
		{"save failed", "/?section=carousel&error=save_failed", "could not be saved"},
		{"unknown success code", "/?section=carousel&success=whatever", "Done."},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(t, cache, tc.target)
			rec.AssertStatus(t, http.StatusOK)
			rec.AssertContains(t, tc.want)
		})
	}
}

func TestShowBeforeContentLoaded(t *testing.T) {
	cache := content.New(&testutil.MemPortfolioStore{}, zap.NewNop())

	rec := get(t, cache, "/")

	rec.AssertStatus(t, http.StatusServiceUnavailable)
}
