package home

import (
	"net/http"
	"strings"
	"testing"

	errorsfeature "github.com/dalemusser/stratafolio/internal/app/features/errors"
	"github.com/dalemusser/stratafolio/internal/app/system/content"
	"github.com/dalemusser/stratafolio/internal/domain/models"
	"github.com/dalemusser/stratafolio/internal/testutil"
	"go.uber.org/zap"
)

func TestIndexRendersPortfolio(t *testing.T) {
	testutil.MustBootTemplates(t)

	doc := models.DefaultPortfolio()
	doc.Carousel = []models.CarouselSlide{{Title: "Hero Slide"}}
	doc.Projects = []models.Project{{ID: "proj-1", Title: "My Big Project"}}
	doc.About.FullStory = "<p>The full story.</p><script>alert(1)</script>"
	cache, _ := testutil.NewLoadedCache(t, doc)

	h := NewHandler(cache, errorsfeature.NewHandler(), zap.NewNop())
	req := testutil.WithCSRFToken(testutil.NewRequest(http.MethodGet, "/"))
	rec := testutil.NewRecorder()
	Routes(h).ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Hero Slide")
	rec.AssertContains(t, "My Big Project")
	rec.AssertContains(t, "The full story.")
	if strings.Contains(rec.Body.String(), "<script>alert(1)</script>") {
		t.Errorf("unsanitized markup reached the page")
	}
}

func TestIndexBeforeContentLoaded(t *testing.T) {
	testutil.MustBootTemplates(t)

	cache := content.New(&testutil.MemPortfolioStore{}, zap.NewNop())
	h := NewHandler(cache, errorsfeature.NewHandler(), zap.NewNop())

	req := testutil.WithCSRFToken(testutil.NewRequest(http.MethodGet, "/"))
	rec := testutil.NewRecorder()
	Routes(h).ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusServiceUnavailable)
}
