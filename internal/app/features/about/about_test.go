package about

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
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

func TestUpdateSanitizesFullStory(t *testing.T) {
	router, store, _ := newTestRouter(t, models.DefaultPortfolio())

	rec := postForm(router, "/update-about", url.Values{
		"summary":   {"Short bio"},
		"fullStory": {`<p>Safe.</p><script>alert(1)</script><img src="x" onerror="boom()">`},
		"skills":    {"Go, MongoDB\nDocker,  , HTML"},
	})

	rec.AssertRedirect(t, "/admin?section=about&success=saved")
	about := store.Doc.About
	if about.Summary != "Short bio" {
		t.Errorf("summary: got %q", about.Summary)
	}
	if strings.Contains(about.FullStory, "<script>") || strings.Contains(about.FullStory, "onerror") {
		t.Errorf("dangerous markup stored: %q", about.FullStory)
	}
	if !strings.Contains(about.FullStory, "<p>Safe.</p>") {
		t.Errorf("safe markup stripped: %q", about.FullStory)
	}
	want := []string{"Go", "MongoDB", "Docker", "HTML"}
	if !reflect.DeepEqual(about.Skills, want) {
		t.Errorf("skills: got %v, want %v", about.Skills, want)
	}
}

func TestParseSkills(t *testing.T) {
	for _, tc := range []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{"Go", []string{"Go"}},
		{"Go,MongoDB", []string{"Go", "MongoDB"}},
		{"Go\nMongoDB", []string{"Go", "MongoDB"}},
		{" Go , , MongoDB ,", []string{"Go", "MongoDB"}},
	} {
		got := parseSkills(tc.raw)
		if len(got) == 0 && len(tc.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("parseSkills(%q): got %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestUploadPhotoWithoutFile(t *testing.T) {
	router, store, storage := newTestRouter(t, models.DefaultPortfolio())

	rec := postForm(router, "/upload-photo", url.Values{})

	rec.AssertRedirect(t, "/admin?error=bad_request&section=about")
	if store.Replaces != 0 || len(storage.Puts) != 0 {
		t.Errorf("missing file still wrote something")
	}
}
