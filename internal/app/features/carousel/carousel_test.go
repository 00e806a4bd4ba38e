package carousel

import (
	"bytes"
	"mime/multipart"
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

func slideDoc(imageURL string) *models.Portfolio {
	doc := models.DefaultPortfolio()
	doc.Carousel = []models.CarouselSlide{{Title: "Old", ImageURL: imageURL}}
	return doc
}

func TestUpdateSlideText(t *testing.T) {
	router, store, storage := newTestRouter(t, slideDoc(""))

	rec := postForm(router, "/update-carousel/0", url.Values{
		"title":       {"New Title"},
		"description": {"New description"},
		"buttonText":  {"Go"},
	})

	rec.AssertRedirect(t, "/admin?section=carousel&success=saved")
	if store.Replaces != 1 {
		t.Errorf("replaces: got %d, want 1", store.Replaces)
	}
	if got := store.Doc.Carousel[0].Title; got != "New Title" {
		t.Errorf("title: got %q", got)
	}
	if len(storage.Puts) != 0 {
		t.Errorf("text-only update touched storage: %v", storage.Puts)
	}
}

func TestUpdateSlideOutOfRange(t *testing.T) {
	router, store, storage := newTestRouter(t, slideDoc(""))

	rec := postForm(router, "/update-carousel/5", url.Values{"title": {"X"}})

	// A vanished slide is already satisfied; nothing is uploaded or written.
	rec.AssertRedirect(t, "/admin?section=carousel&success=saved")
	if store.Replaces != 0 {
		t.Errorf("out-of-range position persisted: %d replaces", store.Replaces)
	}
	if len(storage.Puts) != 0 || len(storage.Deletes) != 0 {
		t.Errorf("out-of-range position touched storage")
	}
}

func TestUpdateSlideBadPosition(t *testing.T) {
	router, store, _ := newTestRouter(t, slideDoc(""))

	rec := postForm(router, "/update-carousel/abc", url.Values{"title": {"X"}})

	rec.AssertRedirect(t, "/admin?error=bad_request&section=carousel")
	if store.Replaces != 0 {
		t.Errorf("bad position persisted: %d replaces", store.Replaces)
	}
}

func TestUpdateSlideReplacesImage(t *testing.T) {
	oldPath := "upload/carousel/old.png"
	router, store, storage := newTestRouter(t, slideDoc("http://storage.test/"+oldPath))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("title", "With Image")
	fw, err := mw.CreateFormFile("image", "new.png")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("png bytes"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/update-carousel/0", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertRedirect(t, "/admin?section=carousel&success=saved")
	if len(storage.Puts) != 1 {
		t.Fatalf("puts: got %d, want 1", len(storage.Puts))
	}
	if got := store.Doc.Carousel[0].ImageURL; !strings.Contains(got, "upload/carousel/") {
		t.Errorf("slide image url: got %q", got)
	}
	// The old image is removed only after the document persisted.
	if len(storage.Deletes) != 1 || storage.Deletes[0] != oldPath {
		t.Errorf("deletes: got %v, want [%s]", storage.Deletes, oldPath)
	}
}

func TestUpdateSlideRejectsBadFormat(t *testing.T) {
	router, store, storage := newTestRouter(t, slideDoc(""))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("image", "malware.exe")
	fw.Write([]byte("nope"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/update-carousel/0", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertRedirect(t, "/admin?error=bad_format&section=carousel")
	if store.Replaces != 0 || len(storage.Puts) != 0 {
		t.Errorf("rejected upload still wrote something")
	}
}
