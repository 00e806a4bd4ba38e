// internal/app/features/carousel/carousel.go
package carousel

import (
	"errors"
	"net/http"
	"strconv"

	errorsfeature "github.com/dalemusser/stratafolio/internal/app/features/errors"
	"github.com/dalemusser/stratafolio/internal/app/system/assets"
	"github.com/dalemusser/stratafolio/internal/app/system/content"
	"github.com/dalemusser/stratafolio/internal/app/system/formutil"
	"github.com/dalemusser/stratafolio/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const section = "carousel"

// Handler edits the hero carousel. Slides are addressed by position; the
// carousel has no per-slide ids.
type Handler struct {
	cache  *content.Cache
	assets *assets.Manager
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger
}

// NewHandler creates a new carousel Handler.
func NewHandler(cache *content.Cache, assets *assets.Manager, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{cache: cache, assets: assets, errLog: errLog, logger: logger}
}

// MountRoutes mounts carousel routes on the admin router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/update-carousel/{position}", h.updateSlide)
}

// updateSlide replaces a slide's text fields and, when a file was posted,
// its image. An out-of-range position is a no-op that still redirects.
func (h *Handler) updateSlide(w http.ResponseWriter, r *http.Request) {
	if err := formutil.ParseForm(r); err != nil {
		h.errLog.Log(r, "failed to parse carousel form", err)
		formutil.RedirectError(w, r, section, formutil.ErrBadRequest)
		return
	}

	pos, err := strconv.Atoi(chi.URLParam(r, "position"))
	if err != nil || pos < 0 {
		formutil.RedirectError(w, r, section, formutil.ErrBadRequest)
		return
	}

	doc, err := h.cache.Current()
	if err != nil {
		h.errLog.Log(r, "carousel edit before content loaded", err)
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}
	if pos >= len(doc.Carousel) {
		// The slide is gone; nothing to do. The admin surface is the only
		// caller, so a missing target counts as already satisfied.
		formutil.RedirectSuccess(w, r, section, formutil.OutcomeSaved)
		return
	}

	var newImageURL string
	file, header, hasFile, err := formutil.OptionalFile(r, "image")
	if err != nil {
		h.errLog.Log(r, "failed to read carousel image", err)
		formutil.RedirectError(w, r, section, formutil.ErrBadRequest)
		return
	}
	if hasFile {
		defer file.Close()
		newImageURL, err = h.assets.Upload(r.Context(), assets.CategoryCarousel,
			header.Filename, header.Header.Get("Content-Type"), file)
		if errors.Is(err, assets.ErrUnsupportedFormat) {
			formutil.RedirectError(w, r, section, formutil.ErrBadFormat)
			return
		}
		if err != nil {
			h.errLog.Log(r, "carousel image upload failed", err)
			formutil.RedirectError(w, r, section, formutil.ErrSaveFailed)
			return
		}
	}

	var oldImageURL string
	err = h.cache.Update(r.Context(), func(p *models.Portfolio) error {
		if pos >= len(p.Carousel) {
			return nil
		}
		slide := &p.Carousel[pos]
		slide.Title = r.FormValue("title")
		slide.Description = r.FormValue("description")
		slide.Link = r.FormValue("link")
		slide.ButtonText = r.FormValue("buttonText")
		if newImageURL != "" {
			oldImageURL = slide.ImageURL
			slide.ImageURL = newImageURL
		}
		return nil
	})
	if err != nil {
		h.errLog.Log(r, "failed to persist carousel update", err)
		formutil.RedirectError(w, r, section, formutil.ErrSaveFailed)
		return
	}

	// Replaced image is only removed once the new one is durably referenced.
	if oldImageURL != "" && oldImageURL != newImageURL {
		h.assets.Delete(r.Context(), oldImageURL)
	}

	formutil.RedirectSuccess(w, r, section, formutil.OutcomeSaved)
}
