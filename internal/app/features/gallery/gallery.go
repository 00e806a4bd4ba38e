// internal/app/features/gallery/gallery.go
package gallery

import (
	"errors"
	"net/http"

	errorsfeature "github.com/dalemusser/stratafolio/internal/app/features/errors"
	"github.com/dalemusser/stratafolio/internal/app/system/assets"
	"github.com/dalemusser/stratafolio/internal/app/system/content"
	"github.com/dalemusser/stratafolio/internal/app/system/formutil"
	"github.com/dalemusser/stratafolio/internal/app/system/ident"
	"github.com/dalemusser/stratafolio/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const section = "gallery"

// Handler edits the photo gallery.
type Handler struct {
	cache  *content.Cache
	assets *assets.Manager
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger
}

// NewHandler creates a new gallery Handler.
func NewHandler(cache *content.Cache, assets *assets.Manager, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{cache: cache, assets: assets, errLog: errLog, logger: logger}
}

// MountRoutes mounts gallery routes on the admin router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/upload-gallery", h.upload)
	r.Post("/update-gallery-photo/{id}", h.replacePhoto)
	r.Post("/update-gallery-caption/{id}", h.updateCaption)
	r.Post("/delete-gallery-photo/{id}", h.delete)
}

func findPhoto(list []models.GalleryPhoto, raw string) int {
	ref := ident.Resolve(raw)
	for i, g := range list {
		if ref.Matches(g.ID.String()) {
			return i
		}
	}
	return -1
}

// upload adds a new gallery photo with an optional caption.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	if err := formutil.ParseForm(r); err != nil {
		h.errLog.Log(r, "failed to parse gallery form", err)
		formutil.RedirectError(w, r, section, formutil.ErrBadRequest)
		return
	}

	file, header, hasFile, err := formutil.OptionalFile(r, "photo")
	if err != nil || !hasFile {
		formutil.RedirectError(w, r, section, formutil.ErrBadRequest)
		return
	}
	defer file.Close()

	url, err := h.assets.Upload(r.Context(), assets.CategoryGallery,
		header.Filename, header.Header.Get("Content-Type"), file)
	if errors.Is(err, assets.ErrUnsupportedFormat) {
		formutil.RedirectError(w, r, section, formutil.ErrBadFormat)
		return
	}
	if err != nil {
		h.errLog.Log(r, "gallery upload failed", err)
		formutil.RedirectError(w, r, section, formutil.ErrSaveFailed)
		return
	}

	caption := r.FormValue("caption")
	err = h.cache.Update(r.Context(), func(p *models.Portfolio) error {
		p.Gallery = append(p.Gallery, models.GalleryPhoto{
			ID:      models.NewRecordID("gal"),
			URL:     url,
			Caption: caption,
		})
		return nil
	})
	if err != nil {
		h.errLog.Log(r, "failed to persist gallery photo", err)
		formutil.RedirectError(w, r, section, formutil.ErrSaveFailed)
		return
	}

	formutil.RedirectSuccess(w, r, section, formutil.OutcomeUploaded)
}

// replacePhoto swaps the image file behind an existing gallery entry.
func (h *Handler) replacePhoto(w http.ResponseWriter, r *http.Request) {
	if err := formutil.ParseForm(r); err != nil {
		h.errLog.Log(r, "failed to parse gallery form", err)
		formutil.RedirectError(w, r, section, formutil.ErrBadRequest)
		return
	}

	file, header, hasFile, err := formutil.OptionalFile(r, "photo")
	if err != nil || !hasFile {
		formutil.RedirectError(w, r, section, formutil.ErrBadRequest)
		return
	}
	defer file.Close()

	newURL, err := h.assets.Upload(r.Context(), assets.CategoryGallery,
		header.Filename, header.Header.Get("Content-Type"), file)
	if errors.Is(err, assets.ErrUnsupportedFormat) {
		formutil.RedirectError(w, r, section, formutil.ErrBadFormat)
		return
	}
	if err != nil {
		h.errLog.Log(r, "gallery replace upload failed", err)
		formutil.RedirectError(w, r, section, formutil.ErrSaveFailed)
		return
	}

	id := chi.URLParam(r, "id")
	var oldURL string
	var attached bool
	err = h.cache.Update(r.Context(), func(p *models.Portfolio) error {
		i := findPhoto(p.Gallery, id)
		if i < 0 {
			return nil
		}
		oldURL = p.Gallery[i].URL
		p.Gallery[i].URL = newURL
		attached = true
		return nil
	})
	if err != nil {
		h.errLog.Log(r, "failed to persist gallery replace", err)
		formutil.RedirectError(w, r, section, formutil.ErrSaveFailed)
		return
	}

	if !attached {
		h.assets.Delete(r.Context(), newURL)
	} else if oldURL != "" && oldURL != newURL {
		h.assets.Delete(r.Context(), oldURL)
	}

	formutil.RedirectSuccess(w, r, section, formutil.OutcomeUploaded)
}

// updateCaption changes only the caption. No asset store calls are made;
// the image stays exactly where it is.
func (h *Handler) updateCaption(w http.ResponseWriter, r *http.Request) {
	if err := formutil.ParseForm(r); err != nil {
		h.errLog.Log(r, "failed to parse caption form", err)
		formutil.RedirectError(w, r, section, formutil.ErrBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	caption := r.FormValue("caption")

	err := h.cache.Update(r.Context(), func(p *models.Portfolio) error {
		if i := findPhoto(p.Gallery, id); i >= 0 {
			p.Gallery[i].Caption = caption
		}
		return nil
	})
	if err != nil {
		h.errLog.Log(r, "failed to persist caption", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	formutil.RedirectSuccess(w, r, section, formutil.OutcomeSaved)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var removedURL string
	err := h.cache.Update(r.Context(), func(p *models.Portfolio) error {
		i := findPhoto(p.Gallery, id)
		if i < 0 {
			return nil
		}
		removedURL = p.Gallery[i].URL
		p.Gallery = append(p.Gallery[:i], p.Gallery[i+1:]...)
		return nil
	})
	if err != nil {
		h.errLog.Log(r, "failed to persist gallery delete", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if removedURL != "" {
		h.assets.Delete(r.Context(), removedURL)
	}

	formutil.RedirectSuccess(w, r, section, formutil.OutcomeDeleted)
}
