// internal/app/features/projectsummary/projectsummary.go
package projectsummary

import (
	"errors"
	"net/http"

	errorsfeature "github.com/dalemusser/stratafolio/internal/app/features/errors"
	"github.com/dalemusser/stratafolio/internal/app/system/assets"
	"github.com/dalemusser/stratafolio/internal/app/system/content"
	"github.com/dalemusser/stratafolio/internal/app/system/formutil"
	"github.com/dalemusser/stratafolio/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const section = "project-summary"

// Handler edits the project summary teaser block.
type Handler struct {
	cache  *content.Cache
	assets *assets.Manager
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger
}

// NewHandler creates a new project summary Handler.
func NewHandler(cache *content.Cache, assets *assets.Manager, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{cache: cache, assets: assets, errLog: errLog, logger: logger}
}

// MountRoutes mounts project summary routes on the admin router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/update-project-summary", h.update)
}

// update saves the teaser fields and optionally replaces the teaser image.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	if err := formutil.ParseForm(r); err != nil {
		h.errLog.Log(r, "failed to parse project summary form", err)
		formutil.RedirectError(w, r, section, formutil.ErrBadRequest)
		return
	}

	var newImageURL string
	file, header, hasFile, err := formutil.OptionalFile(r, "image")
	if err != nil {
		h.errLog.Log(r, "failed to read project summary image", err)
		formutil.RedirectError(w, r, section, formutil.ErrBadRequest)
		return
	}
	if hasFile {
		defer file.Close()
		newImageURL, err = h.assets.Upload(r.Context(), assets.CategoryProjects,
			header.Filename, header.Header.Get("Content-Type"), file)
		if errors.Is(err, assets.ErrUnsupportedFormat) {
			formutil.RedirectError(w, r, section, formutil.ErrBadFormat)
			return
		}
		if err != nil {
			h.errLog.Log(r, "project summary image upload failed", err)
			formutil.RedirectError(w, r, section, formutil.ErrSaveFailed)
			return
		}
	}

	var oldImageURL string
	err = h.cache.Update(r.Context(), func(p *models.Portfolio) error {
		p.ProjectSummary.Title = r.FormValue("title")
		p.ProjectSummary.Paragraph1 = r.FormValue("paragraph1")
		p.ProjectSummary.Paragraph2 = r.FormValue("paragraph2")
		p.ProjectSummary.ButtonLink = r.FormValue("buttonLink")
		if newImageURL != "" {
			oldImageURL = p.ProjectSummary.ImageURL
			p.ProjectSummary.ImageURL = newImageURL
		}
		return nil
	})
	if err != nil {
		h.errLog.Log(r, "failed to persist project summary", err)
		formutil.RedirectError(w, r, section, formutil.ErrSaveFailed)
		return
	}

	if oldImageURL != "" && oldImageURL != newImageURL {
		h.assets.Delete(r.Context(), oldImageURL)
	}

	formutil.RedirectSuccess(w, r, section, formutil.OutcomeSaved)
}
