// internal/app/features/education/education.go
package education

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

const section = "education"

// Handler edits the education list. This is the one collection that still
// contains records created before identifier fields existed, so deletes
// resolve the route parameter with a positional fallback.
type Handler struct {
	cache  *content.Cache
	assets *assets.Manager
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger
}

// NewHandler creates a new education Handler.
func NewHandler(cache *content.Cache, assets *assets.Manager, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{cache: cache, assets: assets, errLog: errLog, logger: logger}
}

// MountRoutes mounts education routes on the admin router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/add-education", h.add)
	r.Post("/delete-education/{id}", h.delete)
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	if err := formutil.ParseForm(r); err != nil {
		h.errLog.Log(r, "failed to parse education form", err)
		formutil.RedirectError(w, r, section, formutil.ErrBadRequest)
		return
	}

	var logoURL string
	file, header, hasFile, err := formutil.OptionalFile(r, "logo")
	if err != nil {
		h.errLog.Log(r, "failed to read education logo", err)
		formutil.RedirectError(w, r, section, formutil.ErrBadRequest)
		return
	}
	if hasFile {
		defer file.Close()
		logoURL, err = h.assets.Upload(r.Context(), assets.CategoryEducation,
			header.Filename, header.Header.Get("Content-Type"), file)
		if errors.Is(err, assets.ErrUnsupportedFormat) {
			formutil.RedirectError(w, r, section, formutil.ErrBadFormat)
			return
		}
		if err != nil {
			h.errLog.Log(r, "education logo upload failed", err)
			formutil.RedirectError(w, r, section, formutil.ErrSaveFailed)
			return
		}
	}

	entry := models.EducationEntry{
		ID:          models.NewRecordID("edu"),
		Title:       r.FormValue("title"),
		Institution: r.FormValue("institution"),
		Years:       r.FormValue("years"),
		ImageURL:    logoURL,
	}

	err = h.cache.Update(r.Context(), func(p *models.Portfolio) error {
		p.Education = append(p.Education, entry)
		return nil
	})
	if err != nil {
		h.errLog.Log(r, "failed to persist education entry", err)
		formutil.RedirectError(w, r, section, formutil.ErrSaveFailed)
		return
	}

	formutil.RedirectSuccess(w, r, section, formutil.OutcomeSaved)
}

// delete removes an entry by id, falling back to treating the parameter as
// a positional index when no id matches and the index is in bounds.
// Positions shift after earlier deletions, so legacy links can land on a
// different record than they did when rendered; that is accepted behavior
// for the legacy form.
func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ref := ident.Resolve(chi.URLParam(r, "id"))

	var removedLogo string
	err := h.cache.Update(r.Context(), func(p *models.Portfolio) error {
		ids := make([]string, len(p.Education))
		for i, e := range p.Education {
			ids[i] = e.ID.String()
		}
		i := ident.FindWithPositionFallback(ids, ref)
		if i < 0 {
			return nil
		}
		removedLogo = p.Education[i].ImageURL
		p.Education = append(p.Education[:i], p.Education[i+1:]...)
		return nil
	})
	if err != nil {
		h.errLog.Log(r, "failed to persist education delete", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if removedLogo != "" {
		h.assets.Delete(r.Context(), removedLogo)
	}

	formutil.RedirectSuccess(w, r, section, formutil.OutcomeDeleted)
}
