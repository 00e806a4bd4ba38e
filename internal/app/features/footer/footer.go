// internal/app/features/footer/footer.go
package footer

import (
	"net/http"

	errorsfeature "github.com/dalemusser/stratafolio/internal/app/features/errors"
	"github.com/dalemusser/stratafolio/internal/app/system/content"
	"github.com/dalemusser/stratafolio/internal/app/system/formutil"
	"github.com/dalemusser/stratafolio/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const section = "footer"

// Handler edits the footer contact block.
type Handler struct {
	cache  *content.Cache
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger
}

// NewHandler creates a new footer Handler.
func NewHandler(cache *content.Cache, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{cache: cache, errLog: errLog, logger: logger}
}

// MountRoutes mounts footer routes on the admin router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/update-footer", h.update)
}

// update saves the footer block, creating it on documents that predate one.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	if err := formutil.ParseForm(r); err != nil {
		h.errLog.Log(r, "failed to parse footer form", err)
		formutil.RedirectError(w, r, section, formutil.ErrBadRequest)
		return
	}

	err := h.cache.Update(r.Context(), func(p *models.Portfolio) error {
		f := p.Footer()
		f.Name = r.FormValue("name")
		f.Line1 = r.FormValue("line1")
		f.Line2 = r.FormValue("line2")
		f.GithubLink = r.FormValue("githubLink")
		f.EmailLink = r.FormValue("emailLink")
		f.PhoneLink = r.FormValue("phoneLink")
		f.LinkedinLink = r.FormValue("linkedinLink")
		return nil
	})
	if err != nil {
		h.errLog.Log(r, "failed to persist footer", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	formutil.RedirectSuccess(w, r, section, formutil.OutcomeSaved)
}
