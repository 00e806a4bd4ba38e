// internal/app/features/about/about.go
package about

import (
	"errors"
	"net/http"
	"strings"

	errorsfeature "github.com/dalemusser/stratafolio/internal/app/features/errors"
	"github.com/dalemusser/stratafolio/internal/app/system/assets"
	"github.com/dalemusser/stratafolio/internal/app/system/content"
	"github.com/dalemusser/stratafolio/internal/app/system/formutil"
	"github.com/dalemusser/stratafolio/internal/app/system/htmlsanitize"
	"github.com/dalemusser/stratafolio/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const section = "about"

// Handler edits the about block: bio text, skills, and the profile photo.
type Handler struct {
	cache  *content.Cache
	assets *assets.Manager
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger
}

// NewHandler creates a new about Handler.
func NewHandler(cache *content.Cache, assets *assets.Manager, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{cache: cache, assets: assets, errLog: errLog, logger: logger}
}

// MountRoutes mounts about routes on the admin router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/update-about", h.updateFields)
	r.Post("/upload-photo", h.uploadPhoto)
}

// updateFields saves the bio text and skill list. The full story is
// sanitized before it enters the document.
func (h *Handler) updateFields(w http.ResponseWriter, r *http.Request) {
	if err := formutil.ParseForm(r); err != nil {
		h.errLog.Log(r, "failed to parse about form", err)
		formutil.RedirectError(w, r, section, formutil.ErrBadRequest)
		return
	}

	summary := r.FormValue("summary")
	fullStory := htmlsanitize.Sanitize(r.FormValue("fullStory"))
	skills := parseSkills(r.FormValue("skills"))

	err := h.cache.Update(r.Context(), func(p *models.Portfolio) error {
		p.About.Summary = summary
		p.About.FullStory = fullStory
		p.About.Skills = skills
		return nil
	})
	if err != nil {
		h.errLog.Log(r, "failed to persist about update", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	formutil.RedirectSuccess(w, r, section, formutil.OutcomeSaved)
}

// uploadPhoto replaces the profile photo.
func (h *Handler) uploadPhoto(w http.ResponseWriter, r *http.Request) {
	if err := formutil.ParseForm(r); err != nil {
		h.errLog.Log(r, "failed to parse photo form", err)
		formutil.RedirectError(w, r, section, formutil.ErrBadRequest)
		return
	}

	file, header, hasFile, err := formutil.OptionalFile(r, "photo")
	if err != nil || !hasFile {
		formutil.RedirectError(w, r, section, formutil.ErrBadRequest)
		return
	}
	defer file.Close()

	newURL, err := h.assets.Upload(r.Context(), assets.CategoryProfile,
		header.Filename, header.Header.Get("Content-Type"), file)
	if errors.Is(err, assets.ErrUnsupportedFormat) {
		formutil.RedirectError(w, r, section, formutil.ErrBadFormat)
		return
	}
	if err != nil {
		h.errLog.Log(r, "profile photo upload failed", err)
		formutil.RedirectError(w, r, section, formutil.ErrSaveFailed)
		return
	}

	var oldURL string
	err = h.cache.Update(r.Context(), func(p *models.Portfolio) error {
		oldURL = p.About.PhotoURL
		p.About.PhotoURL = newURL
		return nil
	})
	if err != nil {
		h.errLog.Log(r, "failed to persist profile photo", err)
		formutil.RedirectError(w, r, section, formutil.ErrSaveFailed)
		return
	}

	if oldURL != "" && oldURL != newURL {
		h.assets.Delete(r.Context(), oldURL)
	}

	formutil.RedirectSuccess(w, r, section, formutil.OutcomeUploaded)
}

// parseSkills splits a comma or newline separated skill list, dropping
// empties.
func parseSkills(raw string) []string {
	fields := strings.FieldsFunc(raw, func(c rune) bool {
		return c == ',' || c == '\n'
	})
	skills := make([]string, 0, len(fields))
	for _, f := range fields {
		if s := strings.TrimSpace(f); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
