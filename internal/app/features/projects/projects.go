// internal/app/features/projects/projects.go
package projects

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

const section = "projects"

// Handler edits the project list and each project's image sequence.
type Handler struct {
	cache  *content.Cache
	assets *assets.Manager
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger
}

// NewHandler creates a new projects Handler.
func NewHandler(cache *content.Cache, assets *assets.Manager, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{cache: cache, assets: assets, errLog: errLog, logger: logger}
}

// MountRoutes mounts project routes on the admin router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/add-project", h.add)
	r.Post("/update-project/{id}", h.update)
	r.Post("/delete-project/{id}", h.delete)
	r.Post("/upload-project-image/{id}", h.uploadImage)
	r.Post("/delete-project-image/{id}", h.deleteImage)
}

// findProject returns the index of the project matching the route id, or -1.
// Projects require an exact id match; there is no positional fallback.
func findProject(list []models.Project, raw string) int {
	ref := ident.Resolve(raw)
	for i, p := range list {
		if ref.Matches(p.ID.String()) {
			return i
		}
	}
	return -1
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	if err := formutil.ParseForm(r); err != nil {
		h.errLog.Log(r, "failed to parse project form", err)
		formutil.RedirectError(w, r, section, formutil.ErrBadRequest)
		return
	}

	proj := models.Project{
		ID:          models.NewRecordID("proj"),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		GithubLink:  r.FormValue("githubLink"),
		Images:      []string{},
	}

	err := h.cache.Update(r.Context(), func(p *models.Portfolio) error {
		p.Projects = append(p.Projects, proj)
		return nil
	})
	if err != nil {
		h.errLog.Log(r, "failed to persist new project", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	formutil.RedirectSuccess(w, r, section, formutil.OutcomeSaved)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	if err := formutil.ParseForm(r); err != nil {
		h.errLog.Log(r, "failed to parse project form", err)
		formutil.RedirectError(w, r, section, formutil.ErrBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	err := h.cache.Update(r.Context(), func(p *models.Portfolio) error {
		i := findProject(p.Projects, id)
		if i < 0 {
			// Already gone; treat as satisfied.
			return nil
		}
		p.Projects[i].Title = r.FormValue("title")
		p.Projects[i].Description = r.FormValue("description")
		p.Projects[i].GithubLink = r.FormValue("githubLink")
		return nil
	})
	if err != nil {
		h.errLog.Log(r, "failed to persist project update", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	formutil.RedirectSuccess(w, r, section, formutil.OutcomeSaved)
}

// delete removes a project and cascades deletion of every image it owned.
func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var removedImages []string
	err := h.cache.Update(r.Context(), func(p *models.Portfolio) error {
		i := findProject(p.Projects, id)
		if i < 0 {
			return nil
		}
		removedImages = p.Projects[i].Images
		p.Projects = append(p.Projects[:i], p.Projects[i+1:]...)
		return nil
	})
	if err != nil {
		h.errLog.Log(r, "failed to persist project delete", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Assets go after the document no longer references them.
	for _, url := range removedImages {
		h.assets.Delete(r.Context(), url)
	}

	formutil.RedirectSuccess(w, r, section, formutil.OutcomeDeleted)
}

func (h *Handler) uploadImage(w http.ResponseWriter, r *http.Request) {
	if err := formutil.ParseForm(r); err != nil {
		h.errLog.Log(r, "failed to parse project image form", err)
		formutil.RedirectError(w, r, section, formutil.ErrBadRequest)
		return
	}

	file, header, hasFile, err := formutil.OptionalFile(r, "image")
	if err != nil || !hasFile {
		formutil.RedirectError(w, r, section, formutil.ErrBadRequest)
		return
	}
	defer file.Close()

	newURL, err := h.assets.Upload(r.Context(), assets.CategoryProjects,
		header.Filename, header.Header.Get("Content-Type"), file)
	if errors.Is(err, assets.ErrUnsupportedFormat) {
		formutil.RedirectError(w, r, section, formutil.ErrBadFormat)
		return
	}
	if err != nil {
		h.errLog.Log(r, "project image upload failed", err)
		formutil.RedirectError(w, r, section, formutil.ErrSaveFailed)
		return
	}

	id := chi.URLParam(r, "id")
	var attached bool
	err = h.cache.Update(r.Context(), func(p *models.Portfolio) error {
		i := findProject(p.Projects, id)
		if i < 0 {
			return nil
		}
		p.Projects[i].Images = append(p.Projects[i].Images, newURL)
		attached = true
		return nil
	})
	if err != nil {
		h.errLog.Log(r, "failed to persist project image", err)
		formutil.RedirectError(w, r, section, formutil.ErrSaveFailed)
		return
	}

	// The project vanished between upload and write; don't leak the asset.
	if !attached {
		h.assets.Delete(r.Context(), newURL)
	}

	formutil.RedirectSuccess(w, r, section, formutil.OutcomeUploaded)
}

// deleteImage removes one image URL from a project. An imageUrl that is
// absent from the project is a no-op, which makes the operation idempotent
// under double submits.
func (h *Handler) deleteImage(w http.ResponseWriter, r *http.Request) {
	if err := formutil.ParseForm(r); err != nil {
		h.errLog.Log(r, "failed to parse project image form", err)
		formutil.RedirectError(w, r, section, formutil.ErrBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	imageURL := r.FormValue("imageUrl")
	if imageURL == "" {
		formutil.RedirectSuccess(w, r, section, formutil.OutcomeDeleted)
		return
	}

	var removed bool
	err := h.cache.Update(r.Context(), func(p *models.Portfolio) error {
		i := findProject(p.Projects, id)
		if i < 0 {
			return nil
		}
		imgs := p.Projects[i].Images
		for j, u := range imgs {
			if u == imageURL {
				p.Projects[i].Images = append(imgs[:j], imgs[j+1:]...)
				removed = true
				return nil
			}
		}
		return nil
	})
	if err != nil {
		h.errLog.Log(r, "failed to persist project image delete", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if removed {
		h.assets.Delete(r.Context(), imageURL)
	}

	formutil.RedirectSuccess(w, r, section, formutil.OutcomeDeleted)
}
