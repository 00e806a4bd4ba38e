// internal/app/features/admin/admin.go
package admin

import (
	"net/http"
	"strings"

	errorsfeature "github.com/dalemusser/stratafolio/internal/app/features/errors"
	"github.com/dalemusser/stratafolio/internal/app/system/content"
	"github.com/dalemusser/stratafolio/internal/app/system/formutil"
	"github.com/dalemusser/stratafolio/internal/app/system/viewdata"
	"github.com/dalemusser/stratafolio/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler provides the admin panel page.
type Handler struct {
	cache    *content.Cache
	errPages *errorsfeature.Handler
	logger   *zap.Logger
}

// NewHandler creates a new admin Handler.
func NewHandler(cache *content.Cache, errPages *errorsfeature.Handler, logger *zap.Logger) *Handler {
	return &Handler{
		cache:    cache,
		errPages: errPages,
		logger:   logger,
	}
}

// DashboardVM is the view model for the admin panel.
type DashboardVM struct {
	viewdata.BaseVM
	Section string
	Success string
	Error   string

	Carousel       []models.CarouselSlide
	About          models.About
	SkillsText     string
	ProjectSummary models.ProjectSummary
	Projects       []models.Project
	Certificates   []models.Certificate
	Gallery        []models.GalleryPhoto
	Education      []models.EducationEntry
	Footer         models.FooterInfo
}

// Routes returns a chi.Router with the admin panel mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

// MountRoutes mounts the panel page on an existing router, so the section
// editors can share the same /admin route tree.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.show)
}

// successMessages maps redirect outcome codes to flash text.
var successMessages = map[string]string{
	formutil.OutcomeSaved:    "Changes saved.",
	formutil.OutcomeUploaded: "File uploaded.",
	formutil.OutcomeDeleted:  "Deleted.",
}

// errorMessages maps redirect error codes to flash text.
var errorMessages = map[string]string{
	formutil.ErrBadFormat:  "That file format is not supported.",
	formutil.ErrSaveFailed: "The change could not be saved. Please try again.",
	formutil.ErrBadRequest: "The request could not be processed.",
}

// show renders the admin panel with every editable section.
func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	p, err := h.cache.Current()
	if err != nil {
		h.logger.Warn("admin panel requested before content loaded", zap.Error(err))
		h.errPages.ContentUnavailable(w, r)
		return
	}

	section := r.URL.Query().Get("section")
	if section == "" {
		section = "carousel"
	}

	vm := DashboardVM{
		BaseVM:         viewdata.NewBaseVM(r, "Admin", "/"),
		Section:        section,
		Carousel:       p.Carousel,
		About:          p.About,
		SkillsText:     joinSkills(p.About.Skills),
		ProjectSummary: p.ProjectSummary,
		Projects:       p.Projects,
		Certificates:   p.Certificates,
		Gallery:        p.Gallery,
		Education:      p.Education,
	}
	if p.FooterInfo != nil {
		vm.Footer = *p.FooterInfo
	}

	if code := r.URL.Query().Get("success"); code != "" {
		if msg, ok := successMessages[code]; ok {
			vm.Success = msg
		} else {
			vm.Success = "Done."
		}
	}
	if code := r.URL.Query().Get("error"); code != "" {
		if msg, ok := errorMessages[code]; ok {
			vm.Error = msg
		} else {
			vm.Error = "Something went wrong."
		}
	}

	templates.Render(w, r, "admin/dashboard", vm)
}

func joinSkills(skills []string) string {
	return strings.Join(skills, ", ")
}
