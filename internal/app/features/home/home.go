// internal/app/features/home/home.go
package home

import (
	"html/template"
	"net/http"

	errorsfeature "github.com/dalemusser/stratafolio/internal/app/features/errors"
	"github.com/dalemusser/stratafolio/internal/app/system/content"
	"github.com/dalemusser/stratafolio/internal/app/system/htmlsanitize"
	"github.com/dalemusser/stratafolio/internal/app/system/viewdata"
	"github.com/dalemusser/stratafolio/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler provides the public portfolio page.
type Handler struct {
	cache    *content.Cache
	errPages *errorsfeature.Handler
	logger   *zap.Logger
}

// NewHandler creates a new home Handler.
func NewHandler(cache *content.Cache, errPages *errorsfeature.Handler, logger *zap.Logger) *Handler {
	return &Handler{
		cache:    cache,
		errPages: errPages,
		logger:   logger,
	}
}

// HomeVM is the view model for the portfolio page.
type HomeVM struct {
	viewdata.BaseVM
	Carousel       []models.CarouselSlide
	About          models.About
	FullStoryHTML  template.HTML
	ProjectSummary models.ProjectSummary
	Projects       []models.Project
	Certificates   []models.Certificate
	Gallery        []models.GalleryPhoto
	Education      []models.EducationEntry
	Footer         models.FooterInfo
}

// Routes returns a chi.Router with home routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	return r
}

// Index renders the portfolio page from the cached document.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	p, err := h.cache.Current()
	if err != nil {
		h.logger.Warn("portfolio page requested before content loaded", zap.Error(err))
		h.errPages.ContentUnavailable(w, r)
		return
	}

	vm := HomeVM{
		BaseVM:         viewdata.New(r),
		Carousel:       p.Carousel,
		About:          p.About,
		FullStoryHTML:  htmlsanitize.PrepareForDisplay(p.About.FullStory),
		ProjectSummary: p.ProjectSummary,
		Projects:       p.Projects,
		Certificates:   p.Certificates,
		Gallery:        p.Gallery,
		Education:      p.Education,
	}
	if p.FooterInfo != nil {
		vm.Footer = *p.FooterInfo
	}

	templates.Render(w, r, "home/index", vm)
}
