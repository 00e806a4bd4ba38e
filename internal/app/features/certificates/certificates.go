// internal/app/features/certificates/certificates.go
package certificates

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

const section = "certificates"

// Handler edits the certificate list. Certificates are PDF only.
type Handler struct {
	cache  *content.Cache
	assets *assets.Manager
	errLog *errorsfeature.ErrorLogger
	logger *zap.Logger
}

// NewHandler creates a new certificates Handler.
func NewHandler(cache *content.Cache, assets *assets.Manager, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{cache: cache, assets: assets, errLog: errLog, logger: logger}
}

// MountRoutes mounts certificate routes on the admin router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/upload-certificate", h.upload)
	r.Post("/delete-certificate/{id}", h.delete)
}

func findCertificate(list []models.Certificate, raw string) int {
	ref := ident.Resolve(raw)
	for i, c := range list {
		if ref.Matches(c.ID.String()) {
			return i
		}
	}
	return -1
}

// upload adds a certificate, or replaces the PDF of an existing one when the
// form carries its id.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	if err := formutil.ParseForm(r); err != nil {
		h.errLog.Log(r, "failed to parse certificate form", err)
		formutil.RedirectError(w, r, section, formutil.ErrBadRequest)
		return
	}

	file, header, hasFile, err := formutil.OptionalFile(r, "file")
	if err != nil || !hasFile {
		formutil.RedirectError(w, r, section, formutil.ErrBadRequest)
		return
	}
	defer file.Close()

	pdfURL, err := h.assets.Upload(r.Context(), assets.CategoryCertificates,
		header.Filename, header.Header.Get("Content-Type"), file)
	if errors.Is(err, assets.ErrUnsupportedFormat) {
		formutil.RedirectError(w, r, section, formutil.ErrBadFormat)
		return
	}
	if err != nil {
		h.errLog.Log(r, "certificate upload failed", err)
		formutil.RedirectError(w, r, section, formutil.ErrSaveFailed)
		return
	}

	id := r.FormValue("id")
	title := r.FormValue("title")
	issuer := r.FormValue("issuer")

	var oldURL string
	err = h.cache.Update(r.Context(), func(p *models.Portfolio) error {
		if id != "" {
			if i := findCertificate(p.Certificates, id); i >= 0 {
				c := &p.Certificates[i]
				oldURL = c.PDFURL
				c.PDFURL = pdfURL
				if title != "" {
					c.Title = title
				}
				if issuer != "" {
					c.Issuer = issuer
				}
				return nil
			}
			// Unknown id falls through to an append; the upload should not
			// be lost because a stale form was submitted.
		}
		p.Certificates = append(p.Certificates, models.Certificate{
			ID:     models.NewRecordID("cert"),
			Title:  title,
			Issuer: issuer,
			PDFURL: pdfURL,
		})
		return nil
	})
	if err != nil {
		h.errLog.Log(r, "failed to persist certificate", err)
		formutil.RedirectError(w, r, section, formutil.ErrSaveFailed)
		return
	}

	if oldURL != "" && oldURL != pdfURL {
		h.assets.Delete(r.Context(), oldURL)
	}

	formutil.RedirectSuccess(w, r, section, formutil.OutcomeUploaded)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var removedURL string
	err := h.cache.Update(r.Context(), func(p *models.Portfolio) error {
		i := findCertificate(p.Certificates, id)
		if i < 0 {
			return nil
		}
		removedURL = p.Certificates[i].PDFURL
		p.Certificates = append(p.Certificates[:i], p.Certificates[i+1:]...)
		return nil
	})
	if err != nil {
		h.errLog.Log(r, "failed to persist certificate delete", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if removedURL != "" {
		h.assets.Delete(r.Context(), removedURL)
	}

	formutil.RedirectSuccess(w, r, section, formutil.OutcomeDeleted)
}
