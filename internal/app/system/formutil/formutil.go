// Package formutil provides helpers for admin form handling: multipart
// parsing, optional file extraction, and the redirect-with-outcome pattern
// every mutating admin route follows.
package formutil

import (
	"errors"
	"html/template"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/dalemusser/stratafolio/internal/app/system/viewdata"
)

// MaxUploadSize bounds multipart form memory. Bigger files spill to disk.
const MaxUploadSize = 32 << 20 // 32 MB

// Base contains common fields for form pages that can be embedded in form
// data structs. It embeds viewdata.BaseVM and adds Error for validation.
type Base struct {
	viewdata.BaseVM
	Error template.HTML
}

// NewBase creates a fully populated Base for a form page.
func NewBase(r *http.Request, title, backDefault string) Base {
	return Base{
		BaseVM: viewdata.NewBaseVM(r, title, backDefault),
	}
}

// SetError sets the error message on a Base struct.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(msg)
}

// ParseForm parses the request form, multipart or urlencoded.
func ParseForm(r *http.Request) error {
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return r.ParseForm()
		}
		return err
	}
	return nil
}

// OptionalFile returns the uploaded file for field, or ok=false when the
// field was left empty. Any other failure is a real error.
func OptionalFile(r *http.Request, field string) (multipart.File, *multipart.FileHeader, bool, error) {
	f, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil, false, nil
	}
	if err != nil {
		return nil, nil, false, err
	}
	return f, header, true, nil
}

// Outcome codes carried on the admin redirect. The admin page translates
// them into flash messages.
const (
	OutcomeSaved    = "saved"
	OutcomeUploaded = "uploaded"
	OutcomeDeleted  = "deleted"

	ErrBadFormat  = "bad_format"
	ErrSaveFailed = "save_failed"
	ErrBadRequest = "bad_request"
)

// RedirectSuccess sends the browser back to the admin section with a
// success outcome.
func RedirectSuccess(w http.ResponseWriter, r *http.Request, section, outcome string) {
	redirectAdmin(w, r, section, "success", outcome)
}

// RedirectError sends the browser back to the admin section with an error
// outcome.
func RedirectError(w http.ResponseWriter, r *http.Request, section, code string) {
	redirectAdmin(w, r, section, "error", code)
}

func redirectAdmin(w http.ResponseWriter, r *http.Request, section, key, value string) {
	q := url.Values{}
	q.Set("section", section)
	q.Set(key, value)
	http.Redirect(w, r, "/admin?"+q.Encode(), http.StatusSeeOther)
}
