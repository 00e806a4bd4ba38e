// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/dalemusser/stratafolio/internal/app/system/auth"
	"github.com/dalemusser/stratafolio/internal/app/system/content"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// DefaultSiteName is used before the portfolio document has been loaded or
// when the operator has not set a footer name yet.
const DefaultSiteName = "Stratafolio"

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
type BaseVM struct {
	// Site identity (from the portfolio document)
	SiteName string

	// Operator context (from auth middleware)
	IsLoggedIn   bool
	OperatorName string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// Security
	CSRFToken string // CSRF token for forms (use in hidden input field)
}

// cache is set by Init and used to derive the site name.
var cache *content.Cache

// Init sets the content cache for viewdata.
// Call this once at startup from bootstrap.
func Init(c *content.Cache) {
	cache = c
}

// NewBaseVM creates a fully populated BaseVM for a page.
//
// Parameters:
//   - r: the HTTP request
//   - title: the page title
//   - backDefault: default URL for the back button if none in request
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	op, signedIn := auth.CurrentOperator(r)

	vm := BaseVM{
		SiteName:    siteName(),
		IsLoggedIn:  signedIn,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
	}
	if signedIn {
		vm.OperatorName = op.Name
	}
	return vm
}

// New creates a BaseVM without a title or back target.
func New(r *http.Request) BaseVM {
	return NewBaseVM(r, "", "")
}

func siteName() string {
	if cache == nil {
		return DefaultSiteName
	}
	p, err := cache.Current()
	if err != nil || p.FooterInfo == nil || p.FooterInfo.Name == "" {
		return DefaultSiteName
	}
	return p.FooterInfo.Name
}
