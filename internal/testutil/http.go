package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/dalemusser/stratafolio/internal/app/system/auth"
)

// csrfTokenKey matches the key used by gorilla/csrf internally.
// This allows us to inject a mock token for testing.
const csrfTokenKey = "gorilla.csrf.Token"

// WithOperator adds the operator to the request context for testing
// authenticated handlers. This bypasses the session middleware.
func WithOperator(r *http.Request) *http.Request {
	return auth.WithTestOperator(r, &auth.Operator{Name: "admin"})
}

// WithCSRFToken adds a mock CSRF token to the request context.
// This prevents empty tokens when handlers call csrf.Token(r) or use
// viewdata.NewBaseVM which calls csrf.Token internally.
func WithCSRFToken(r *http.Request) *http.Request {
	ctx := context.WithValue(r.Context(), csrfTokenKey, "test-csrf-token-12345")
	return r.WithContext(ctx)
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewOperatorRequest creates an HTTP request with the operator and a CSRF
// token in context. This is the standard way to build requests for admin
// handler tests.
func NewOperatorRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return WithCSRFToken(WithOperator(req))
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertRedirect checks for a redirect to the expected location.
func (r *ResponseRecorder) AssertRedirect(t interface{ Errorf(string, ...any) }, expectedLocation string) {
	if r.Code != http.StatusSeeOther && r.Code != http.StatusFound && r.Code != http.StatusMovedPermanently {
		t.Errorf("expected redirect status, got %d", r.Code)
	}
	location := r.Header().Get("Location")
	if location != expectedLocation {
		t.Errorf("redirect location: got %q, want %q", location, expectedLocation)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	body := r.Body.String()
	if !strings.Contains(body, expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}
