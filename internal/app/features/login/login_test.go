package login

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/stratafolio/internal/app/system/auth"
	"github.com/dalemusser/stratafolio/internal/app/system/authutil"
	"github.com/dalemusser/stratafolio/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *auth.SessionManager) {
	t.Helper()
	testutil.MustBootTemplates(t)
	sm, err := auth.NewSessionManager("test-session-key-0123456789abcdef", "", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	creds := authutil.Credentials{Username: "admin", Password: "opensesame"}
	return NewHandler(sm, creds, zap.NewNop()), sm
}

func postCreds(h *Handler, username, password string) *testutil.ResponseRecorder {
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = testutil.WithCSRFToken(req)
	rec := testutil.NewRecorder()
	Routes(h).ServeHTTP(rec, req)
	return rec
}

func TestShowRedirectsSignedInOperator(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewOperatorRequest(http.MethodGet, "/")
	rec := testutil.NewRecorder()
	Routes(h).ServeHTTP(rec, req)

	rec.AssertRedirect(t, "/admin")
}

func TestSubmitValidCredentials(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := postCreds(h, "admin", "opensesame")

	rec.AssertRedirect(t, "/admin")
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("no session cookie set")
	}
}

func TestSubmitInvalidCredentials(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, tc := range []struct {
		name               string
		username, password string
	}{
		{"wrong password", "admin", "nope"},
		{"wrong username", "someone", "opensesame"},
		{"empty", "", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec := postCreds(h, tc.username, tc.password)

			rec.AssertStatus(t, http.StatusUnauthorized)
			// Same generic message regardless of which field was wrong.
			rec.AssertContains(t, "Invalid credentials.")
			for _, c := range rec.Result().Cookies() {
				if c.MaxAge > 0 {
					t.Errorf("session cookie set on failed login: %s", c.Name)
				}
			}
		})
	}
}
