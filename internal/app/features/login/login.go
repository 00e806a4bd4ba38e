// internal/app/features/login/login.go
package login

import (
	"net/http"

	"github.com/dalemusser/stratafolio/internal/app/system/auth"
	"github.com/dalemusser/stratafolio/internal/app/system/authutil"
	"github.com/dalemusser/stratafolio/internal/app/system/formutil"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler provides login handlers for the single operator account.
type Handler struct {
	sessionMgr *auth.SessionManager
	creds      authutil.Credentials
	logger     *zap.Logger
}

// NewHandler creates a new login Handler.
func NewHandler(sessionMgr *auth.SessionManager, creds authutil.Credentials, logger *zap.Logger) *Handler {
	return &Handler{
		sessionMgr: sessionMgr,
		creds:      creds,
		logger:     logger,
	}
}

// LoginVM is the view model for the login page.
type LoginVM struct {
	formutil.Base
	Username string
}

// Routes returns a chi.Router with login routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.show)
	r.Post("/", h.submit)
	return r
}

// show renders the login form. An already signed-in operator goes straight
// to the admin panel.
func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	if auth.IsOperator(r) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	vm := LoginVM{Base: formutil.NewBase(r, "Log In", "/")}
	templates.Render(w, r, "login/login", vm)
}

// submit verifies credentials and establishes the operator session.
func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	if !h.creds.Verify(username, password) {
		h.logger.Info("failed login attempt",
			zap.String("username", username),
			zap.String("remote_addr", r.RemoteAddr))

		// One generic message; never hint at which field was wrong.
		vm := LoginVM{
			Base:     formutil.NewBase(r, "Log In", "/"),
			Username: username,
		}
		vm.SetError("Invalid credentials.")
		w.WriteHeader(http.StatusUnauthorized)
		templates.Render(w, r, "login/login", vm)
		return
	}

	if err := h.sessionMgr.CreateSession(w, r, username); err != nil {
		h.logger.Error("failed to create session", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("operator logged in", zap.String("username", username))
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
