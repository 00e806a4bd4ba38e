// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	aboutfeature "github.com/dalemusser/stratafolio/internal/app/features/about"
	adminfeature "github.com/dalemusser/stratafolio/internal/app/features/admin"
	carouselfeature "github.com/dalemusser/stratafolio/internal/app/features/carousel"
	certificatesfeature "github.com/dalemusser/stratafolio/internal/app/features/certificates"
	educationfeature "github.com/dalemusser/stratafolio/internal/app/features/education"
	errorsfeature "github.com/dalemusser/stratafolio/internal/app/features/errors"
	footerfeature "github.com/dalemusser/stratafolio/internal/app/features/footer"
	galleryfeature "github.com/dalemusser/stratafolio/internal/app/features/gallery"
	healthfeature "github.com/dalemusser/stratafolio/internal/app/features/health"
	homefeature "github.com/dalemusser/stratafolio/internal/app/features/home"
	loginfeature "github.com/dalemusser/stratafolio/internal/app/features/login"
	logoutfeature "github.com/dalemusser/stratafolio/internal/app/features/logout"
	projectsfeature "github.com/dalemusser/stratafolio/internal/app/features/projects"
	projectsummaryfeature "github.com/dalemusser/stratafolio/internal/app/features/projectsummary"
	appresources "github.com/dalemusser/stratafolio/internal/app/resources"
	"github.com/dalemusser/stratafolio/internal/app/system/assets"
	"github.com/dalemusser/stratafolio/internal/app/system/auth"
	"github.com/dalemusser/stratafolio/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed, so the content cache is already warm.
//
// The route surface is small: the public page at /, the login flow, and the
// admin panel with its section editors behind RequireOperator. Every admin
// mutation is a form POST protected by CSRF.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Base view models read the site name out of the content cache.
	viewdata.Init(deps.Content)

	errLog := errorsfeature.NewErrorLogger(logger)
	errPages := errorsfeature.NewHandler()

	assetMgr := assets.New(deps.FileStorage, logger)

	r := chi.NewRouter()

	// Global middleware.
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORSFromConfig(coreCfg))
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// Session middleware: loads the operator into context if logged in.
	r.Use(sessionMgr.LoadSession)

	// CSRF protection. Cookie name is "stratafolio_csrf" to avoid collisions
	// with other services on the same domain.
	csrfOpts := []csrf.Option{
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName("stratafolio_csrf"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logger.Warn("CSRF validation failed",
				zap.String("path", req.URL.Path),
				zap.String("method", req.Method),
				zap.String("reason", csrf.FailureReason(req).Error()),
			)
			http.Error(w, "CSRF token invalid or missing", http.StatusForbidden)
		})),
	}
	// In dev mode, trust localhost origins for CSRF validation.
	if !secure {
		csrfOpts = append(csrfOpts, csrf.TrustedOrigins([]string{
			"localhost:8080",
			"localhost:3000",
			"127.0.0.1:8080",
			"127.0.0.1:3000",
		}))
	}
	if appCfg.SessionDomain != "" {
		csrfOpts = append(csrfOpts, csrf.Domain(appCfg.SessionDomain))
	}
	r.Use(csrf.Protect([]byte(appCfg.CSRFKey), csrfOpts...))

	// Health check endpoints for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.Content, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	// /static/* serves files from disk (static directory)
	r.Handle("/static/*", fileserver.Handler("/static", "static"))

	// /assets/* serves embedded assets (bundled into the binary)
	r.Handle("/assets/*", appresources.AssetsHandler("/assets"))

	// Uploaded files (local storage only)
	if appCfg.StorageType == "local" || appCfg.StorageType == "" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	// Public portfolio page
	homeHandler := homefeature.NewHandler(deps.Content, errPages, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(sessionMgr, operatorCredentials(appCfg), logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Admin panel and section editors. The panel page and every editor POST
	// share the /admin route tree behind the operator session check.
	adminHandler := adminfeature.NewHandler(deps.Content, errPages, logger)
	r.Route("/admin", func(ar chi.Router) {
		ar.Use(sessionMgr.RequireOperator)

		adminHandler.MountRoutes(ar)

		carouselfeature.NewHandler(deps.Content, assetMgr, errLog, logger).MountRoutes(ar)
		aboutfeature.NewHandler(deps.Content, assetMgr, errLog, logger).MountRoutes(ar)
		projectsummaryfeature.NewHandler(deps.Content, assetMgr, errLog, logger).MountRoutes(ar)
		projectsfeature.NewHandler(deps.Content, assetMgr, errLog, logger).MountRoutes(ar)
		certificatesfeature.NewHandler(deps.Content, assetMgr, errLog, logger).MountRoutes(ar)
		galleryfeature.NewHandler(deps.Content, assetMgr, errLog, logger).MountRoutes(ar)
		educationfeature.NewHandler(deps.Content, assetMgr, errLog, logger).MountRoutes(ar)
		footerfeature.NewHandler(deps.Content, errLog, logger).MountRoutes(ar)
	})

	// 404 catch-all for unmatched routes
	r.NotFound(errPages.NotFound)

	return r, nil
}
