// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	accountfeature "github.com/dalemusser/cyberhub/internal/app/features/account"
	authgooglefeature "github.com/dalemusser/cyberhub/internal/app/features/authgoogle"
	errorsfeature "github.com/dalemusser/cyberhub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/cyberhub/internal/app/features/health"
	homefeature "github.com/dalemusser/cyberhub/internal/app/features/home"
	loginfeature "github.com/dalemusser/cyberhub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/cyberhub/internal/app/features/logout"
	newsfeature "github.com/dalemusser/cyberhub/internal/app/features/news"
	onboardingfeature "github.com/dalemusser/cyberhub/internal/app/features/onboarding"
	organizationsfeature "github.com/dalemusser/cyberhub/internal/app/features/organizations"
	readinessfeature "github.com/dalemusser/cyberhub/internal/app/features/readiness"
	trainingfeature "github.com/dalemusser/cyberhub/internal/app/features/training"
	userinfofeature "github.com/dalemusser/cyberhub/internal/app/features/userinfo"
	newsstore "github.com/dalemusser/cyberhub/internal/app/store/news"
	progressstore "github.com/dalemusser/cyberhub/internal/app/store/progress"
	readinessstore "github.com/dalemusser/cyberhub/internal/app/store/readiness"
	userstore "github.com/dalemusser/cyberhub/internal/app/store/users"
	"github.com/dalemusser/cyberhub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// Startup have completed. CyberHub initializes the template engine, applies
// session and CSRF middleware, and mounts feature routers for every part of
// the application: home, auth, onboarding, the coordinator console, news,
// readiness, training, and account management.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
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

	errLog := errorsfeature.NewErrorLogger(logger)
	db := deps.CyberHubMongoDatabase

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in,
	// making the current user available via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)
	r.Use(csrf.Protect([]byte(appCfg.CSRFKey), csrf.Secure(secure), csrf.Path("/")))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.CyberHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Landing page
	homeHandler := homefeature.NewHandler(db, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	googleHandler := authgooglefeature.NewHandler(db, sessionMgr,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	loginHandler := loginfeature.NewHandler(db, sessionMgr, errLog, googleHandler.IsConfigured(), logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Onboarding: org creation for coordinators, code redemption for participants
	onboardingHandler := onboardingfeature.NewHandler(db, sessionMgr, errLog, logger)
	r.Mount("/onboarding", onboardingfeature.Routes(onboardingHandler, sessionMgr))

	// Coordinator console
	orgHandler := organizationsfeature.NewHandler(db, errLog, logger)
	r.Mount("/organization", organizationsfeature.Routes(orgHandler, sessionMgr))

	readinessHandler := readinessfeature.NewHandler(readinessstore.New(db), errLog, logger)
	r.Mount("/readiness", readinessfeature.Routes(readinessHandler, sessionMgr))

	// News for everyone signed in; manual refresh reuses the Startup ingestor
	newsHandler := newsfeature.NewHandler(newsstore.New(db, logger), newsIngestor, errLog, logger)
	r.Mount("/news", newsfeature.Routes(newsHandler, sessionMgr))

	// Training
	trainingHandler := trainingfeature.NewHandler(progressstore.New(db), userstore.New(db), errLog, logger)
	r.Mount("/training", trainingfeature.Routes(trainingHandler, sessionMgr))

	// Account
	accountHandler := accountfeature.NewHandler(userstore.New(db), errLog, logger)
	r.Mount("/account", accountfeature.Routes(accountHandler, sessionMgr))

	// Session info for front-end scripts
	userinfofeature.MountRoutes(r, userinfofeature.NewHandler())

	return r, nil
}
