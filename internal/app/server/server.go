package server

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"workforce/internal/auth"
	"workforce/internal/authz"
	"workforce/internal/backend"
	"workforce/internal/nav"
	"workforce/internal/platform/config"
	"workforce/internal/platform/crypto"
	"workforce/internal/platform/metrics"
	"workforce/internal/platform/requestctx"
	"workforce/internal/session"
	"workforce/internal/session/state"
	"workforce/internal/transport/http/api"
	adminhandler "workforce/internal/transport/http/handlers/admin"
	audithandler "workforce/internal/transport/http/handlers/audit"
	authhandler "workforce/internal/transport/http/handlers/auth"
	calendarhandler "workforce/internal/transport/http/handlers/calendar"
	dashboardhandler "workforce/internal/transport/http/handlers/dashboard"
	leavehandler "workforce/internal/transport/http/handlers/leave"
	notificationshandler "workforce/internal/transport/http/handlers/notifications"
	reportinghandler "workforce/internal/transport/http/handlers/reporting"
	teamhandler "workforce/internal/transport/http/handlers/team"
	workloghandler "workforce/internal/transport/http/handlers/worklog"
	"workforce/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	Store   *session.Store
	Gateway *auth.Gateway
	Router  http.Handler
}

// New wires the whole gateway: durable session state, the backend client
// with bearer transport and 401 hook, the auth gateway, and the guarded
// screen routes. The store is rehydrated before any request is served.
func New(cfg config.Config) (*App, error) {
	cryptoSvc, err := crypto.New(cfg.StateEncryptionKey)
	if err != nil {
		return nil, err
	}

	store := session.NewStore(state.New(cfg.StateDir, cryptoSvc))
	store.Rehydrate()

	// Token rejection anywhere clears the session; the next navigation
	// redirects to login via the guard. This is the only expiry handling.
	client, err := backend.New(cfg.BackendBaseURL, cfg.BackendTimeout, store, store.Clear)
	if err != nil {
		return nil, err
	}
	gateway := auth.NewGateway(client, store)
	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute, middleware.AuthEmailOrIPKey("email")))
			authhandler.NewHandler(gateway, store).RegisterRoutes(r)
		})

		r.Route("/screens", func(r chi.Router) {
			// Public screens, mirroring the original router: calendar and
			// onboarding are reachable without a session.
			calendarhandler.NewHandler(client).RegisterRoutes(r)
			r.Get("/onboarding", handleOnboarding)

			leaveHandler := leavehandler.NewHandler(client)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Guard(store, authz.AnyRole()))
				dashboardhandler.NewHandler(client, store).RegisterRoutes(r)
				workloghandler.NewHandler(client).RegisterRoutes(r)
				notificationshandler.NewHandler(client).RegisterRoutes(r)
				leaveHandler.RegisterRoutes(r)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.Guard(store, authz.RequireRole(session.RoleManager)))
				teamhandler.NewHandler(client).RegisterRoutes(r)
				leaveHandler.RegisterApprovalRoutes(r)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.Guard(store, authz.RequireRole(session.RoleAdmin)))
				adminhandler.NewHandler(client, collector).RegisterRoutes(r)
				audithandler.NewHandler(client).RegisterRoutes(r)
				reportinghandler.NewHandler(client).RegisterRoutes(r)
			})
		})
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	return &App{Config: cfg, Store: store, Gateway: gateway, Router: router}, nil
}

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	app, err := New(cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	log.Printf("workforce gateway listening on %s (backend %s)", cfg.Addr, cfg.BackendBaseURL)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// handleOnboarding serves the static onboarding checklist shown before a
// user has an account.
func handleOnboarding(w http.ResponseWriter, r *http.Request) {
	api.Success(w, map[string]any{
		"steps": []string{
			"Create your account on the sign-up screen",
			"Sign in with your new credentials",
			"Complete your profile details",
			"Submit your first daily work log",
		},
		"menu": nav.BuildMenu(session.Session{}, false),
	}, requestctx.GetRequestID(r.Context()))
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
