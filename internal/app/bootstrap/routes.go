// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	auditlogfeature "github.com/YatharthSanghavi/wt-project/internal/app/features/auditlog"
	authapifeature "github.com/YatharthSanghavi/wt-project/internal/app/features/authapi"
	departmentsfeature "github.com/YatharthSanghavi/wt-project/internal/app/features/departments"
	eventsfeature "github.com/YatharthSanghavi/wt-project/internal/app/features/events"
	groupsfeature "github.com/YatharthSanghavi/wt-project/internal/app/features/groups"
	healthfeature "github.com/YatharthSanghavi/wt-project/internal/app/features/health"
	institutesfeature "github.com/YatharthSanghavi/wt-project/internal/app/features/institutes"
	participantsfeature "github.com/YatharthSanghavi/wt-project/internal/app/features/participants"
	usersfeature "github.com/YatharthSanghavi/wt-project/internal/app/features/users"
	"github.com/YatharthSanghavi/wt-project/internal/app/policy/deleteguard"
	userstore "github.com/YatharthSanghavi/wt-project/internal/app/store/users"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/auth"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/metrics"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/ratelimit"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/requestlog"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/respond"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// loginLimiter runs a sweeper goroutine; Shutdown stops it.
var loginLimiter *ratelimit.LoginLimiter

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. Every API route lives under /api; the
// Prometheus scrape endpoint is /metrics.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	tokens, err := auth.NewTokenManager(appCfg.TokenHashKey, appCfg.TokenBlockKey, appCfg.TokenTTL, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}
	// The role is read fresh on every request so role changes apply
	// immediately.
	tokens.SetUserFetcher(userstore.NewFetcher(db))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)
	guard := deleteguard.New(db, m, logger)

	if loginLimiter != nil {
		loginLimiter.Stop()
	}
	loginLimiter = ratelimit.NewLoginLimiter(appCfg.LoginIPLimit, appCfg.LoginEmailLimit)
	al := newAuditLogger(appCfg, db, logger)

	r := chi.NewRouter()
	r.NotFound(respond.NotFound)
	r.MethodNotAllowed(respond.MethodNotAllowed)

	r.Use(requestlog.Middleware(logger))
	r.Use(respond.Recoverer(logger))
	r.Use(requestlog.CORS(appCfg.CORSOrigins))
	r.Use(m.Middleware)
	r.Use(tokens.LoadUser)

	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Mount("/health", healthfeature.Routes(healthfeature.NewHandler(deps.MongoClient, logger)))

		api.Mount("/auth", authapifeature.Routes(authapifeature.NewHandler(db, tokens, loginLimiter, al, logger)))
		api.Mount("/users", usersfeature.Routes(usersfeature.NewHandler(db, m, al, logger)))
		api.Mount("/audit", auditlogfeature.Routes(auditlogfeature.NewHandler(db, logger)))

		api.Mount("/institutes", institutesfeature.Routes(institutesfeature.NewHandler(db, guard, m, logger)))
		api.Mount("/departments", departmentsfeature.Routes(departmentsfeature.NewHandler(db, guard, m, logger)))
		api.Mount("/events", eventsfeature.Routes(eventsfeature.NewHandler(db, guard, m, logger)))

		participantsHandler := participantsfeature.NewHandler(db, m, logger)
		api.Mount("/groups", groupsfeature.Routes(groupsfeature.NewHandler(db, guard, m, logger), participantsHandler))
		api.Mount("/participants", participantsfeature.Routes(participantsHandler))
	})

	return r, nil
}
