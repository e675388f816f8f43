package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/udeepa-des/StudyCountDown-backend/internal/auth"
	"github.com/udeepa-des/StudyCountDown-backend/internal/config"
	"github.com/udeepa-des/StudyCountDown-backend/internal/http/handlers"
	"github.com/udeepa-des/StudyCountDown-backend/internal/http/middlewares"
	"github.com/udeepa-des/StudyCountDown-backend/internal/observability"
)

// UserStore is everything the HTTP layer needs from persistence. The postgres
// repo implements it in production, the memory repo in tests.
type UserStore interface {
	handlers.CredentialStore
	handlers.ProfileStore
}

type Deps struct {
	Cfg   config.Config
	Log   *slog.Logger
	Users UserStore
	JWT   *auth.Manager
	DB    handlers.DBStatus

	// optional observability wiring
	Prom    *observability.Prom
	Metrics prometheus.Gatherer
	Tracing bool
}

func NewRouter(d Deps) *gin.Engine {
	if d.Cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware, outermost first

	r.Use(gin.CustomRecovery(func(c *gin.Context, err interface{}) {
		d.Log.Error("panic recovered", "err", err)
		handlers.RespondInternal(c, "Something went wrong")
		c.Abort()
	}))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger())

	if d.Prom != nil {
		r.Use(d.Prom.GinHandleMiddleware())
	}

	if d.Tracing {
		r.Use(otelgin.Middleware("studycountdown-api"))
	}

	r.Use(middlewares.CORSMiddleware(d.Cfg.AllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(1 << 20))
	r.Use(middlewares.RequireJSON())

	// wire up handlers

	authMW := middlewares.NewAuthMiddleware(d.JWT, d.Users)

	healthHandler := handlers.NewHealthHandler(d.Cfg.Env, d.DB)
	authHandler := handlers.NewAuthHandler(d.Users, d.JWT)
	usersHandler := handlers.NewUsersHandler(d.Users)
	plansHandler := handlers.NewPlansHandler(d.Users)

	api := r.Group("/api")

	api.GET("/health", healthHandler.Health)

	// register/login are throttled by client IP
	authLimiter := middlewares.NewRateLimiter(d.Cfg.AuthRateLimit, d.Cfg.AuthRateWindow)
	open := api.Group("")
	open.Use(authLimiter.RateLimiterMiddleware(middlewares.KeyByIP))
	open.POST("/register", authHandler.Register)
	open.POST("/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(authMW.RequireAuth())
	protected.GET("/user", usersHandler.GetMe)
	protected.GET("/user/:userId", usersHandler.GetByID)
	protected.PUT("/user/settings", usersHandler.UpdateSettings)
	protected.PUT("/user/target-date", usersHandler.UpdateTargetDate)
	protected.POST("/plans", plansHandler.Create)
	protected.PUT("/plans", plansHandler.Replace)

	r.GET("/docs", handlers.DocsUI)
	r.GET("/docs/openapi.yaml", handlers.DocsSpec)

	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Metrics, promhttp.HandlerOpts{})))
	}

	return r
}
