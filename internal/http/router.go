package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/geocoder89/birthdays/internal/apperror"
	"github.com/geocoder89/birthdays/internal/config"
	"github.com/geocoder89/birthdays/internal/domain/user"
	"github.com/geocoder89/birthdays/internal/http/handlers"
	"github.com/geocoder89/birthdays/internal/http/middlewares"
	"github.com/geocoder89/birthdays/internal/observability"
)

// Deps are the long-lived collaborators shared by every request.
type Deps struct {
	Users     handlers.UserStore
	Ready     handlers.Pinger
	Validator *user.Validator
	Prom      *observability.Prom
	Gatherer  prometheus.Gatherer
	Now       func() time.Time
}

func NewRouter(log *slog.Logger, cfg config.Config, deps Deps) *gin.Engine {
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.CustomRecovery(func(ctx *gin.Context, recovered any) {
		handlers.RespondError(ctx, apperror.Otherf("panic: %v", recovered))
	}))
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}
	r.Use(middlewares.SecurityHeaders())
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	}
	if cfg.MaxBodyBytes > 0 {
		r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))
	}

	r.NoRoute(handlers.RespondNotFound)

	// health
	h := handlers.NewHealthHandler(deps.Ready)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	r.GET("/docs", handlers.SwaggerUI)
	r.GET("/docs/openapi.yaml", handlers.OpenAPISpec)

	validator := deps.Validator
	if validator == nil {
		validator = user.NewValidator()
	}
	usersHandler := handlers.NewUsersHandler(deps.Users, validator, deps.Now)

	hello := r.Group("/hello")
	if cfg.RateLimitPerMinute > 0 {
		rl := middlewares.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
		hello.Use(rl.Middleware(middlewares.KeyByIP))
	}

	hello.PUT("/:name", usersHandler.SubmitBirthday)
	hello.GET("/:name", usersHandler.GetUser)

	return r
}
