package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/hapkiduki/dimweight/internal/application/port"
	"github.com/hapkiduki/dimweight/internal/application/usecase"
	"github.com/hapkiduki/dimweight/internal/domain/repository"
	"github.com/hapkiduki/dimweight/internal/infrastructure/config"
	"github.com/hapkiduki/dimweight/internal/interfaces/http/middleware"
)

// RouterDeps holds everything the router wires together.
type RouterDeps struct {
	Config     *config.Config
	Logger     port.Logger
	Metrics    port.Metrics
	Calculator *usecase.Calculator
	Carriers   repository.CarrierRepository
	Version    string

	// MetricsHandler serves Config.Metrics.Path; nil disables the endpoint.
	MetricsHandler http.Handler
}

// NewRouter builds the HTTP handler of the service.
//
// Parameters:
//   - deps: configuration, adapters and use cases
//
// Returns:
//   - http.Handler: the root handler
func NewRouter(deps RouterDeps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = port.NopLogger{}
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = port.NopMetrics{}
	}
	cfg := deps.Config

	r := chi.NewRouter()

	// ============================================================================
	// Middleware stack
	// ============================================================================
	// Order matters! Middleware is executed in the order added.

	// 1. Request ID generation/propagation
	r.Use(middleware.RequestID)

	// 2. Logging (after Request ID so it's included in logs)
	r.Use(middleware.Logger(log))

	// 3. Request metrics
	r.Use(middleware.Metrics(metrics))

	// 4. Panic recovery
	r.Use(middleware.Recoverer(log))

	// 5. Request timeout
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	// 6. CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-API-Version"},
		MaxAge:         300,
	}))

	// 7. Security headers
	r.Use(middleware.SecureHeaders)

	// 8. API version header
	r.Use(middleware.APIVersion(deps.Version))

	// ============================================================================
	// Routes
	// ============================================================================

	health := NewHealthHandler(deps.Carriers, deps.Version)
	r.Get("/health", health.Health)
	r.Get("/ready", health.Ready)

	if cfg.Metrics.Enabled && deps.MetricsHandler != nil {
		r.Method(http.MethodGet, cfg.Metrics.Path, deps.MetricsHandler)
	}

	calculator := NewCalculatorHandler(deps.Calculator, deps.Carriers, log, deps.Version)
	r.Route("/v1", func(r chi.Router) {
		if cfg.RateLimit.Enabled {
			limits := middleware.DefaultRateLimiterConfig()
			limits.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
			limits.Burst = cfg.RateLimit.Burst
			proxies, err := middleware.ParseTrustedProxies(cfg.Server.TrustedProxies)
			if err != nil {
				log.Warn("Ignoring invalid trusted proxies", "error", err)
			}
			limits.KeyFunc = middleware.TrustedClientIP(proxies)
			r.Use(middleware.RateLimiter(limits))
		}
		r.Use(middleware.MaxBodySize(cfg.Server.MaxRequestSize))
		r.Use(middleware.AllowContentTypes("application/json", "application/x-www-form-urlencoded"))

		calculator.Routes(r)
	})

	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	return r
}
