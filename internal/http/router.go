// Package httpapi wires the HTTP transport (Gin) to the vendor service,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as correlation IDs, structured logging, panic recovery, metrics, CORS, and
// rate limiting.
//
// Design goals:
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - The token annotator never rejects a request; it only enriches tenant
//     scoping, so it is safe to run on every route
package httpapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vendstack/vendor-api/internal/config"
	"github.com/vendstack/vendor-api/internal/http/handlers"
	"github.com/vendstack/vendor-api/internal/http/middleware"
	"github.com/vendstack/vendor-api/internal/services"
)

// APIVersion is reported by the root descriptor.
const APIVersion = "1.0.0"

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine.
//
// Middleware order matters:
//  1. RequestID: generate/propagate correlation id
//  2. Logger: structured access logs
//  3. Recovery: capture panics after logger
//  4. Body size limiter
//  5. Gzip compression
//  6. Metrics and /metrics endpoint
//  7. Token annotator (non-enforcing)
//  8. Rate limiter (per user/IP)
//  9. CORS
//
// The token annotator is installed engine-wide and must precede the rate
// limiter: the limiter keys buckets by the authenticated user id, so the
// identity context has to exist before the key is computed.
func RegisterRoutes(r *gin.Engine, vendorStore services.VendorStore, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 2) Structured logging
	r.Use(middleware.Logger())

	// 3) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 4) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 5) Response compression
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Identity context from the Authorization header. Never rejects, so
	// running it on every route is harmless; it must come before the rate
	// limiter so authenticated callers get per-user buckets.
	r.Use(middleware.Authenticate(cfg.JWTSecret))

	// 8) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIdentityOrIP())
	r.Use(rl.Handler())

	// 9) CORS: fixed allowlist with credentials, so browser clients on the
	// configured origins can send the Authorization header.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Origin", "X-Requested-With", "Accept"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
		AllowCredentials: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, "Route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Root descriptor
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":       "Vendor Management API",
			"version":       APIVersion,
			"documentation": "/api/docs",
		})
	})

	// Dependency injection: handlers ← service ← store
	h := handlers.New(services.NewVendorService(vendorStore))

	// Vendor API; the identity context was attached engine-wide above.
	api := r.Group("/api/vendors")
	{
		api.GET("", h.ListVendors)
		api.GET("/:id", h.GetVendor)
		api.POST("", h.CreateVendor)
		api.PUT("/:id", h.UpdateVendor)
		api.DELETE("/:id", h.DeleteVendor)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the
// cap will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
