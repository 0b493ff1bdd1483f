package routes

import (
	"net/http"
	"strings"

	"shoguntrade/internal/middleware"
	"shoguntrade/internal/realtime"
	dbconfig "shoguntrade/pkg/config"
	"shoguntrade/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func allowedOrigins() map[string]bool {
	allowed := map[string]bool{}
	// Format: comma-separated list, e.g. "http://localhost:3000,http://localhost:3001"
	for _, o := range strings.Split(dbconfig.GetEnv("ALLOWED_ORIGINS", ""), ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			allowed[trimmed] = true
		}
	}
	return allowed
}

func corsMiddleware() gin.HandlerFunc {
	origins := allowedOrigins()
	return func(c *gin.Context) {
		if origin := c.Request.Header.Get("Origin"); origins[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// SetupRouter builds the API router. hub receives the admin websocket
// connections and may be nil when the live feed is disabled.
func SetupRouter(hub *realtime.Hub) *gin.Engine {
	r := gin.Default()

	r.Any("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(corsMiddleware())
	r.Use(metrics.GinMiddleware())
	r.Use(middleware.RequestLogger())

	api := r.Group("/api")
	api.Use(middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: dbconfig.GetEnvFloat("RATE_LIMIT_RPS", 20),
		Burst:             dbconfig.GetEnvInt("RATE_LIMIT_BURST", 60),
	}))

	SetupAuthRoutes(api)
	SetupNFTRoutes(api)
	SetupUserRoutes(api)
	SetupRewardRoutes(api)
	SetupMLMRoutes(api)
	SetupAdminRoutes(api, hub)

	return r
}
