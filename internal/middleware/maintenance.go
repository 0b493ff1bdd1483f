package middleware

import (
	"net/http"

	"shoguntrade/internal/handlers/business"
	dbconfig "shoguntrade/pkg/config"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// MaintenanceGate answers 503 to mutating requests from non-admins while
// maintenance mode is on. Reads always pass.
func MaintenanceGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		if caller, ok := CallerFrom(c); ok && caller.IsAdmin {
			c.Next()
			return
		}

		on, err := business.InMaintenance(c.Request.Context(), dbconfig.DB)
		if err != nil {
			log.Errorf("Failed to read maintenance mode: %v", err)
			c.Next()
			return
		}
		if on {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "System is under maintenance. Please try again later.",
				"code":  "maintenance",
			})
			return
		}
		c.Next()
	}
}
