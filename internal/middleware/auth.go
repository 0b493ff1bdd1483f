package middleware

import (
	"errors"
	"net/http"
	"strings"

	"shoguntrade/internal/auth"
	"shoguntrade/internal/models"
	dbconfig "shoguntrade/pkg/config"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const callerKey = "caller"

// Caller is the authenticated principal of a request.
type Caller struct {
	UserID   uint
	Username string
	IsAdmin  bool
}

// CallerFrom returns the caller stored by AuthRequired.
func CallerFrom(c *gin.Context) (Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return Caller{}, false
	}
	caller, ok := v.(Caller)
	return caller, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	// Browsers cannot set headers on websocket handshakes.
	if c.IsWebsocket() {
		return c.Query("token")
	}
	return ""
}

// AuthRequired verifies the bearer token and loads the caller. The admin
// capability is read from the store on every request, never from the token.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required", "code": "unauthorized"})
			return
		}

		claims, err := auth.ValidateToken(dbconfig.JWTSecret(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token", "code": "unauthorized"})
			return
		}

		var user models.User
		err = dbconfig.DB.WithContext(c.Request.Context()).
			Select("id", "username", "is_admin").
			First(&user, claims.UserID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found", "code": "unauthorized"})
			return
		}
		if err != nil {
			log.Errorf("Failed to load caller %d: %v", claims.UserID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to authenticate", "code": "internal_error"})
			return
		}

		c.Set(callerKey, Caller{UserID: user.ID, Username: user.Username, IsAdmin: user.IsAdmin})
		c.Next()
	}
}

// RequireAdmin rejects callers without the admin capability.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok || !caller.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required", "code": "forbidden"})
			return
		}
		c.Next()
	}
}
