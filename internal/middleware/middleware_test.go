package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shoguntrade/internal/auth"
	"shoguntrade/internal/handlers/business"
	"shoguntrade/internal/testutil"
	dbconfig "shoguntrade/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func tokenFor(t *testing.T, userID uint) string {
	token, err := auth.GenerateToken(dbconfig.JWTSecret(), time.Hour, userID, "u", auth.RoleMember)
	require.NoError(t, err)
	return token
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	chain := append(handlers, func(c *gin.Context) {
		caller, _ := CallerFrom(c)
		c.JSON(http.StatusOK, gin.H{"user_id": caller.UserID})
	})
	r.Any("/t", chain...)
	return r
}

func do(r http.Handler, method, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/t", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	dbconfig.DB = testutil.NewTestDB(t)
	member := testutil.CreateUser(t, dbconfig.DB, "member", nil)
	admin := testutil.CreateUser(t, dbconfig.DB, "boss", nil, testutil.AsAdmin)

	r := newEngine(AuthRequired())
	adminOnly := newEngine(AuthRequired(), RequireAdmin())

	t.Run("missing token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "").Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "abc").Code)
	})

	t.Run("token signed with another key", func(t *testing.T) {
		forged, err := auth.GenerateToken([]byte("other"), time.Hour, member.ID, "member", auth.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, forged).Code)
	})

	t.Run("deleted user", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, tokenFor(t, 999)).Code)
	})

	t.Run("valid member", func(t *testing.T) {
		w := do(r, http.MethodGet, tokenFor(t, member.ID))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":1`)
	})

	t.Run("admin capability comes from the store", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, do(adminOnly, http.MethodGet, tokenFor(t, member.ID)).Code)
		assert.Equal(t, http.StatusOK, do(adminOnly, http.MethodGet, tokenFor(t, admin.ID)).Code)
	})
}

func TestMaintenanceGate(t *testing.T) {
	dbconfig.DB = testutil.NewTestDB(t)
	member := testutil.CreateUser(t, dbconfig.DB, "member", nil)
	admin := testutil.CreateUser(t, dbconfig.DB, "boss", nil, testutil.AsAdmin)
	r := newEngine(AuthRequired(), MaintenanceGate())

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, tokenFor(t, member.ID)).Code)

	on := true
	_, err := business.UpdateSettings(context.Background(), dbconfig.DB, business.SettingsUpdate{MaintenanceMode: &on})
	require.NoError(t, err)

	assert.Equal(t, http.StatusServiceUnavailable, do(r, http.MethodPost, tokenFor(t, member.ID)).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, tokenFor(t, member.ID)).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, tokenFor(t, admin.ID)).Code)
}

func TestRateLimiter(t *testing.T) {
	r := newEngine(RateLimiterMiddleware(RateLimiterConfig{RequestsPerSecond: 0.001, Burst: 2}))

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "").Code)
	w := do(r, http.MethodGet, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "retry_after")
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	rl := newRateLimiterMap(RateLimiterConfig{RequestsPerSecond: 1, Burst: 1, IdleTTL: time.Minute})
	now := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.get("10.0.0.1")
	now = now.Add(30 * time.Second)
	rl.get("10.0.0.2")
	now = now.Add(45 * time.Second)
	rl.evictIdle()

	assert.NotContains(t, rl.limiters, "10.0.0.1")
	assert.Contains(t, rl.limiters, "10.0.0.2")
}
