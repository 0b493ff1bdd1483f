package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"shoguntrade/internal/handlers"
	"shoguntrade/internal/handlers/business"
	"shoguntrade/internal/realtime"
	"shoguntrade/internal/routes"
	"shoguntrade/internal/testutil"
	dbconfig "shoguntrade/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	*httptest.Server
	DB  *gorm.DB
	Hub *realtime.Hub
}

// newTestServer runs the full router against a fresh in-memory store.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("RATE_LIMIT_BURST", "10000")
	t.Setenv("RATE_LIMIT_RPS", "10000")
	t.Setenv("JWT_SECRET", "integration-secret")

	dbconfig.DB = testutil.NewTestDB(t)
	hub := realtime.NewHub()
	handlers.InitRewardService(business.DefaultFeePolicy(), business.Fanout{hub})

	srv := httptest.NewServer(routes.SetupRouter(hub))
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, DB: dbconfig.DB, Hub: hub}
}

type apiResponse struct {
	Status int
	Body   []byte
}

func (r apiResponse) JSON(t *testing.T) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(r.Body, &out), string(r.Body))
	return out
}

func (r apiResponse) List(t *testing.T) []interface{} {
	t.Helper()
	var out []interface{}
	require.NoError(t, json.Unmarshal(r.Body, &out), string(r.Body))
	return out
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) apiResponse {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return apiResponse{Status: resp.StatusCode, Body: data}
}

// login returns a token for a fixture user created with password "password".
func (s *testServer) login(t *testing.T, username string) string {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": "password",
	})
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))
	token, _ := resp.JSON(t)["token"].(string)
	require.NotEmpty(t, token)
	return token
}
