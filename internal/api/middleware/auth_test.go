package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerpilot/careerpilot/config"
	"github.com/careerpilot/careerpilot/internal/api/middleware"
)

const (
	testAPIKey = "test-api-key"
	testSecret = "test-jwt-secret"
	testUserID = "33333333-3333-3333-3333-333333333333"
)

func testConfig() *config.Config {
	return &config.Config{APIKey: testAPIKey, JWTSecret: testSecret}
}

func identityHandler(c *gin.Context) {
	kind, _ := c.Get("auth_kind")
	userID, _ := c.Get("user_id")
	c.JSON(http.StatusOK, gin.H{"kind": kind, "user_id": userID})
}

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", mw, identityHandler)
	return r
}

func signToken(t *testing.T, sub string, method jwt.SigningMethod, key any) string {
	t.Helper()
	tok := jwt.NewWithClaims(method, jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	s, err := tok.SignedString(key)
	require.NoError(t, err)
	return s
}

func do(r *gin.Engine, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestServiceOrSession_APIKey(t *testing.T) {
	r := newRouter(middleware.ServiceOrSession(testConfig()))

	w := do(r, map[string]string{"X-API-Key": testAPIKey})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"service"`)
}

func TestServiceOrSession_APIKeyPicksUpQueryOwner(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", middleware.ServiceOrSession(testConfig()), identityHandler)

	req := httptest.NewRequest(http.MethodGet, "/protected?user_id="+testUserID, nil)
	req.Header.Set("X-API-Key", testAPIKey)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), testUserID)
}

func TestServiceOrSession_WrongKeyFallsThroughToSession(t *testing.T) {
	r := newRouter(middleware.ServiceOrSession(testConfig()))

	w := do(r, map[string]string{"X-API-Key": "not-the-key"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestServiceOrSession_ValidJWT(t *testing.T) {
	r := newRouter(middleware.ServiceOrSession(testConfig()))
	token := signToken(t, testUserID, jwt.SigningMethodHS256, []byte(testSecret))

	w := do(r, map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"session"`)
	assert.Contains(t, w.Body.String(), testUserID)
}

func TestSessionAuth_RejectsBadSignature(t *testing.T) {
	r := newRouter(middleware.SessionOnly(testConfig()))
	token := signToken(t, testUserID, jwt.SigningMethodHS256, []byte("other-secret"))

	w := do(r, map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionAuth_RejectsMissingToken(t *testing.T) {
	r := newRouter(middleware.SessionOnly(testConfig()))

	w := do(r, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing bearer token")
}

func TestSessionAuth_RejectsMissingSubject(t *testing.T) {
	r := newRouter(middleware.SessionOnly(testConfig()))
	token := signToken(t, "", jwt.SigningMethodHS256, []byte(testSecret))

	w := do(r, map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing subject")
}

func TestSessionAuth_EnforcesIssuer(t *testing.T) {
	cfg := testConfig()
	cfg.JWTIssuer = "https://auth.example.com"
	r := newRouter(middleware.SessionOnly(cfg))
	token := signToken(t, testUserID, jwt.SigningMethodHS256, []byte(testSecret))

	w := do(r, map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token issuer")
}

func TestSessionOnly_APIKeyDoesNotGrantAccess(t *testing.T) {
	r := newRouter(middleware.SessionOnly(testConfig()))

	w := do(r, map[string]string{"X-API-Key": testAPIKey})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestServiceOnly(t *testing.T) {
	r := newRouter(middleware.ServiceOnly(testConfig()))

	w := do(r, map[string]string{"X-API-Key": testAPIKey})
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid api key")
}

func TestDemoModeBypassesAuth(t *testing.T) {
	cfg := testConfig()
	cfg.DemoMode = true
	r := newRouter(middleware.SessionOnly(cfg))

	w := do(r, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "demo-user")
}
