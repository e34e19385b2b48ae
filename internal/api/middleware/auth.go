package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/careerpilot/careerpilot/config"
	"github.com/careerpilot/careerpilot/internal/utils"
)

const (
	AuthKindSession = "session"
	AuthKindService = "service"
)

type apiError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

type supabaseClaims struct {
	jwt.RegisteredClaims
	Role         string         `json:"role"` // usually "authenticated" / "anon"
	AppMetadata  map[string]any `json:"app_metadata"`
	UserMetadata map[string]any `json:"user_metadata"`
}

// ServiceOrSession accepts either the automation pipeline's shared secret in
// X-API-Key or a browser session token. Service callers name the target user
// via the user_id query parameter (or per-endpoint body field).
func ServiceOrSession(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if demoBypass(c, cfg) {
			return
		}
		if isServiceCaller(c, cfg) {
			setServiceIdentity(c)
			c.Next()
			return
		}
		sessionAuth(c, cfg)
	}
}

// SessionOnly guards the user-facing mutation routes. A valid API key does
// not grant access here.
func SessionOnly(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if demoBypass(c, cfg) {
			return
		}
		sessionAuth(c, cfg)
	}
}

// ServiceOnly guards endpoints that exist purely for the automation pipeline.
func ServiceOnly(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if demoBypass(c, cfg) {
			return
		}
		if !isServiceCaller(c, cfg) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
				Code:    utils.CodeUnauthorized,
				Message: "invalid api key",
			})
			return
		}
		setServiceIdentity(c)
		c.Next()
	}
}

func isServiceCaller(c *gin.Context, cfg *config.Config) bool {
	key := c.GetHeader("X-API-Key")
	return key != "" && key == cfg.APIKey
}

func setServiceIdentity(c *gin.Context) {
	c.Set("auth_kind", AuthKindService)
	if uid := c.Query("user_id"); uid != "" {
		c.Set("user_id", uid)
	}
}

// demoBypass short-circuits auth entirely when serving canned fixtures.
func demoBypass(c *gin.Context, cfg *config.Config) bool {
	if !cfg.DemoMode {
		return false
	}
	c.Set("auth_kind", AuthKindSession)
	c.Set("user_id", "demo-user")
	c.Next()
	return true
}

func sessionAuth(c *gin.Context, cfg *config.Config) {
	if cfg.JWTSecret == "" {
		c.AbortWithStatusJSON(http.StatusInternalServerError, apiError{
			Code:    utils.CodeInternal,
			Message: "SUPABASE_JWT_SECRET is not set",
		})
		return
	}

	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
			Code:    utils.CodeUnauthorized,
			Message: "missing bearer token",
		})
		return
	}

	raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	if raw == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
			Code:    utils.CodeUnauthorized,
			Message: "missing bearer token",
		})
		return
	}

	claims := &supabaseClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || tok == nil || !tok.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
			Code:    utils.CodeUnauthorized,
			Message: "invalid token",
		})
		return
	}

	if cfg.JWTIssuer != "" && claims.Issuer != cfg.JWTIssuer {
		c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
			Code:    utils.CodeUnauthorized,
			Message: "invalid token issuer",
		})
		return
	}

	if cfg.JWTAudience != "" {
		valid := false
		for _, aud := range claims.Audience {
			if aud == cfg.JWTAudience {
				valid = true
				break
			}
		}
		if !valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
				Code:    utils.CodeUnauthorized,
				Message: "invalid token audience",
			})
			return
		}
	}

	// Supabase puts the user UUID in "sub"
	userID := claims.Subject
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, apiError{
			Code:    utils.CodeUnauthorized,
			Message: "missing subject",
		})
		return
	}

	c.Set("auth_kind", AuthKindSession)
	c.Set("user_id", userID)
	c.Next()
}
